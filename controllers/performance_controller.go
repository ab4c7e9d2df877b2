package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"footy_server/services"
	"footy_server/utils"
)

// PerformanceController handles video analysis endpoints
type PerformanceController struct {
	PerformanceService *services.PerformanceService
}

// NewPerformanceController creates a new PerformanceController instance
func NewPerformanceController(performanceService *services.PerformanceService) *PerformanceController {
	return &PerformanceController{PerformanceService: performanceService}
}

// GetUploadURL handles issuing a presigned URL for a performance video
func (pc *PerformanceController) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.FileName == "" || payload.FileType == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	url, key, err := services.GenerateUploadURL(services.PerformanceVideosFolder, payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating performance upload URL: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate pre-signed URL")
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"url":      url,
		"fileName": key,
	})
}

// UploadVideo handles registering an uploaded match video for analysis
func (pc *PerformanceController) UploadVideo(w http.ResponseWriter, r *http.Request) {
	var input services.UploadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	performanceID, err := pc.PerformanceService.Register(r.Context(), utils.CurrentUser(r), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":        "Video uploaded successfully",
		"performance_id": performanceID,
		"video_url":      input.VideoURL,
	})
}

// GetAnalysis handles fetching the analysis for a performance record
func (pc *PerformanceController) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := pc.PerformanceService.Analysis(r.Context(), mux.Vars(r)["performanceId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"performance_id":  analysis.PerformanceID,
		"video_url":       analysis.VideoURL,
		"match_type":      analysis.MatchType,
		"analysis_status": analysis.AnalysisStatus,
		"results":         analysis.Results,
	})
}

// GeneratePlayerCard handles building a shareable card from an analysis
func (pc *PerformanceController) GeneratePlayerCard(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AnalysisID string `json:"analysis_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	card, err := pc.PerformanceService.GeneratePlayerCard(r.Context(), utils.CurrentUser(r), payload.AnalysisID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":     "Player card generated",
		"player_card": card,
	})
}

// GetUserHistory handles listing a user's performance analyses
func (pc *PerformanceController) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	records, err := pc.PerformanceService.HistoryByUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"count":        len(records),
		"performances": records,
	})
}

// SubmitToML handles forwarding a record's video to the ML pipeline
func (pc *PerformanceController) SubmitToML(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PerformanceID string `json:"performance_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	jobID, err := pc.PerformanceService.SubmitToML(r.Context(), payload.PerformanceID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message": "Submitted to ML service",
		"job_id":  jobID,
	})
}

// GetMLStatus handles polling an ML job's progress
func (pc *PerformanceController) GetMLStatus(w http.ResponseWriter, r *http.Request) {
	status := pc.PerformanceService.MLStatus(mux.Vars(r)["jobId"])
	utils.WriteSuccess(w, map[string]interface{}{
		"job_id":            status.JobID,
		"processing_status": status.ProcessingStatus,
		"progress":          status.Progress,
		"results":           status.Results,
	})
}
