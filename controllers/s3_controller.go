package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"footy_server/services"
	"footy_server/utils"
)

// GeneratePresignedURL generates a presigned URL for S3 uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
		Folder   string `json:"folder"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if payload.FileName == "" || payload.FileType == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	folder := payload.Folder
	if folder == "" {
		folder = services.PostImagesFolder
	}

	url, fileName, err := services.GenerateUploadURL(folder, payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating pre-signed URL: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate pre-signed URL")
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"url":      url,
		"fileName": fileName,
	})
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	url, err := services.GenerateReadURL(payload.Key)
	if err != nil {
		log.Printf("Error generating read pre-signed URL: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate read pre-signed URL")
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{"url": url})
}
