package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"footy_server/services"
	"footy_server/utils"
)

// MatchController handles HTTP requests for match lifecycle operations
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// CreateMatch handles creating a new match organized by the caller
func (mc *MatchController) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	matchID, err := mc.MatchService.Create(r.Context(), utils.CurrentUser(r), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":  "Match created successfully",
		"match_id": matchID,
	})
}

// GetAllMatches handles listing matches with filtering and pagination
func (mc *MatchController) GetAllMatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Older clients send filter_by, newer ones send filter.
	filter := query.Get("filter")
	if filter == "" {
		filter = query.Get("filter_by")
	}
	if filter == "" {
		filter = "all"
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = 20
	}

	result, err := mc.MatchService.List(r.Context(), utils.CurrentUser(r), filter, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"count":   len(result.Matches),
		"total":   result.Total,
		"page":    page,
		"limit":   limit,
		"matches": result.Matches,
	})
}

// GetHistorySummary handles the caller's matches bucketed by status
func (mc *MatchController) GetHistorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := mc.MatchService.Summary(r.Context(), utils.CurrentUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"summary": map[string]interface{}{
			"total":           summary.Total,
			"upcoming_count":  len(summary.Upcoming),
			"completed_count": len(summary.Completed),
		},
		"upcoming":  summary.Upcoming,
		"completed": summary.Completed,
	})
}

// GetUserHistory handles listing all of the caller's matches
func (mc *MatchController) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	matches, err := mc.MatchService.History(r.Context(), utils.CurrentUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"count":   len(matches),
		"matches": matches,
	})
}

// GetMatchDetails handles fetching a single match
func (mc *MatchController) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	match, err := mc.MatchService.GetByID(r.Context(), mux.Vars(r)["matchId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"match": match})
}

// JoinMatch handles adding the caller to a match roster
func (mc *MatchController) JoinMatch(w http.ResponseWriter, r *http.Request) {
	err := mc.MatchService.Join(r.Context(), utils.CurrentUser(r), mux.Vars(r)["matchId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Joined match successfully"})
}

// LeaveMatch handles removing the caller from a match roster
func (mc *MatchController) LeaveMatch(w http.ResponseWriter, r *http.Request) {
	err := mc.MatchService.Leave(r.Context(), utils.CurrentUser(r), mux.Vars(r)["matchId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Left match successfully"})
}

type participantPayload struct {
	UserID string `json:"user_id"`
}

// AddParticipant handles the organizer adding a player by user id
func (mc *MatchController) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var payload participantPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := mc.MatchService.AddParticipant(r.Context(), utils.CurrentUser(r), mux.Vars(r)["matchId"], payload.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Participant added successfully"})
}

// RemoveParticipant handles the organizer removing a player by user id
func (mc *MatchController) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	var payload participantPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := mc.MatchService.RemoveParticipant(r.Context(), utils.CurrentUser(r), mux.Vars(r)["matchId"], payload.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Participant removed successfully"})
}

// GetParticipants handles listing the roster, repairing cached snapshots
func (mc *MatchController) GetParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := mc.MatchService.ListParticipants(r.Context(), mux.Vars(r)["matchId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"count":        len(participants),
		"participants": participants,
	})
}

// UploadMatchVideo handles the organizer attaching a match video
func (mc *MatchController) UploadMatchVideo(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		VideoURL   string      `json:"video_url"`
		Highlights interface{} `json:"highlights"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	matchID := mux.Vars(r)["matchId"]
	err := mc.MatchService.AttachVideo(r.Context(), utils.CurrentUser(r), matchID, payload.VideoURL, payload.Highlights)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":  "Match video uploaded successfully",
		"match_id": matchID,
	})
}

// UpdateScore handles the organizer updating score, status or end time
func (mc *MatchController) UpdateScore(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateScoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := mc.MatchService.UpdateScore(r.Context(), utils.CurrentUser(r), mux.Vars(r)["matchId"], input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Match updated successfully"})
}

// DeleteMatch handles the organizer deleting a match permanently
func (mc *MatchController) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	err := mc.MatchService.Delete(r.Context(), utils.CurrentUser(r), mux.Vars(r)["matchId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Match deleted successfully"})
}
