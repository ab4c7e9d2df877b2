package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"footy_server/services"
	"footy_server/utils"
)

// WellnessController handles daily wellness logging endpoints
type WellnessController struct {
	WellnessService *services.WellnessService
}

// NewWellnessController creates a new WellnessController instance
func NewWellnessController(wellnessService *services.WellnessService) *WellnessController {
	return &WellnessController{WellnessService: wellnessService}
}

// LogWellness handles recording one wellness entry for the caller
func (wc *WellnessController) LogWellness(w http.ResponseWriter, r *http.Request) {
	var input services.WellnessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	wellnessID, err := wc.WellnessService.Log(r.Context(), utils.CurrentUser(r), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":     "Wellness data logged",
		"wellness_id": wellnessID,
	})
}

// GetToday handles the caller's summary for today
func (wc *WellnessController) GetToday(w http.ResponseWriter, r *http.Request) {
	entry, err := wc.WellnessService.Today(r.Context(), utils.CurrentUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"date":     entry.Date,
		"water":    entry.Water,
		"sleep":    entry.Sleep,
		"calories": entry.Calories,
	})
}

// GetHistory handles the caller's wellness history for the past N days
func (wc *WellnessController) GetHistory(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days < 1 {
		days = 7
	}

	history, err := wc.WellnessService.History(r.Context(), utils.CurrentUser(r), days)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"days":    days,
		"history": history,
	})
}
