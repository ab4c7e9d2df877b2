package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"footy_server/services"
	"footy_server/utils"
)

// InjuryController handles injury logging and recovery tracking endpoints
type InjuryController struct {
	InjuryService *services.InjuryService
}

// NewInjuryController creates a new InjuryController instance
func NewInjuryController(injuryService *services.InjuryService) *InjuryController {
	return &InjuryController{InjuryService: injuryService}
}

// LogInjury handles recording a new injury for the caller
func (ic *InjuryController) LogInjury(w http.ResponseWriter, r *http.Request) {
	var input services.InjuryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	injuryID, err := ic.InjuryService.Log(r.Context(), utils.CurrentUser(r), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":   "Injury logged successfully",
		"injury_id": injuryID,
	})
}

// GetRecoveryPlan handles the recovery guidance for an injury
func (ic *InjuryController) GetRecoveryPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := ic.InjuryService.Plan(r.Context(), mux.Vars(r)["injuryId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"injury_type": plan.InjuryType,
		"timeline":    plan.Timeline,
		"dos":         plan.Dos,
		"donts":       plan.Donts,
		"exercises":   plan.Exercises,
	})
}

// GetRehabExercises handles the rehab prescription for an injury type
func (ic *InjuryController) GetRehabExercises(w http.ResponseWriter, r *http.Request) {
	injuryType := r.URL.Query().Get("injury_type")

	utils.WriteSuccess(w, map[string]interface{}{
		"injury_type": injuryType,
		"exercises":   ic.InjuryService.Exercises(injuryType),
	})
}

// GetRecoveryTimeline handles the computed recovery schedule for an injury
func (ic *InjuryController) GetRecoveryTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := ic.InjuryService.Timeline(r.Context(), mux.Vars(r)["injuryId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"injury_id":          timeline.InjuryID,
		"date_injured":       timeline.DateInjured,
		"estimated_recovery": timeline.EstimatedRecovery,
		"days_elapsed":       timeline.DaysElapsed,
		"expected_duration":  timeline.ExpectedDuration,
		"milestones":         timeline.Milestones,
	})
}

// UpdateProgress handles a partial recovery update for an injury
func (ic *InjuryController) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var input services.ProgressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ic.InjuryService.UpdateProgress(r.Context(), mux.Vars(r)["injuryId"], input); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Recovery progress updated"})
}

// ResolveInjury handles marking an injury as healed
func (ic *InjuryController) ResolveInjury(w http.ResponseWriter, r *http.Request) {
	if err := ic.InjuryService.Resolve(r.Context(), mux.Vars(r)["injuryId"]); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Injury marked as resolved"})
}

// GetHistory handles listing all of the caller's injuries
func (ic *InjuryController) GetHistory(w http.ResponseWriter, r *http.Request) {
	injuries, err := ic.InjuryService.History(r.Context(), utils.CurrentUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"count":    len(injuries),
		"injuries": injuries,
	})
}

// GetActive handles listing the caller's unresolved injuries
func (ic *InjuryController) GetActive(w http.ResponseWriter, r *http.Request) {
	injuries, err := ic.InjuryService.Active(r.Context(), utils.CurrentUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"count":           len(injuries),
		"active_injuries": injuries,
	})
}
