package controllers

import (
	"encoding/json"
	"net/http"

	"footy_server/services"
	"footy_server/utils"
)

// CoachingController handles coaching insight endpoints
type CoachingController struct {
	CoachingService *services.CoachingService
}

// NewCoachingController creates a new CoachingController instance
func NewCoachingController(coachingService *services.CoachingService) *CoachingController {
	return &CoachingController{CoachingService: coachingService}
}

// GetPlan handles the caller's personalized coaching plan. A user_id query
// parameter lets coaches pull another player's plan.
func (cc *CoachingController) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = utils.CurrentUser(r).ID
	}

	plan := cc.CoachingService.Plan(userID)
	utils.WriteSuccess(w, map[string]interface{}{
		"user_id":       plan.UserID,
		"week":          plan.Week,
		"position":      plan.Position,
		"focus_areas":   plan.FocusAreas,
		"training_plan": plan.TrainingPlan,
	})
}

// GetPosition handles the best-position recommendation
func (cc *CoachingController) GetPosition(w http.ResponseWriter, r *http.Request) {
	rec := cc.CoachingService.Position()
	utils.WriteSuccess(w, map[string]interface{}{
		"position":              rec.Position,
		"confidence":            rec.Confidence,
		"reasoning":             rec.Reasoning,
		"alternative_positions": rec.AlternativePositions,
	})
}

// GetStrengths handles the player strengths analysis
func (cc *CoachingController) GetStrengths(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, map[string]interface{}{
		"strengths": cc.CoachingService.Strengths(),
	})
}

// GetWeaknesses handles the areas-for-improvement analysis
func (cc *CoachingController) GetWeaknesses(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, map[string]interface{}{
		"weaknesses": cc.CoachingService.Weaknesses(),
	})
}

// GetTrainingPlan handles the weekly training schedule for a position
func (cc *CoachingController) GetTrainingPlan(w http.ResponseWriter, r *http.Request) {
	plan := cc.CoachingService.TrainingPlan(r.URL.Query().Get("position"))
	utils.WriteSuccess(w, map[string]interface{}{
		"week":     plan.Week,
		"position": plan.Position,
		"sessions": plan.Sessions,
	})
}

// GetMotivation handles the motivational insight
func (cc *CoachingController) GetMotivation(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, map[string]interface{}{
		"motivation": cc.CoachingService.Motivation(),
	})
}

// SaveAchievement handles pinning a coaching insight to the caller's profile
func (cc *CoachingController) SaveAchievement(w http.ResponseWriter, r *http.Request) {
	var input services.AchievementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	achievement, err := cc.CoachingService.SaveAchievement(r.Context(), utils.CurrentUser(r), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":     "Achievement saved",
		"achievement": achievement,
	})
}

// GetHistory handles listing the caller's saved achievements
func (cc *CoachingController) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := cc.CoachingService.History(r.Context(), utils.CurrentUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"count":            len(records),
		"coaching_history": records,
	})
}
