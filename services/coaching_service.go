package services

import (
	"context"

	"github.com/google/uuid"

	"footy_server/models"
)

// CoachingService serves coaching insights and remembers saved achievements.
// The plan/position/strengths payloads are static placeholders until the ML
// coaching pipeline supplies real output; the shapes are the contract.
type CoachingService struct {
	Store DocumentStore
}

func NewCoachingService(store DocumentStore) *CoachingService {
	return &CoachingService{Store: store}
}

// TrainingDay is one day of a coaching plan.
type TrainingDay struct {
	Day       string   `json:"day"`
	Focus     string   `json:"focus"`
	Exercises []string `json:"exercises"`
}

// CoachingPlan is the weekly personalized plan.
type CoachingPlan struct {
	UserID       string        `json:"user_id"`
	Week         int           `json:"week"`
	Position     string        `json:"position"`
	FocusAreas   []string      `json:"focus_areas"`
	TrainingPlan []TrainingDay `json:"training_plan"`
}

// PositionOption pairs a position with the model's confidence in it.
type PositionOption struct {
	Position   string `json:"position"`
	Confidence string `json:"confidence"`
}

// PositionRecommendation is the best-position analysis for a player.
type PositionRecommendation struct {
	Position             string           `json:"position"`
	Confidence           string           `json:"confidence"`
	Reasoning            string           `json:"reasoning"`
	AlternativePositions []PositionOption `json:"alternative_positions"`
}

// Strength is one highlighted player strength.
type Strength struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

// Weakness is one area for improvement.
type Weakness struct {
	Title       string `json:"title"`
	Improvement string `json:"improvement"`
	Icon        string `json:"icon"`
}

// TrainingSession is one session of the weekly training plan.
type TrainingSession struct {
	Day       string `json:"day"`
	Duration  string `json:"duration"`
	Focus     string `json:"focus"`
	Intensity string `json:"intensity"`
}

// WeeklyTrainingPlan is the position-based weekly schedule.
type WeeklyTrainingPlan struct {
	Week     int               `json:"week"`
	Position string            `json:"position"`
	Sessions []TrainingSession `json:"sessions"`
}

// AchievementInput is the save-achievement request body.
type AchievementInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Plan returns the personalized weekly coaching plan.
func (cs *CoachingService) Plan(userID string) *CoachingPlan {
	return &CoachingPlan{
		UserID:     userID,
		Week:       1,
		Position:   "Midfielder",
		FocusAreas: []string{"Finishing", "Stamina"},
		TrainingPlan: []TrainingDay{
			{Day: "Monday", Focus: "Finishing Drills",
				Exercises: []string{"5v5 Possession", "1v1 Finishing", "Set Piece Practice"}},
			{Day: "Tuesday", Focus: "High-Intensity Training",
				Exercises: []string{"Sprint Intervals", "Shuttle Runs", "Agility Ladder"}},
			{Day: "Thursday", Focus: "Tactical Work",
				Exercises: []string{"Position Awareness", "Off-Ball Movement", "Transition Play"}},
			{Day: "Friday", Focus: "Game Preparation",
				Exercises: []string{"Full Match Simulation", "Set Plays", "Recovery Focus"}},
		},
	}
}

// Position returns the best-position recommendation for a player.
func (cs *CoachingService) Position() *PositionRecommendation {
	return &PositionRecommendation{
		Position:   "Midfielder",
		Confidence: "94%",
		Reasoning:  "Your speed and passing accuracy suit a midfield role",
		AlternativePositions: []PositionOption{
			{Position: "Forward", Confidence: "72%"},
			{Position: "Defender", Confidence: "45%"},
		},
	}
}

// Strengths returns the player strengths analysis.
func (cs *CoachingService) Strengths() []Strength {
	return []Strength{
		{Title: "Speed & Agility", Value: "92%", Icon: "lightning-bolt"},
		{Title: "Passing Accuracy", Value: "91%", Icon: "target"},
		{Title: "Decision Making", Value: "85%", Icon: "brain"},
	}
}

// Weaknesses returns the areas-for-improvement analysis.
func (cs *CoachingService) Weaknesses() []Weakness {
	return []Weakness{
		{Title: "Finishing", Improvement: "Improve shot accuracy by 15%", Icon: "target-variant"},
		{Title: "Stamina", Improvement: "Build endurance with 20-min sprints", Icon: "heart-pulse"},
	}
}

// TrainingPlan returns the weekly training schedule for a position.
func (cs *CoachingService) TrainingPlan(position string) *WeeklyTrainingPlan {
	if position == "" {
		position = "Midfielder"
	}
	return &WeeklyTrainingPlan{
		Week:     1,
		Position: position,
		Sessions: []TrainingSession{
			{Day: "Monday", Duration: "90 mins", Focus: "Finishing Drills", Intensity: "High"},
			{Day: "Tuesday", Duration: "60 mins", Focus: "Recovery & Flexibility", Intensity: "Low"},
			{Day: "Wednesday", Duration: "90 mins", Focus: "Tactical Awareness", Intensity: "Medium"},
			{Day: "Thursday", Duration: "60 mins", Focus: "Speed Work", Intensity: "High"},
			{Day: "Friday", Duration: "90 mins", Focus: "Full Training", Intensity: "Medium"},
		},
	}
}

// Motivation returns the motivational insight for a player.
func (cs *CoachingService) Motivation() string {
	return "You're on an upward trajectory! Your speed stats have improved 12% this month. " +
		"Keep pushing on finishing drills and you'll break into the elite tier."
}

// SaveAchievement pins a coaching insight to the caller's profile.
func (cs *CoachingService) SaveAchievement(ctx context.Context, caller *models.User, in AchievementInput) (*models.Achievement, error) {
	if in.Title == "" {
		return nil, validationError("title is required")
	}
	achievement := models.Achievement{
		ID:          uuid.NewString(),
		UserID:      caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		CreatedAt:   nowRFC3339(),
	}
	if err := cs.Store.Insert(ctx, models.CoachingTable, achievement.ID, achievement); err != nil {
		return nil, err
	}
	return &achievement, nil
}

// History returns the caller's saved achievements, newest first.
func (cs *CoachingService) History(ctx context.Context, caller *models.User) ([]models.Achievement, error) {
	var records []models.Achievement
	query := Query{
		Filter:   Filter{Equals: map[string]string{"user_id": caller.ID}},
		SortDesc: "created_at",
	}
	if _, err := cs.Store.FindMany(ctx, models.CoachingTable, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}
