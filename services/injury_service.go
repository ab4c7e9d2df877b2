package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"footy_server/models"
)

// InjuryService records injuries and tracks their recovery.
type InjuryService struct {
	Store DocumentStore
}

func NewInjuryService(store DocumentStore) *InjuryService {
	return &InjuryService{Store: store}
}

// InjuryInput is the log-injury request body. Date defaults to today.
type InjuryInput struct {
	InjuryType    string `json:"injury_type"`
	BodyPart      string `json:"body_part"`
	PainLevel     int    `json:"pain_level"`
	RecoveryStage string `json:"recovery_stage"`
	Notes         string `json:"notes"`
	Date          string `json:"date"`
}

// ProgressInput carries a partial recovery update; nil fields are left
// untouched.
type ProgressInput struct {
	PainLevel          *int     `json:"pain_level"`
	Notes              *string  `json:"notes"`
	CompletedExercises []string `json:"completed_exercises"`
}

// RecoveryMilestone is one step on an injury's recovery timeline.
type RecoveryMilestone struct {
	Day       int    `json:"day"`
	Milestone string `json:"milestone"`
	Status    string `json:"status"`
}

// RecoveryTimeline is the computed recovery schedule for an injury.
type RecoveryTimeline struct {
	InjuryID          string              `json:"injury_id"`
	DateInjured       string              `json:"date_injured"`
	EstimatedRecovery string              `json:"estimated_recovery"`
	DaysElapsed       int                 `json:"days_elapsed"`
	ExpectedDuration  string              `json:"expected_duration"`
	Milestones        []RecoveryMilestone `json:"milestones"`
}

// RecoveryPhase groups the recovery exercises for a stretch of days.
type RecoveryPhase struct {
	Phase      string   `json:"phase"`
	Days       string   `json:"days"`
	Activities []string `json:"activities"`
}

// RecoveryPlan is the guidance returned for a logged injury. The content is
// static until the medical ML pipeline replaces it.
type RecoveryPlan struct {
	InjuryType string          `json:"injury_type"`
	Timeline   string          `json:"timeline"`
	Dos        []string        `json:"dos"`
	Donts      []string        `json:"donts"`
	Exercises  []RecoveryPhase `json:"exercises"`
}

// RehabExercise is one rehabilitation exercise prescription.
type RehabExercise struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Sets     int    `json:"sets"`
	Rest     string `json:"rest"`
}

const recoveryDays = 21

// Log stores a new active injury for the caller and returns its id.
func (is *InjuryService) Log(ctx context.Context, caller *models.User, in InjuryInput) (string, error) {
	if in.InjuryType == "" {
		return "", validationError("injury_type is required")
	}
	date := in.Date
	if date == "" {
		date = dayKey(time.Now())
	}
	record := models.InjuryLog{
		ID:               uuid.NewString(),
		UserID:           caller.ID,
		InjuryType:       in.InjuryType,
		BodyPart:         in.BodyPart,
		PainLevel:        in.PainLevel,
		RecoveryStage:    in.RecoveryStage,
		Notes:            in.Notes,
		DateInjured:      date,
		Status:           models.InjuryStatusActive,
		RecoveryProgress: []string{},
		CreatedAt:        nowRFC3339(),
	}
	if err := is.Store.Insert(ctx, models.InjuriesTable, record.ID, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (is *InjuryService) getInjury(ctx context.Context, injuryID string) (*models.InjuryLog, error) {
	if _, err := uuid.Parse(injuryID); err != nil {
		return nil, notFoundError("Injury not found")
	}
	var record models.InjuryLog
	if err := is.Store.FindByID(ctx, models.InjuriesTable, injuryID, &record); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, notFoundError("Injury not found")
		}
		return nil, err
	}
	return &record, nil
}

// Plan returns the recovery guidance for a logged injury.
func (is *InjuryService) Plan(ctx context.Context, injuryID string) (*RecoveryPlan, error) {
	record, err := is.getInjury(ctx, injuryID)
	if err != nil {
		return nil, err
	}
	return &RecoveryPlan{
		InjuryType: record.InjuryType,
		Timeline:   "2-3 weeks",
		Dos: []string{
			"Rest the affected area for 48-72 hours",
			"Apply ice for 15-20 minutes, 3-4 times daily",
			"Use compression bandage to reduce swelling",
			"Elevate the injured limb above heart level",
		},
		Donts: []string{
			"Do not apply heat in the first 72 hours",
			"Avoid strenuous activities or training",
			"Don't ignore sharp pain or increased swelling",
		},
		Exercises: []RecoveryPhase{
			{Phase: "Phase 1: Rest & Protect", Days: "Days 1-3",
				Activities: []string{"Complete rest", "Ice therapy", "Elevation"}},
			{Phase: "Phase 2: Gentle Movement", Days: "Days 4-7",
				Activities: []string{"Gentle range of motion", "Massage", "Light stretching"}},
		},
	}, nil
}

// Exercises returns the rehabilitation prescription for an injury type.
func (is *InjuryService) Exercises(injuryType string) []RehabExercise {
	return []RehabExercise{
		{Name: "Light Stretching", Duration: "5 mins", Sets: 3, Rest: "30 secs"},
		{Name: "Isometric Hold", Duration: "20 secs", Sets: 3, Rest: "60 secs"},
		{Name: "Gradual Load Increase", Duration: "10 mins", Sets: 2, Rest: "2 mins"},
	}
}

// Timeline computes the recovery schedule from the injury date, marking
// milestones already passed as completed.
func (is *InjuryService) Timeline(ctx context.Context, injuryID string) (*RecoveryTimeline, error) {
	record, err := is.getInjury(ctx, injuryID)
	if err != nil {
		return nil, err
	}

	injured, err := time.Parse("2006-01-02", record.DateInjured)
	if err != nil {
		injured = time.Now().UTC()
	}
	elapsed := int(time.Since(injured).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}

	milestones := []RecoveryMilestone{
		{Day: 3, Milestone: "Pain reduction"},
		{Day: 7, Milestone: "Light movement"},
		{Day: 14, Milestone: "Return to training"},
		{Day: 21, Milestone: "Full recovery"},
	}
	for i := range milestones {
		switch {
		case elapsed >= milestones[i].Day:
			milestones[i].Status = "completed"
		case i == 0 || elapsed >= milestones[i-1].Day:
			milestones[i].Status = "in_progress"
		default:
			milestones[i].Status = "pending"
		}
	}

	return &RecoveryTimeline{
		InjuryID:          record.ID,
		DateInjured:       dayKey(injured),
		EstimatedRecovery: dayKey(injured.AddDate(0, 0, recoveryDays)),
		DaysElapsed:       elapsed,
		ExpectedDuration:  "21 days",
		Milestones:        milestones,
	}, nil
}

// UpdateProgress applies a partial recovery update to an injury.
func (is *InjuryService) UpdateProgress(ctx context.Context, injuryID string, in ProgressInput) error {
	if _, err := is.getInjury(ctx, injuryID); err != nil {
		return err
	}

	set := map[string]interface{}{}
	if in.PainLevel != nil {
		set["pain_level"] = *in.PainLevel
	}
	if in.Notes != nil {
		set["notes"] = *in.Notes
	}
	if in.CompletedExercises != nil {
		set["recovery_progress"] = in.CompletedExercises
	}
	if len(set) == 0 {
		return validationError("No fields to update")
	}
	return is.Store.UpdateFields(ctx, models.InjuriesTable, injuryID, Update{Set: set})
}

// Resolve marks an injury as healed.
func (is *InjuryService) Resolve(ctx context.Context, injuryID string) error {
	if _, err := is.getInjury(ctx, injuryID); err != nil {
		return err
	}
	return is.Store.UpdateFields(ctx, models.InjuriesTable, injuryID, Update{
		Set: map[string]interface{}{
			"status":      models.InjuryStatusResolved,
			"resolved_at": nowRFC3339(),
		},
	})
}

// History returns all of the caller's injuries, newest first.
func (is *InjuryService) History(ctx context.Context, caller *models.User) ([]models.InjuryLog, error) {
	var records []models.InjuryLog
	query := Query{
		Filter:   Filter{Equals: map[string]string{"user_id": caller.ID}},
		SortDesc: "created_at",
	}
	if _, err := is.Store.FindMany(ctx, models.InjuriesTable, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Active returns the caller's injuries that are not resolved yet.
func (is *InjuryService) Active(ctx context.Context, caller *models.User) ([]models.InjuryLog, error) {
	var records []models.InjuryLog
	query := Query{
		Filter: Filter{Equals: map[string]string{
			"user_id": caller.ID,
			"status":  models.InjuryStatusActive,
		}},
		SortDesc: "created_at",
	}
	if _, err := is.Store.FindMany(ctx, models.InjuriesTable, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}
