package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"footy_server/models"
)

// WellnessService records and reads daily wellness logs.
type WellnessService struct {
	Store DocumentStore
}

func NewWellnessService(store DocumentStore) *WellnessService {
	return &WellnessService{Store: store}
}

// WellnessInput is the log request body. Date defaults to today.
type WellnessInput struct {
	Date     string  `json:"date"`
	Water    float64 `json:"water"`
	Sleep    float64 `json:"sleep"`
	Calories float64 `json:"calories"`
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Log stores one wellness entry for the caller and returns its id.
func (ws *WellnessService) Log(ctx context.Context, caller *models.User, in WellnessInput) (string, error) {
	date := in.Date
	if date == "" {
		date = dayKey(time.Now())
	}
	entry := models.WellnessLog{
		ID:        uuid.NewString(),
		UserID:    caller.ID,
		Date:      date,
		Water:     in.Water,
		Sleep:     in.Sleep,
		Calories:  in.Calories,
		CreatedAt: nowRFC3339(),
	}
	if err := ws.Store.Insert(ctx, models.WellnessTable, entry.ID, entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// Today returns the caller's latest log for today, or a zeroed summary when
// nothing was logged yet.
func (ws *WellnessService) Today(ctx context.Context, caller *models.User) (*models.WellnessLog, error) {
	today := dayKey(time.Now())
	var logs []models.WellnessLog
	query := Query{
		Filter:   Filter{Equals: map[string]string{"user_id": caller.ID, "date": today}},
		SortDesc: "created_at",
		Limit:    1,
	}
	if _, err := ws.Store.FindMany(ctx, models.WellnessTable, query, &logs); err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return &models.WellnessLog{UserID: caller.ID, Date: today}, nil
	}
	return &logs[0], nil
}

// History returns the caller's logs from the past N days, newest first.
func (ws *WellnessService) History(ctx context.Context, caller *models.User, days int) ([]models.WellnessLog, error) {
	if days < 1 {
		days = 7
	}
	start := dayKey(time.Now().AddDate(0, 0, -days))

	var logs []models.WellnessLog
	query := Query{
		Filter:   Filter{Equals: map[string]string{"user_id": caller.ID}},
		SortDesc: "date",
	}
	if _, err := ws.Store.FindMany(ctx, models.WellnessTable, query, &logs); err != nil {
		return nil, err
	}

	// Day keys sort lexicographically, so the cutoff is a string compare.
	recent := make([]models.WellnessLog, 0, len(logs))
	for _, entry := range logs {
		if entry.Date >= start {
			recent = append(recent, entry)
		}
	}
	return recent, nil
}
