package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"footy_server/models"
)

// PerformanceService tracks uploaded match videos and their ML analyses.
// Clients upload the video through a presigned URL first and then register
// the durable URL here.
type PerformanceService struct {
	Store DocumentStore
}

func NewPerformanceService(store DocumentStore) *PerformanceService {
	return &PerformanceService{Store: store}
}

// UploadInput is the register-video request body.
type UploadInput struct {
	VideoURL  string `json:"video_url"`
	MatchType string `json:"match_type"`
	Position  string `json:"position"`
	MatchDate string `json:"match_date"`
}

// AnalysisResult is a performance record with its results resolved.
type AnalysisResult struct {
	PerformanceID  string      `json:"performance_id"`
	VideoURL       string      `json:"video_url"`
	MatchType      string      `json:"match_type"`
	AnalysisStatus string      `json:"analysis_status"`
	Results        interface{} `json:"results"`
}

// PlayerCard is a shareable card built from an analysis.
type PlayerCard struct {
	UserID     string      `json:"user_id"`
	AnalysisID string      `json:"analysis_id"`
	Title      string      `json:"title"`
	Stats      interface{} `json:"stats"`
	CreatedAt  string      `json:"created_at"`
	Shared     bool        `json:"shared"`
}

// MLJobStatus is the ML pipeline's progress report for one job.
type MLJobStatus struct {
	JobID            string      `json:"job_id"`
	ProcessingStatus string      `json:"processing_status"`
	Progress         int         `json:"progress"`
	Results          interface{} `json:"results"`
}

// placeholderResults stands in until the ML pipeline reports real numbers.
func placeholderResults() map[string]interface{} {
	return map[string]interface{}{
		"speed":      map[string]interface{}{"max": "8.2 m/s", "avg": "5.4 m/s"},
		"distance":   "4.3 km",
		"sprints":    24,
		"passes":     map[string]interface{}{"total": 45, "successful": 41, "accuracy": "91%"},
		"shots":      map[string]interface{}{"total": 3, "onTarget": 1},
		"possession": "48%",
		"heatmap":    "Generated",
	}
}

// Register records an uploaded match video for analysis and returns the new
// record's id.
func (ps *PerformanceService) Register(ctx context.Context, caller *models.User, in UploadInput) (string, error) {
	if in.VideoURL == "" {
		return "", validationError("video_url is required")
	}
	if in.MatchType == "" {
		return "", validationError("match_type is required")
	}
	matchDate := in.MatchDate
	if matchDate == "" {
		matchDate = nowRFC3339()
	}
	record := models.PerformanceRecord{
		ID:        uuid.NewString(),
		UserID:    caller.ID,
		VideoURL:  in.VideoURL,
		MatchType: in.MatchType,
		Position:  in.Position,
		MatchDate: matchDate,
		Status:    models.AnalysisStatusProcessing,
		CreatedAt: nowRFC3339(),
	}
	if err := ps.Store.Insert(ctx, models.PerformanceTable, record.ID, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (ps *PerformanceService) getRecord(ctx context.Context, performanceID string) (*models.PerformanceRecord, error) {
	if _, err := uuid.Parse(performanceID); err != nil {
		return nil, notFoundError("Performance record not found")
	}
	var record models.PerformanceRecord
	if err := ps.Store.FindByID(ctx, models.PerformanceTable, performanceID, &record); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, notFoundError("Performance record not found")
		}
		return nil, err
	}
	return &record, nil
}

// Analysis returns a record's analysis, substituting placeholder numbers
// while the ML job is still running.
func (ps *PerformanceService) Analysis(ctx context.Context, performanceID string) (*AnalysisResult, error) {
	record, err := ps.getRecord(ctx, performanceID)
	if err != nil {
		return nil, err
	}
	results := record.AnalysisResults
	if results == nil {
		results = placeholderResults()
	}
	return &AnalysisResult{
		PerformanceID:  record.ID,
		VideoURL:       record.VideoURL,
		MatchType:      record.MatchType,
		AnalysisStatus: record.Status,
		Results:        results,
	}, nil
}

// GeneratePlayerCard builds a shareable card from an analysis.
func (ps *PerformanceService) GeneratePlayerCard(ctx context.Context, caller *models.User, analysisID string) (*PlayerCard, error) {
	record, err := ps.getRecord(ctx, analysisID)
	if err != nil {
		if se, ok := AsServiceError(err); ok && se.Kind == KindNotFound {
			return nil, notFoundError("Analysis not found")
		}
		return nil, err
	}
	stats := record.AnalysisResults
	if stats == nil {
		stats = map[string]interface{}{}
	}
	return &PlayerCard{
		UserID:     caller.ID,
		AnalysisID: record.ID,
		Title:      "Performance Card - " + record.MatchType,
		Stats:      stats,
		CreatedAt:  nowRFC3339(),
	}, nil
}

// HistoryByUser returns all of a user's performance analyses, newest first.
func (ps *PerformanceService) HistoryByUser(ctx context.Context, userID string) ([]models.PerformanceRecord, error) {
	var records []models.PerformanceRecord
	query := Query{
		Filter:   Filter{Equals: map[string]string{"user_id": userID}},
		SortDesc: "created_at",
	}
	if _, err := ps.Store.FindMany(ctx, models.PerformanceTable, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SubmitToML hands a record's video to the ML pipeline and stores the job
// id. The job id is generated locally until the pipeline exposes a submit
// API.
func (ps *PerformanceService) SubmitToML(ctx context.Context, performanceID string) (string, error) {
	record, err := ps.getRecord(ctx, performanceID)
	if err != nil {
		return "", err
	}
	jobID := "job_" + uuid.NewString()
	err = ps.Store.UpdateFields(ctx, models.PerformanceTable, record.ID, Update{
		Set: map[string]interface{}{
			"ml_job_id": jobID,
			"status":    models.AnalysisStatusProcessing,
		},
	})
	if err != nil {
		return "", err
	}
	return jobID, nil
}

// MLStatus reports a job's progress. Static until the pipeline grows a
// status API.
func (ps *PerformanceService) MLStatus(jobID string) *MLJobStatus {
	return &MLJobStatus{
		JobID:            jobID,
		ProcessingStatus: models.AnalysisStatusCompleted,
		Progress:         100,
		Results:          placeholderResults(),
	}
}
