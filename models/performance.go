package models

// PerformanceTable is the DynamoDB table name for performance analyses
const PerformanceTable = "Performance"

// Analysis statuses. A record moves pending → processing → completed as the
// ML pipeline picks it up.
const (
	AnalysisStatusPending    = "pending"
	AnalysisStatusProcessing = "processing"
	AnalysisStatusCompleted  = "completed"
)

// PerformanceRecord ties an uploaded match video to its ML analysis.
// AnalysisResults stays nil until the ML job reports back.
type PerformanceRecord struct {
	ID              string      `dynamodbav:"performanceId" json:"_id"`
	UserID          string      `dynamodbav:"user_id" json:"user_id"`
	VideoURL        string      `dynamodbav:"video_url" json:"video_url"`
	MatchType       string      `dynamodbav:"match_type" json:"match_type"`
	Position        string      `dynamodbav:"position" json:"position"`
	MatchDate       string      `dynamodbav:"match_date" json:"match_date"`
	Status          string      `dynamodbav:"status" json:"status"`
	MLJobID         string      `dynamodbav:"ml_job_id,omitempty" json:"ml_job_id,omitempty"`
	AnalysisResults interface{} `dynamodbav:"analysis_results,omitempty" json:"analysis_results,omitempty"`
	CreatedAt       string      `dynamodbav:"created_at" json:"created_at"`
}
