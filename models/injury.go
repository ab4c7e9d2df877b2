package models

// InjuriesTable is the DynamoDB table name for injury records
const InjuriesTable = "Injuries"

// Injury statuses
const (
	InjuryStatusActive   = "active"
	InjuryStatusResolved = "resolved"
)

// InjuryLog records one injury from the day it happened through recovery.
// RecoveryProgress holds the exercises the player checked off.
type InjuryLog struct {
	ID               string   `dynamodbav:"injuryId" json:"_id"`
	UserID           string   `dynamodbav:"user_id" json:"user_id"`
	InjuryType       string   `dynamodbav:"injury_type" json:"injury_type"`
	BodyPart         string   `dynamodbav:"body_part" json:"body_part"`
	PainLevel        int      `dynamodbav:"pain_level" json:"pain_level"`
	RecoveryStage    string   `dynamodbav:"recovery_stage" json:"recovery_stage"`
	Notes            string   `dynamodbav:"notes" json:"notes"`
	DateInjured      string   `dynamodbav:"date_injured" json:"date_injured"`
	Status           string   `dynamodbav:"status" json:"status"`
	RecoveryProgress []string `dynamodbav:"recovery_progress" json:"recovery_progress"`
	ResolvedAt       string   `dynamodbav:"resolved_at,omitempty" json:"resolved_at,omitempty"`
	CreatedAt        string   `dynamodbav:"created_at" json:"created_at"`
}
