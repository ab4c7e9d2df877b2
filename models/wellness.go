package models

// WellnessTable is the DynamoDB table name for daily wellness logs
const WellnessTable = "Wellness"

// WellnessLog records one day's water/sleep/calorie entries for a user.
// Date is a YYYY-MM-DD day key; one log per user per day is not enforced,
// the latest one wins on reads.
type WellnessLog struct {
	ID        string  `dynamodbav:"wellnessId" json:"_id"`
	UserID    string  `dynamodbav:"user_id" json:"user_id"`
	Date      string  `dynamodbav:"date" json:"date"`
	Water     float64 `dynamodbav:"water" json:"water"`
	Sleep     float64 `dynamodbav:"sleep" json:"sleep"`
	Calories  float64 `dynamodbav:"calories" json:"calories"`
	CreatedAt string  `dynamodbav:"created_at" json:"created_at"`
}
