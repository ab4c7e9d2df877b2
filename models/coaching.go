package models

// CoachingTable is the DynamoDB table name for saved coaching achievements
const CoachingTable = "Coaching"

// Achievement is a coaching insight the player pinned to their profile.
type Achievement struct {
	ID          string `dynamodbav:"coachingId" json:"_id"`
	UserID      string `dynamodbav:"user_id" json:"user_id"`
	Title       string `dynamodbav:"title" json:"title"`
	Description string `dynamodbav:"description" json:"description"`
	Icon        string `dynamodbav:"icon" json:"icon"`
	CreatedAt   string `dynamodbav:"created_at" json:"created_at"`
}
