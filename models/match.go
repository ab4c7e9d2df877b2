package models

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// Match statuses. Transitions are organizer-driven and intentionally not
// enforced as a state machine; only "completed" gates new joins.
const (
	MatchStatusUpcoming  = "upcoming"
	MatchStatusLive      = "live"
	MatchStatusCompleted = "completed"
)

// DefaultMaxPlayers is used when a match is created without max_players.
const DefaultMaxPlayers = 22

// Score holds the running result of a match.
type Score struct {
	TeamA int `dynamodbav:"team_a" json:"team_a"`
	TeamB int `dynamodbav:"team_b" json:"team_b"`
}

// ParticipantDetail is a denormalized snapshot of a user's display fields,
// stored on the match so rosters render without a user lookup. It may drift
// from the live user record; ListParticipants repairs it.
type ParticipantDetail struct {
	UserID   string `dynamodbav:"user_id" json:"user_id"`
	FullName string `dynamodbav:"full_name" json:"full_name"`
	Username string `dynamodbav:"username" json:"username"`
	Email    string `dynamodbav:"email" json:"email"`
	AddedAt  string `dynamodbav:"added_at" json:"added_at"`
}

// Match defines the structure for organized matches. The organizer is always
// the first entry of Participants and can never be removed.
type Match struct {
	ID                 string              `dynamodbav:"matchId" json:"_id"`
	OrganizerID        string              `dynamodbav:"organizer_id" json:"organizer_id"`
	Title              string              `dynamodbav:"title" json:"title"`
	Date               string              `dynamodbav:"date" json:"date"`
	Time               string              `dynamodbav:"time" json:"time"`
	Location           string              `dynamodbav:"location" json:"location"`
	MatchType          string              `dynamodbav:"match_type" json:"match_type"`
	Description        string              `dynamodbav:"description" json:"description"`
	MaxPlayers         int                 `dynamodbav:"max_players" json:"max_players"`
	Participants       []string            `dynamodbav:"participants" json:"participants"`
	ParticipantDetails []ParticipantDetail `dynamodbav:"participant_details" json:"participant_details"`
	Status             string              `dynamodbav:"status" json:"status"`
	Score              Score               `dynamodbav:"score" json:"score"`
	VideoURL           string              `dynamodbav:"video_url,omitempty" json:"video_url,omitempty"`
	Highlights         interface{}         `dynamodbav:"highlights,omitempty" json:"highlights,omitempty"`
	EndTime            string              `dynamodbav:"end_time,omitempty" json:"end_time,omitempty"`
	CreatedAt          string              `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt          string              `dynamodbav:"updated_at" json:"updated_at"`
}

// IsOrganizer reports whether the given user created this match.
func (m *Match) IsOrganizer(userID string) bool {
	return m.OrganizerID == userID
}

// HasParticipant reports whether the given user id is on the roster.
func (m *Match) HasParticipant(userID string) bool {
	for _, pid := range m.Participants {
		if pid == userID {
			return true
		}
	}
	return false
}

// MatchView is the serialized projection returned to clients.
type MatchView struct {
	Match
	ParticipantCount int `json:"participant_count"`
}

// View builds the client projection with the derived participant count.
func (m Match) View() MatchView {
	return MatchView{Match: m, ParticipantCount: len(m.Participants)}
}
