package models

// UsersTable is the DynamoDB table name for user accounts
const UsersTable = "Users"

// User defines the structure for user accounts, including the football
// profile stats shown on player cards.
type User struct {
	ID         string `dynamodbav:"userId" json:"id"`
	Email      string `dynamodbav:"email" json:"email"`
	Password   string `dynamodbav:"password" json:"-"`
	Username   string `dynamodbav:"username" json:"username"`
	FullName   string `dynamodbav:"full_name" json:"full_name"`
	Bio        string `dynamodbav:"bio" json:"bio"`
	ProfilePic string `dynamodbav:"profile_pic" json:"profile_pic"`

	Followers []string `dynamodbav:"followers" json:"followers"`
	Following []string `dynamodbav:"following" json:"following"`

	MatchesPlayed int    `dynamodbav:"matches_played" json:"matches_played"`
	Goals         int    `dynamodbav:"goals" json:"goals"`
	Assists       int    `dynamodbav:"assists" json:"assists"`
	YellowCards   int    `dynamodbav:"yellow_cards" json:"yellow_cards"`
	RedCards      int    `dynamodbav:"red_cards" json:"red_cards"`
	Position      string `dynamodbav:"position" json:"position"`
	PreferredFoot string `dynamodbav:"preferred_foot" json:"preferred_foot"`
	JerseyNumber  int    `dynamodbav:"jersey_number" json:"jersey_number"`

	CreatedAt string `dynamodbav:"created_at" json:"created_at"`
}

// PublicUser is the password-free projection used in rosters and post owners.
type PublicUser struct {
	ID       string `json:"_id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips everything that must not leave the server.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, FullName: u.FullName, Username: u.Username, Email: u.Email}
}
