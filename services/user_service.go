package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"footy_server/models"
)

// UserService handles accounts: signup, login, profile and stat updates.
type UserService struct {
	Store DocumentStore
}

func NewUserService(store DocumentStore) *UserService {
	return &UserService{Store: store}
}

// SignupInput is the signup request body. Football stats are optional and
// default to zero values.
type SignupInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Username   string `json:"username" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profile_pic"`

	MatchesPlayed int    `json:"matches_played"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	Position      string `json:"position"`
	PreferredFoot string `json:"preferred_foot"`
	JerseyNumber  int    `json:"jersey_number"`
}

// ProfileUpdateInput carries a partial profile update; nil fields are left
// untouched.
type ProfileUpdateInput struct {
	Username   *string `json:"username"`
	FullName   *string `json:"full_name"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profile_pic"`
}

// StatsUpdateInput carries a partial football-stats update.
type StatsUpdateInput struct {
	MatchesPlayed *int    `json:"matches_played"`
	Goals         *int    `json:"goals"`
	Assists       *int    `json:"assists"`
	YellowCards   *int    `json:"yellow_cards"`
	RedCards      *int    `json:"red_cards"`
	Position      *string `json:"position"`
	PreferredFoot *string `json:"preferred_foot"`
	JerseyNumber  *int    `json:"jersey_number"`
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Signup creates a new account. Emails are unique.
func (us *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if existing, _ := us.GetByEmail(ctx, in.Email); existing != nil {
		return nil, conflictError("Email already exists")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:            uuid.NewString(),
		Email:         in.Email,
		Password:      hash,
		Username:      in.Username,
		FullName:      in.FullName,
		Bio:           in.Bio,
		ProfilePic:    in.ProfilePic,
		Followers:     []string{},
		Following:     []string{},
		MatchesPlayed: in.MatchesPlayed,
		Goals:         in.Goals,
		Assists:       in.Assists,
		YellowCards:   in.YellowCards,
		RedCards:      in.RedCards,
		Position:      in.Position,
		PreferredFoot: in.PreferredFoot,
		JerseyNumber:  in.JerseyNumber,
		CreatedAt:     nowRFC3339(),
	}

	if err := us.Store.Insert(ctx, models.UsersTable, user.ID, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and returns the account.
func (us *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := us.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User not found")
	}
	if !checkPassword(user.Password, password) {
		return nil, validationError("Incorrect password")
	}
	return user, nil
}

// GetByID fetches a user; malformed ids read as not found.
func (us *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, notFoundError("User not found")
	}
	var user models.User
	if err := us.Store.FindByID(ctx, models.UsersTable, userID, &user); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no account has the email.
func (us *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	query := Query{Filter: Filter{Equals: map[string]string{"email": email}}, Limit: 1}
	if _, err := us.Store.FindMany(ctx, models.UsersTable, query, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// List returns a page of accounts for the explore screen.
func (us *UserService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	if limit < 1 {
		limit = 50
	}
	var users []models.User
	query := Query{SortDesc: "created_at", Skip: skip, Limit: limit}
	if _, err := us.Store.FindMany(ctx, models.UsersTable, query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile applies a partial profile update to the caller's account.
func (us *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) error {
	set := map[string]interface{}{}
	if in.Username != nil {
		set["username"] = *in.Username
	}
	if in.FullName != nil {
		set["full_name"] = *in.FullName
	}
	if in.Bio != nil {
		set["bio"] = *in.Bio
	}
	if in.ProfilePic != nil {
		set["profile_pic"] = *in.ProfilePic
	}
	if len(set) == 0 {
		return validationError("No fields to update")
	}
	return us.Store.UpdateFields(ctx, models.UsersTable, userID, Update{Set: set})
}

// UpdateStats applies a partial football-stats update to the caller's
// account.
func (us *UserService) UpdateStats(ctx context.Context, userID string, in StatsUpdateInput) error {
	set := map[string]interface{}{}
	if in.MatchesPlayed != nil {
		set["matches_played"] = *in.MatchesPlayed
	}
	if in.Goals != nil {
		set["goals"] = *in.Goals
	}
	if in.Assists != nil {
		set["assists"] = *in.Assists
	}
	if in.YellowCards != nil {
		set["yellow_cards"] = *in.YellowCards
	}
	if in.RedCards != nil {
		set["red_cards"] = *in.RedCards
	}
	if in.Position != nil {
		set["position"] = *in.Position
	}
	if in.PreferredFoot != nil {
		set["preferred_foot"] = *in.PreferredFoot
	}
	if in.JerseyNumber != nil {
		set["jersey_number"] = *in.JerseyNumber
	}
	if len(set) == 0 {
		return validationError("No stats to update")
	}
	return us.Store.UpdateFields(ctx, models.UsersTable, userID, Update{Set: set})
}
