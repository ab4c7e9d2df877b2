package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"footy_server/models"
)

// MatchService owns the full lifecycle of a match: creation, capacity-bounded
// roster changes, score/status/video updates, roster reconciliation, deletion
// and list queries. All state lives in the document store; the service keeps
// nothing between calls.
type MatchService struct {
	Store DocumentStore
}

func NewMatchService(store DocumentStore) *MatchService {
	return &MatchService{Store: store}
}

// CreateMatchInput is the create-match request body. MaxPlayers is loosely
// typed because clients send it both as a number and as a string.
type CreateMatchInput struct {
	Title       string        `json:"title"`
	Opponent    string        `json:"opponent"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Location    string        `json:"location"`
	MatchType   string        `json:"match_type"`
	Description string        `json:"description"`
	MaxPlayers  interface{}   `json:"max_players"`
	Status      string        `json:"status"`
	Score       *models.Score `json:"score"`
}

// UpdateScoreInput carries the organizer's score/status/end-time update.
// Only non-nil fields are written.
type UpdateScoreInput struct {
	Score   *models.Score `json:"score"`
	Status  *string       `json:"status"`
	EndTime *string       `json:"end_time"`
}

// MatchPage is one page of serialized matches.
type MatchPage struct {
	Matches []models.MatchView
	Total   int
}

// HistorySummary buckets a user's matches by status.
type HistorySummary struct {
	Total     int                `json:"total"`
	Upcoming  []models.MatchView `json:"upcoming"`
	Completed []models.MatchView `json:"completed"`
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func participantSnapshot(user *models.User, addedAt string) models.ParticipantDetail {
	return models.ParticipantDetail{
		UserID:   user.ID,
		FullName: user.FullName,
		Username: user.Username,
		Email:    user.Email,
		AddedAt:  addedAt,
	}
}

// Create inserts a new match with the caller as organizer and sole
// participant, returning the new match id.
func (ms *MatchService) Create(ctx context.Context, caller *models.User, in CreateMatchInput) (string, error) {
	if in.Date == "" || in.Time == "" || in.Location == "" {
		return "", validationError("date, time and location are required")
	}

	maxPlayers, err := parseMaxPlayers(in.MaxPlayers)
	if err != nil {
		return "", err
	}

	title := in.Title
	if title == "" {
		title = in.Opponent
	}
	if title == "" {
		title = "New Match"
	}

	matchType := in.MatchType
	if matchType == "" {
		matchType = "friendly"
	}
	status := in.Status
	if status == "" {
		status = models.MatchStatusUpcoming
	}
	score := models.Score{}
	if in.Score != nil {
		score = *in.Score
	}

	now := nowRFC3339()
	match := models.Match{
		ID:                 uuid.NewString(),
		OrganizerID:        caller.ID,
		Title:              title,
		Date:               in.Date,
		Time:               in.Time,
		Location:           in.Location,
		MatchType:          matchType,
		Description:        in.Description,
		MaxPlayers:         maxPlayers,
		Participants:       []string{caller.ID},
		ParticipantDetails: []models.ParticipantDetail{participantSnapshot(caller, now)},
		Status:             status,
		Score:              score,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := ms.Store.Insert(ctx, models.MatchesTable, match.ID, match); err != nil {
		return "", err
	}
	return match.ID, nil
}

func parseMaxPlayers(raw interface{}) (int, error) {
	maxPlayers := models.DefaultMaxPlayers
	switch v := raw.(type) {
	case nil:
	case float64:
		maxPlayers = int(v)
	case int:
		maxPlayers = v
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, validationError("max_players must be a number")
		}
		maxPlayers = parsed
	default:
		return 0, validationError("max_players must be a number")
	}
	if maxPlayers < 2 {
		return 0, validationError("max_players must be at least 2")
	}
	return maxPlayers, nil
}

// List returns a page of matches for the given filter: "upcoming" and
// "completed" select by status, "my" selects matches the caller is on,
// anything else selects all.
func (ms *MatchService) List(ctx context.Context, caller *models.User, filter string, page, limit int) (*MatchPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := Query{SortDesc: "created_at", Skip: (page - 1) * limit, Limit: limit}
	switch strings.ToLower(filter) {
	case "upcoming":
		query.Filter.Equals = map[string]string{"status": models.MatchStatusUpcoming}
	case "completed":
		query.Filter.Equals = map[string]string{"status": models.MatchStatusCompleted}
	case "my":
		query.Filter.Contains = map[string]string{"participants": caller.ID}
	}

	var matches []models.Match
	total, err := ms.Store.FindMany(ctx, models.MatchesTable, query, &matches)
	if err != nil {
		return nil, err
	}

	views := make([]models.MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, m.View())
	}
	return &MatchPage{Matches: views, Total: total}, nil
}

// GetByID returns a serialized match. A malformed id is reported the same
// way as a missing one.
func (ms *MatchService) GetByID(ctx context.Context, matchID string) (*models.MatchView, error) {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	view := match.View()
	return &view, nil
}

func (ms *MatchService) getMatch(ctx context.Context, matchID string) (*models.Match, error) {
	if _, err := uuid.Parse(matchID); err != nil {
		return nil, notFoundError("Invalid match id")
	}
	var match models.Match
	if err := ms.Store.FindByID(ctx, models.MatchesTable, matchID, &match); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, notFoundError("Match not found")
		}
		return nil, err
	}
	return &match, nil
}

// Join adds the caller to the roster. The capacity and duplicate checks are
// re-applied atomically by the store guard, so concurrent joins cannot
// overfill a match.
func (ms *MatchService) Join(ctx context.Context, caller *models.User, matchID string) error {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if match.Status == models.MatchStatusCompleted {
		return conflictError("Cannot join a completed match")
	}
	if match.HasParticipant(caller.ID) {
		return conflictError("Already joined this match")
	}
	if len(match.Participants) >= match.MaxPlayers {
		return conflictError("Match is full")
	}
	return ms.appendParticipant(ctx, match, caller, "Already joined this match")
}

// AddParticipant lets the organizer add a player by user id. Same append
// semantics as Join, but the snapshot is built from the target's record.
func (ms *MatchService) AddParticipant(ctx context.Context, caller *models.User, matchID, targetUserID string) error {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.IsOrganizer(caller.ID) {
		return authorizationError("Only organizer can add participants")
	}

	targetUserID = strings.TrimSpace(targetUserID)
	if _, err := uuid.Parse(targetUserID); err != nil {
		return validationError("Valid user_id is required")
	}

	var target models.User
	if err := ms.Store.FindByID(ctx, models.UsersTable, targetUserID, &target); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return notFoundError("User not found")
		}
		return err
	}

	if match.HasParticipant(targetUserID) {
		return conflictError("User is already in this match")
	}
	if len(match.Participants) >= match.MaxPlayers {
		return conflictError("Match is full")
	}
	return ms.appendParticipant(ctx, match, &target, "User is already in this match")
}

// appendParticipant performs the guarded roster push. When the guard fails
// the match is re-read once to tell "already joined" apart from "became
// full in the meantime".
func (ms *MatchService) appendParticipant(ctx context.Context, match *models.Match, user *models.User, joinedMsg string) error {
	update := Update{
		Set: map[string]interface{}{"updated_at": nowRFC3339()},
		Push: map[string]interface{}{
			"participants":        user.ID,
			"participant_details": participantSnapshot(user, nowRFC3339()),
		},
		Guard: &Guard{Field: "participants", NotContains: user.ID, MaxLen: match.MaxPlayers},
	}

	err := ms.Store.UpdateFields(ctx, models.MatchesTable, match.ID, update)
	if errors.Is(err, ErrGuardFailed) {
		current, rerr := ms.getMatch(ctx, match.ID)
		if rerr != nil {
			return rerr
		}
		if current.HasParticipant(user.ID) {
			return conflictError(joinedMsg)
		}
		return conflictError("Match is full")
	}
	return err
}

// Leave removes the caller from the roster. Leaving a match the caller is
// not on is deliberately a no-op, not an error.
func (ms *MatchService) Leave(ctx context.Context, caller *models.User, matchID string) error {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if match.IsOrganizer(caller.ID) {
		return conflictError("Organizer cannot leave their own match")
	}
	return ms.removeFromRoster(ctx, matchID, caller.ID)
}

// RemoveParticipant lets the organizer remove a player by user id. The
// organizer can never be removed.
func (ms *MatchService) RemoveParticipant(ctx context.Context, caller *models.User, matchID, targetUserID string) error {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.IsOrganizer(caller.ID) {
		return authorizationError("Only organizer can remove participants")
	}
	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		return validationError("user_id is required")
	}
	if targetUserID == match.OrganizerID {
		return conflictError("Organizer cannot be removed")
	}
	return ms.removeFromRoster(ctx, matchID, targetUserID)
}

func (ms *MatchService) removeFromRoster(ctx context.Context, matchID, userID string) error {
	err := ms.Store.UpdateFields(ctx, models.MatchesTable, matchID, Update{
		Set: map[string]interface{}{"updated_at": nowRFC3339()},
		Pull: map[string]interface{}{
			"participants":        userID,
			"participant_details": PullMatch{Field: "user_id", Value: userID},
		},
	})
	if errors.Is(err, ErrGuardFailed) {
		// The store exhausted its pull retry under concurrent roster
		// changes. Retryable from the client's side.
		return conflictError("Roster changed, please try again")
	}
	return err
}

// ListParticipants returns the roster as public-safe projections and
// repairs the cached participant_details while doing so. Users deleted
// since they joined are served from their last-known snapshot instead of
// failing or truncating the roster. The snapshot rewrite is a deliberate
// last-writer-wins reconciliation pass.
func (ms *MatchService) ListParticipants(ctx context.Context, matchID string) ([]models.PublicUser, error) {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	detailsByID := make(map[string]models.ParticipantDetail, len(match.ParticipantDetails))
	for _, detail := range match.ParticipantDetails {
		if detail.UserID != "" {
			detailsByID[detail.UserID] = detail
		}
	}

	participants := make([]models.PublicUser, 0, len(match.Participants))
	refreshed := make([]models.ParticipantDetail, 0, len(match.Participants))

	for _, participantID := range match.Participants {
		var user models.User
		err := ms.Store.FindByID(ctx, models.UsersTable, participantID, &user)
		if err == nil {
			snapshot := participantSnapshot(&user, nowRFC3339())
			if existing, ok := detailsByID[participantID]; ok && existing.AddedAt != "" {
				snapshot.AddedAt = existing.AddedAt
			}
			refreshed = append(refreshed, snapshot)
			participants = append(participants, user.Public())
			continue
		}
		if !errors.Is(err, ErrItemNotFound) {
			return nil, err
		}

		// Degraded read: the user record is gone, keep the cached snapshot.
		detail := detailsByID[participantID]
		detail.UserID = participantID
		if detail.AddedAt == "" {
			detail.AddedAt = nowRFC3339()
		}
		refreshed = append(refreshed, detail)
		participants = append(participants, models.PublicUser{
			ID:       participantID,
			FullName: detail.FullName,
			Username: detail.Username,
			Email:    detail.Email,
		})
	}

	err = ms.Store.UpdateFields(ctx, models.MatchesTable, matchID, Update{
		Set: map[string]interface{}{
			"participant_details": refreshed,
			"updated_at":          nowRFC3339(),
		},
	})
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// UpdateScore writes the supplied subset of score/status/end_time. Status
// values are not validated against a state machine on purpose; transitions
// are organizer-driven.
func (ms *MatchService) UpdateScore(ctx context.Context, caller *models.User, matchID string, in UpdateScoreInput) error {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.IsOrganizer(caller.ID) {
		return authorizationError("Only organizer can update score")
	}

	set := map[string]interface{}{"updated_at": nowRFC3339()}
	if in.Score != nil {
		set["score"] = *in.Score
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.EndTime != nil {
		set["end_time"] = *in.EndTime
	}
	return ms.Store.UpdateFields(ctx, models.MatchesTable, matchID, Update{Set: set})
}

// AttachVideo stores the organizer's video URL and highlights payload.
func (ms *MatchService) AttachVideo(ctx context.Context, caller *models.User, matchID, videoURL string, highlights interface{}) error {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.IsOrganizer(caller.ID) {
		return authorizationError("Only organizer can upload match video")
	}
	return ms.Store.UpdateFields(ctx, models.MatchesTable, matchID, Update{
		Set: map[string]interface{}{
			"video_url":  videoURL,
			"highlights": highlights,
			"updated_at": nowRFC3339(),
		},
	})
}

// Delete permanently removes a match. Organizer only; no soft delete.
func (ms *MatchService) Delete(ctx context.Context, caller *models.User, matchID string) error {
	match, err := ms.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.IsOrganizer(caller.ID) {
		return authorizationError("Only organizer can delete")
	}
	return ms.Store.Delete(ctx, models.MatchesTable, matchID)
}

// History returns every match the caller participates in, newest first.
func (ms *MatchService) History(ctx context.Context, caller *models.User) ([]models.MatchView, error) {
	query := Query{
		Filter:   Filter{Contains: map[string]string{"participants": caller.ID}},
		SortDesc: "created_at",
	}
	var matches []models.Match
	if _, err := ms.Store.FindMany(ctx, models.MatchesTable, query, &matches); err != nil {
		return nil, err
	}
	views := make([]models.MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, m.View())
	}
	return views, nil
}

// Summary partitions the caller's matches into upcoming and completed
// buckets.
func (ms *MatchService) Summary(ctx context.Context, caller *models.User) (*HistorySummary, error) {
	all, err := ms.History(ctx, caller)
	if err != nil {
		return nil, err
	}
	summary := &HistorySummary{Total: len(all), Upcoming: []models.MatchView{}, Completed: []models.MatchView{}}
	for _, m := range all {
		switch m.Status {
		case models.MatchStatusUpcoming:
			summary.Upcoming = append(summary.Upcoming, m)
		case models.MatchStatusCompleted:
			summary.Completed = append(summary.Completed, m)
		}
	}
	return summary, nil
}
