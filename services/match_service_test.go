package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"footy_server/models"
)

func newTestUser(t *testing.T, us *UserService, n int) *models.User {
	t.Helper()
	user, err := us.Signup(context.Background(), SignupInput{
		Email:    fmt.Sprintf("player%d@example.com", n),
		Password: "secret123",
		Username: fmt.Sprintf("player%d", n),
		FullName: fmt.Sprintf("Player %d", n),
	})
	require.NoError(t, err)
	return user
}

func newMatchFixture(t *testing.T) (*MatchService, *UserService, *models.User) {
	t.Helper()
	store := NewMemoryStore()
	us := NewUserService(store)
	ms := NewMatchService(store)
	organizer := newTestUser(t, us, 0)
	return ms, us, organizer
}

func createMatch(t *testing.T, ms *MatchService, organizer *models.User, in CreateMatchInput) string {
	t.Helper()
	if in.Date == "" {
		in.Date = "2026-09-05"
	}
	if in.Time == "" {
		in.Time = "18:00"
	}
	if in.Location == "" {
		in.Location = "City Arena"
	}
	id, err := ms.Create(context.Background(), organizer, in)
	require.NoError(t, err)
	return id
}

func TestCreateMatchDefaults(t *testing.T) {
	ms, _, organizer := newMatchFixture(t)
	ctx := context.Background()

	id := createMatch(t, ms, organizer, CreateMatchInput{Opponent: "FC Rivals"})

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "FC Rivals", match.Title)
	assert.Equal(t, "friendly", match.MatchType)
	assert.Equal(t, models.MatchStatusUpcoming, match.Status)
	assert.Equal(t, models.DefaultMaxPlayers, match.MaxPlayers)
	assert.Equal(t, models.Score{}, match.Score)
	assert.Equal(t, []string{organizer.ID}, match.Participants)
	assert.Equal(t, 1, match.ParticipantCount)
	require.Len(t, match.ParticipantDetails, 1)
	assert.Equal(t, organizer.Username, match.ParticipantDetails[0].Username)
}

func TestCreateMatchTitleFallsBackToGeneric(t *testing.T) {
	ms, _, organizer := newMatchFixture(t)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	match, err := ms.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New Match", match.Title)
}

func TestCreateMatchValidation(t *testing.T) {
	ms, _, organizer := newMatchFixture(t)
	ctx := context.Background()

	_, err := ms.Create(ctx, organizer, CreateMatchInput{Time: "18:00", Location: "Arena"})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)

	_, err = ms.Create(ctx, organizer, CreateMatchInput{
		Date: "2026-09-05", Time: "18:00", Location: "Arena", MaxPlayers: "abc",
	})
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "max_players must be a number", se.Message)

	_, err = ms.Create(ctx, organizer, CreateMatchInput{
		Date: "2026-09-05", Time: "18:00", Location: "Arena", MaxPlayers: float64(1),
	})
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "max_players must be at least 2", se.Message)
}

func TestCreateMatchAcceptsStringMaxPlayers(t *testing.T) {
	ms, _, organizer := newMatchFixture(t)

	id := createMatch(t, ms, organizer, CreateMatchInput{MaxPlayers: " 10 "})

	match, err := ms.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 10, match.MaxPlayers)
}

func TestJoinMatch(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	require.NoError(t, ms.Join(ctx, player, id))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{organizer.ID, player.ID}, match.Participants)
	assert.Len(t, match.ParticipantDetails, 2)

	err = ms.Join(ctx, player, id)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Already joined this match", se.Message)
}

func TestJoinCompletedMatchRejected(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{Status: models.MatchStatusCompleted})

	err := ms.Join(ctx, player, id)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, se.Kind)
	assert.Equal(t, "Cannot join a completed match", se.Message)
}

func TestJoinFullMatchRejected(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()

	id := createMatch(t, ms, organizer, CreateMatchInput{MaxPlayers: 2})

	require.NoError(t, ms.Join(ctx, newTestUser(t, us, 1), id))

	err := ms.Join(ctx, newTestUser(t, us, 2), id)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Match is full", se.Message)
}

func TestConcurrentJoinsNeverOverfill(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()

	const maxPlayers = 5
	id := createMatch(t, ms, organizer, CreateMatchInput{MaxPlayers: maxPlayers})

	players := make([]*models.User, 12)
	for i := range players {
		players[i] = newTestUser(t, us, i+1)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(players))
	for i, p := range players {
		wg.Add(1)
		go func(i int, p *models.User) {
			defer wg.Done()
			errs[i] = ms.Join(ctx, p, id)
		}(i, p)
	}
	wg.Wait()

	joined := 0
	for _, err := range errs {
		if err == nil {
			joined++
			continue
		}
		se, ok := AsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, "Match is full", se.Message)
	}
	assert.Equal(t, maxPlayers-1, joined)

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, match.Participants, maxPlayers)
	assert.Len(t, match.ParticipantDetails, maxPlayers)
}

func TestRejoinAfterLeaveAtCapacity(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	playerA := newTestUser(t, us, 1)
	playerB := newTestUser(t, us, 2)

	id := createMatch(t, ms, organizer, CreateMatchInput{MaxPlayers: 2})
	require.NoError(t, ms.Join(ctx, playerA, id))

	err := ms.Join(ctx, playerB, id)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Match is full", se.Message)

	// A freed slot is immediately joinable again.
	require.NoError(t, ms.Leave(ctx, playerA, id))
	require.NoError(t, ms.Join(ctx, playerB, id))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{organizer.ID, playerB.ID}, match.Participants)
	require.Len(t, match.ParticipantDetails, 2)
	assert.Equal(t, playerB.ID, match.ParticipantDetails[1].UserID)
}

func TestGetMatchNotFound(t *testing.T) {
	ms, _, _ := newMatchFixture(t)
	ctx := context.Background()

	_, err := ms.GetByID(ctx, "not-a-uuid")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)

	_, err = ms.GetByID(ctx, "6b3f0f5e-0000-4000-8000-000000000000")
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Match not found", se.Message)
}

func TestLeaveMatch(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})
	require.NoError(t, ms.Join(ctx, player, id))

	require.NoError(t, ms.Leave(ctx, player, id))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{organizer.ID}, match.Participants)
	assert.Len(t, match.ParticipantDetails, 1)
}

func TestLeaveIsNoOpForNonParticipant(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	outsider := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	require.NoError(t, ms.Leave(ctx, outsider, id))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{organizer.ID}, match.Participants)
}

func TestOrganizerCannotLeave(t *testing.T) {
	ms, _, organizer := newMatchFixture(t)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	err := ms.Leave(context.Background(), organizer, id)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Organizer cannot leave their own match", se.Message)
}

func TestAddParticipant(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	require.NoError(t, ms.AddParticipant(ctx, organizer, id, player.ID))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, match.HasParticipant(player.ID))

	err = ms.AddParticipant(ctx, organizer, id, player.ID)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "User is already in this match", se.Message)
}

func TestAddParticipantAuthorization(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)
	stranger := newTestUser(t, us, 2)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	err := ms.AddParticipant(ctx, player, id, stranger.ID)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthorization, se.Kind)
	assert.Equal(t, "Only organizer can add participants", se.Message)

	err = ms.AddParticipant(ctx, organizer, id, "bogus")
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)

	err = ms.AddParticipant(ctx, organizer, id, "6b3f0f5e-0000-4000-8000-000000000000")
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "User not found", se.Message)
}

func TestRemoveParticipant(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})
	require.NoError(t, ms.Join(ctx, player, id))

	require.NoError(t, ms.RemoveParticipant(ctx, organizer, id, player.ID))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, match.HasParticipant(player.ID))
}

func TestRemoveParticipantGuards(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})
	require.NoError(t, ms.Join(ctx, player, id))

	err := ms.RemoveParticipant(ctx, player, id, organizer.ID)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Only organizer can remove participants", se.Message)

	err = ms.RemoveParticipant(ctx, organizer, id, "")
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "user_id is required", se.Message)

	err = ms.RemoveParticipant(ctx, organizer, id, organizer.ID)
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Organizer cannot be removed", se.Message)
}

func TestListParticipantsRefreshesSnapshots(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})
	require.NoError(t, ms.Join(ctx, player, id))

	newName := "Renamed Player"
	require.NoError(t, us.UpdateProfile(ctx, player.ID, ProfileUpdateInput{FullName: &newName}))

	roster, err := ms.ListParticipants(ctx, id)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, newName, roster[1].FullName)

	// The cached snapshots were rewritten from the live records.
	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, match.ParticipantDetails, 2)
	assert.Equal(t, newName, match.ParticipantDetails[1].FullName)
	assert.NotEmpty(t, match.ParticipantDetails[1].AddedAt)
}

func TestListParticipantsKeepsDeletedUsers(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	ms := NewMatchService(store)
	ctx := context.Background()

	organizer := newTestUser(t, us, 0)
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})
	require.NoError(t, ms.Join(ctx, player, id))

	require.NoError(t, store.Delete(ctx, models.UsersTable, player.ID))

	roster, err := ms.ListParticipants(ctx, id)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, player.ID, roster[1].ID)
	assert.Equal(t, player.Username, roster[1].Username)
}

func TestUpdateScore(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	err := ms.UpdateScore(ctx, player, id, UpdateScoreInput{})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Only organizer can update score", se.Message)

	status := models.MatchStatusCompleted
	endTime := "2026-09-05T20:00:00Z"
	require.NoError(t, ms.UpdateScore(ctx, organizer, id, UpdateScoreInput{
		Score:   &models.Score{TeamA: 3, TeamB: 1},
		Status:  &status,
		EndTime: &endTime,
	}))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.Score{TeamA: 3, TeamB: 1}, match.Score)
	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	assert.Equal(t, endTime, match.EndTime)
}

func TestUpdateScorePartialWrite(t *testing.T) {
	ms, _, organizer := newMatchFixture(t)
	ctx := context.Background()

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	require.NoError(t, ms.UpdateScore(ctx, organizer, id, UpdateScoreInput{
		Score: &models.Score{TeamA: 1},
	}))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, match.Score.TeamA)
	assert.Equal(t, models.MatchStatusUpcoming, match.Status)
	assert.Empty(t, match.EndTime)
}

func TestAttachVideo(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	err := ms.AttachVideo(ctx, player, id, "https://cdn.example.com/v.mp4", nil)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Only organizer can upload match video", se.Message)

	highlights := []interface{}{map[string]interface{}{"minute": float64(12), "event": "goal"}}
	require.NoError(t, ms.AttachVideo(ctx, organizer, id, "https://cdn.example.com/v.mp4", highlights))

	match, err := ms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/v.mp4", match.VideoURL)
	assert.NotNil(t, match.Highlights)
}

func TestDeleteMatch(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	id := createMatch(t, ms, organizer, CreateMatchInput{})

	err := ms.Delete(ctx, player, id)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Only organizer can delete", se.Message)

	require.NoError(t, ms.Delete(ctx, organizer, id))

	_, err = ms.GetByID(ctx, id)
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Match not found", se.Message)
}

func TestListFilters(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	upcomingID := createMatch(t, ms, organizer, CreateMatchInput{})
	createMatch(t, ms, organizer, CreateMatchInput{Status: models.MatchStatusCompleted})
	require.NoError(t, ms.Join(ctx, player, upcomingID))

	page, err := ms.List(ctx, player, "upcoming", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Matches, 1)
	assert.Equal(t, upcomingID, page.Matches[0].ID)

	page, err = ms.List(ctx, player, "my", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	page, err = ms.List(ctx, player, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = ms.List(ctx, player, "", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Matches, 1)
}

// contendedStore fails every pull the way the DynamoDB backend does when
// concurrent roster moves invalidate the pinned index on both attempts.
type contendedStore struct {
	DocumentStore
}

func (s *contendedStore) UpdateFields(ctx context.Context, table, id string, u Update) error {
	if len(u.Pull) > 0 {
		return ErrGuardFailed
	}
	return s.DocumentStore.UpdateFields(ctx, table, id, u)
}

func TestLeaveUnderRosterContentionIsConflict(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	ctx := context.Background()
	organizer := newTestUser(t, us, 0)
	player := newTestUser(t, us, 1)

	ms := NewMatchService(&contendedStore{DocumentStore: store})
	id := createMatch(t, ms, organizer, CreateMatchInput{})
	require.NoError(t, ms.Join(ctx, player, id))

	err := ms.Leave(ctx, player, id)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, se.Kind)
	assert.Equal(t, "Roster changed, please try again", se.Message)
}

func TestHistoryAndSummary(t *testing.T) {
	ms, us, organizer := newMatchFixture(t)
	ctx := context.Background()
	player := newTestUser(t, us, 1)

	first := createMatch(t, ms, organizer, CreateMatchInput{})
	second := createMatch(t, ms, organizer, CreateMatchInput{Status: models.MatchStatusCompleted})
	require.NoError(t, ms.Join(ctx, player, first))
	require.NoError(t, ms.AddParticipant(ctx, organizer, second, player.ID))

	history, err := ms.History(ctx, player)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	summary, err := ms.Summary(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Len(t, summary.Upcoming, 1)
	assert.Len(t, summary.Completed, 1)
}
