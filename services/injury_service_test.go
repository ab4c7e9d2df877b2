package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjuryLogAndHistory(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	is := NewInjuryService(store)
	ctx := context.Background()
	user := newTestUser(t, us, 0)

	id, err := is.Log(ctx, user, InjuryInput{
		InjuryType: "Hamstring Strain",
		BodyPart:   "Left Leg",
		PainLevel:  6,
		Notes:      "Pulled during sprint drills",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	history, err := is.History(ctx, user)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Hamstring Strain", history[0].InjuryType)
	assert.Equal(t, "active", history[0].Status)
	assert.Equal(t, dayKey(time.Now()), history[0].DateInjured)
}

func TestInjuryLogRequiresType(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	is := NewInjuryService(store)
	user := newTestUser(t, us, 0)

	_, err := is.Log(context.Background(), user, InjuryInput{BodyPart: "Ankle"})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)
}

func TestInjuryNotFound(t *testing.T) {
	store := NewMemoryStore()
	is := NewInjuryService(store)
	ctx := context.Background()

	_, err := is.Plan(ctx, "not-a-uuid")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
	assert.Equal(t, "Injury not found", se.Message)

	_, err = is.Timeline(ctx, "3f2d9f40-0000-0000-0000-000000000000")
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
}

func TestInjuryUpdateProgress(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	is := NewInjuryService(store)
	ctx := context.Background()
	user := newTestUser(t, us, 0)

	id, err := is.Log(ctx, user, InjuryInput{InjuryType: "Ankle Sprain", PainLevel: 7})
	require.NoError(t, err)

	pain := 3
	notes := "Swelling down, walking normally"
	err = is.UpdateProgress(ctx, id, ProgressInput{
		PainLevel:          &pain,
		Notes:              &notes,
		CompletedExercises: []string{"Light Stretching"},
	})
	require.NoError(t, err)

	history, err := is.History(ctx, user)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].PainLevel)
	assert.Equal(t, notes, history[0].Notes)
	assert.Equal(t, []string{"Light Stretching"}, history[0].RecoveryProgress)

	err = is.UpdateProgress(ctx, id, ProgressInput{})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Equal(t, "No fields to update", se.Message)
}

func TestInjuryResolveLeavesHistoryButNotActive(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	is := NewInjuryService(store)
	ctx := context.Background()
	user := newTestUser(t, us, 0)

	first, err := is.Log(ctx, user, InjuryInput{InjuryType: "Ankle Sprain"})
	require.NoError(t, err)
	_, err = is.Log(ctx, user, InjuryInput{InjuryType: "Knee Bruise"})
	require.NoError(t, err)

	require.NoError(t, is.Resolve(ctx, first))

	active, err := is.Active(ctx, user)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Knee Bruise", active[0].InjuryType)

	history, err := is.History(ctx, user)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	for _, record := range history {
		if record.ID == first {
			assert.Equal(t, "resolved", record.Status)
			assert.NotEmpty(t, record.ResolvedAt)
		}
	}
}

func TestInjuryTimelineMilestones(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	is := NewInjuryService(store)
	ctx := context.Background()
	user := newTestUser(t, us, 0)

	injured := time.Now().AddDate(0, 0, -10)
	id, err := is.Log(ctx, user, InjuryInput{
		InjuryType: "Hamstring Strain",
		Date:       dayKey(injured),
	})
	require.NoError(t, err)

	timeline, err := is.Timeline(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, timeline.InjuryID)
	assert.GreaterOrEqual(t, timeline.DaysElapsed, 9)
	assert.LessOrEqual(t, timeline.DaysElapsed, 10)
	assert.Equal(t, dayKey(injured.AddDate(0, 0, 21)), timeline.EstimatedRecovery)

	require.Len(t, timeline.Milestones, 4)
	assert.Equal(t, "completed", timeline.Milestones[0].Status)
	assert.Equal(t, "completed", timeline.Milestones[1].Status)
	assert.Equal(t, "in_progress", timeline.Milestones[2].Status)
	assert.Equal(t, "pending", timeline.Milestones[3].Status)
}

func TestInjuryPlanMatchesInjuryType(t *testing.T) {
	store := NewMemoryStore()
	us := NewUserService(store)
	is := NewInjuryService(store)
	ctx := context.Background()
	user := newTestUser(t, us, 0)

	id, err := is.Log(ctx, user, InjuryInput{InjuryType: "Calf Strain"})
	require.NoError(t, err)

	plan, err := is.Plan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Calf Strain", plan.InjuryType)
	assert.NotEmpty(t, plan.Dos)
	assert.NotEmpty(t, plan.Donts)
	assert.NotEmpty(t, plan.Exercises)

	exercises := is.Exercises("Calf Strain")
	assert.Len(t, exercises, 3)
}
