package services

import (
	"context"
	"testing"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInitialRounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tid, err := f.seedTournament(ctx)
	require.NoError(t, err)

	matches, err := f.schedule.GenerateInitialRounds(ctx, organizer, tid)
	require.NoError(t, err)
	require.Len(t, matches, 48)
	for i, m := range matches {
		assert.Equal(t, i+1, m.MatchNumber)
		assert.NotZero(t, m.ID)
		assert.Equal(t, models.StatusScheduled, m.Status)
	}

	tour, err := f.tournament.GetTournament(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, tour.Status)
	assert.True(t, tour.Rounds12Generated)
	assert.Len(t, tour.Matches, 48)
	assert.Equal(t, []string{brackets.EventScheduleGenerated}, f.notifier.types())

	t.Run("second call is rejected", func(t *testing.T) {
		_, err := f.schedule.GenerateInitialRounds(ctx, organizer, tid)
		assert.ErrorIs(t, err, ErrScheduleAlreadyGenerated)
	})

	t.Run("roster is locked afterwards", func(t *testing.T) {
		_, err := f.tournament.AddPlayer(ctx, organizer, tid, AddPlayerInput{Name: "Late", Group: models.GroupA})
		assert.ErrorIs(t, err, ErrRosterLocked)
	})
}

func TestGenerateInitialRoundsRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("player role", func(t *testing.T) {
		f := newFixture()
		tid, err := f.seedTournament(ctx)
		require.NoError(t, err)
		_, err = f.schedule.GenerateInitialRounds(ctx, Actor{UserID: 99, Role: models.RolePlayer}, tid)
		assert.ErrorIs(t, err, brackets.ErrUnauthorized)
	})

	t.Run("foreign organizer", func(t *testing.T) {
		f := newFixture()
		tid, err := f.seedTournament(ctx)
		require.NoError(t, err)
		_, err = f.schedule.GenerateInitialRounds(ctx, Actor{UserID: 99, Role: models.RoleOrganizer}, tid)
		assert.ErrorIs(t, err, brackets.ErrUnauthorized)
	})

	t.Run("short group writes nothing", func(t *testing.T) {
		f := newFixture()
		tour, err := f.tournament.CreateTournament(ctx, organizer, CreateTournamentInput{Name: "Short"})
		require.NoError(t, err)
		for _, g := range models.AllGroups {
			for c := 1; c <= 2; c++ {
				_, err := f.tournament.AddCourt(ctx, organizer, tour.ID, AddCourtInput{Name: string(g) + "c", MenuOrder: c, Group: g})
				require.NoError(t, err)
			}
			n := 8
			if g == models.GroupB {
				n = 7
			}
			for i := 0; i < n; i++ {
				_, err := f.tournament.AddPlayer(ctx, organizer, tour.ID, AddPlayerInput{Name: string(g) + string(rune('a'+i)), Group: g})
				require.NoError(t, err)
			}
		}

		_, err = f.schedule.GenerateInitialRounds(ctx, organizer, tour.ID)
		assert.ErrorIs(t, err, brackets.ErrInsufficientPlayers)
		assert.Empty(t, f.store.matches)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		f := newFixture()
		_, err := f.schedule.GenerateInitialRounds(ctx, organizer, 12345)
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})
}

func TestRound3Flow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tid, err := f.seedTournament(ctx)
	require.NoError(t, err)
	_, err = f.schedule.GenerateInitialRounds(ctx, organizer, tid)
	require.NoError(t, err)

	report, err := f.schedule.Readiness(ctx, tid, models.RoleOrganizer)
	require.NoError(t, err)
	assert.False(t, report.IsReady)
	assert.Equal(t, brackets.StateRound1Incomplete, report.State)

	_, err = f.schedule.GenerateRound3(ctx, organizer, tid)
	var notReady *brackets.NotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.ErrorIs(t, err, brackets.ErrNotReady)

	require.NoError(t, f.completeRound(ctx, tid, 1))
	report, err = f.schedule.Readiness(ctx, tid, models.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, brackets.StateRound2Incomplete, report.State)

	require.NoError(t, f.completeRound(ctx, tid, 2))
	report, err = f.schedule.Readiness(ctx, tid, models.RoleOrganizer)
	require.NoError(t, err)
	assert.True(t, report.IsReady)

	report, err = f.schedule.Readiness(ctx, tid, models.RolePlayer)
	require.NoError(t, err)
	assert.False(t, report.IsReady)
	assert.Equal(t, brackets.StateLackingPermission, report.State)

	round3, err := f.schedule.GenerateRound3(ctx, organizer, tid)
	require.NoError(t, err)
	require.Len(t, round3, 12)
	for i, m := range round3 {
		assert.Equal(t, 49+i, m.MatchNumber)
		assert.Equal(t, brackets.Round3Number, m.RoundNumber)
	}
	assert.Contains(t, f.notifier.types(), brackets.EventRound3Generated)

	_, err = f.schedule.GenerateRound3(ctx, organizer, tid)
	assert.ErrorIs(t, err, brackets.ErrAlreadyGenerated)

	report, err = f.schedule.Readiness(ctx, tid, models.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, brackets.StateAlreadyGenerated, report.State)
}

func TestRound3IgnoresInvalidCompletions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tid, err := f.seedTournament(ctx)
	require.NoError(t, err)
	_, err = f.schedule.GenerateInitialRounds(ctx, organizer, tid)
	require.NoError(t, err)
	require.NoError(t, f.completeRound(ctx, tid, 1))
	require.NoError(t, f.completeRound(ctx, tid, 2))

	round := 2
	matches, err := f.matches.ListMatches(ctx, tid, &round, nil)
	require.NoError(t, err)
	four, three := 4, 3
	_, err = f.matches.RecordResult(ctx, organizer, matches[0].ID, RecordResultInput{
		ScoreTeam1: &four, ScoreTeam2: &three, Status: models.MatchStatusCompleted,
	})
	require.NoError(t, err)

	_, err = f.schedule.GenerateRound3(ctx, organizer, tid)
	assert.ErrorIs(t, err, brackets.ErrNotReady)
	assert.Len(t, f.store.matches, 48)
}
