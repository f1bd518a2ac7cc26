package services

import (
	"context"
	"testing"

	"github.com/Dosada05/doubles-cup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to models.TournamentStatus
		ok       bool
	}{
		{models.StatusRegistration, models.StatusActive, true},
		{models.StatusRegistration, models.StatusCanceled, true},
		{models.StatusRegistration, models.StatusCompleted, false},
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusRegistration, false},
		{models.StatusCompleted, models.StatusCanceled, false},
		{models.StatusCanceled, models.StatusActive, false},
		{models.StatusActive, models.StatusActive, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, isValidStatusTransition(tt.from, tt.to))
		})
	}
}

func TestTournamentLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.tournament.CreateTournament(ctx, Actor{UserID: 1, Role: models.RolePlayer}, CreateTournamentInput{Name: "X"})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	_, err = f.tournament.CreateTournament(ctx, organizer, CreateTournamentInput{Name: "   "})
	assert.ErrorIs(t, err, ErrTournamentNameRequired)

	tid, err := f.seedTournament(ctx)
	require.NoError(t, err)

	_, err = f.tournament.AddPlayer(ctx, organizer, tid, AddPlayerInput{Name: "Ninth", Group: models.GroupA})
	assert.ErrorIs(t, err, ErrGroupFull)
	_, err = f.tournament.AddPlayer(ctx, organizer, tid, AddPlayerInput{Name: "NoGroup", Group: "groupC"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	group := models.GroupB
	players, err := f.tournament.ListPlayers(ctx, tid, &group)
	require.NoError(t, err)
	assert.Len(t, players, 8)
	courts, err := f.tournament.ListCourts(ctx, tid, nil)
	require.NoError(t, err)
	assert.Len(t, courts, 4)
	assert.True(t, courts[0].IsActive)

	_, err = f.tournament.UpdateStatus(ctx, organizer, tid, models.StatusCompleted)
	assert.ErrorIs(t, err, ErrTournamentInvalidStatusTransition)
	_, err = f.tournament.UpdateStatus(ctx, organizer, tid, "paused")
	assert.ErrorIs(t, err, ErrTournamentInvalidStatus)
	_, err = f.tournament.UpdateStatus(ctx, Actor{UserID: 8, Role: models.RoleOrganizer}, tid, models.StatusActive)
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	tour, err := f.tournament.UpdateStatus(ctx, Actor{UserID: 1, Role: models.RoleAdmin}, tid, models.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, tour.Status)

	_, err = f.tournament.AddCourt(ctx, organizer, tid, AddCourtInput{Name: "Late", Group: models.GroupA})
	assert.ErrorIs(t, err, ErrRosterLocked)
}
