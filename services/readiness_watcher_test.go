package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadinessWatcherBroadcastsOnEachTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f, tid, _ := scheduledFixture(t)
	f.notifier.rooms[brackets.TournamentRoom(tid)] = 1

	mClock := quartz.NewMock(t)
	w := NewReadinessWatcher(mClock, 10*time.Second, fakeTournamentRepo{f.store}, f.schedule, f.notifier, discardLogger())
	w.Start(ctx)

	before := len(f.notifier.types())
	mClock.Advance(10 * time.Second).MustWait(ctx)
	mClock.Advance(10 * time.Second).MustWait(ctx)

	f.notifier.mu.Lock()
	msgs := f.notifier.messages[before:]
	f.notifier.mu.Unlock()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, brackets.EventRound3Readiness, m.Type)
		payload, ok := m.Payload.(ReadinessPayload)
		require.True(t, ok)
		assert.Equal(t, tid, payload.TournamentID)
		assert.Equal(t, brackets.StateRound1Incomplete, payload.Report.State)
	}
}

func TestReadinessWatcherSkipsEmptyRooms(t *testing.T) {
	ctx := context.Background()
	f, _, _ := scheduledFixture(t)
	before := len(f.notifier.types())

	w := NewReadinessWatcher(quartz.NewMock(t), time.Second, fakeTournamentRepo{f.store}, f.schedule, f.notifier, discardLogger())
	w.Tick(ctx)

	assert.Len(t, f.notifier.types(), before)
}

func TestReadinessWatcherIgnoresInactiveTournaments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tid, err := f.seedTournament(ctx)
	require.NoError(t, err)
	f.notifier.rooms[brackets.TournamentRoom(tid)] = 3

	w := NewReadinessWatcher(quartz.NewMock(t), time.Second, fakeTournamentRepo{f.store}, f.schedule, f.notifier, discardLogger())
	w.Tick(ctx)

	assert.Empty(t, f.notifier.types())
	tour, err := f.tournament.GetTournament(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRegistration, tour.Status)
}
