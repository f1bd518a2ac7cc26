package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Dosada05/doubles-cup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingsAndSpecials(t *testing.T) {
	ctx := context.Background()
	f, tid, _ := scheduledFixture(t)
	require.NoError(t, f.completeRound(ctx, tid, 1))

	group := models.GroupA
	standings, err := f.standings.Standings(ctx, tid, &group)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	entries := standings[0].Entries
	require.Len(t, entries, 8)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
		assert.Equal(t, models.GroupA, e.Group)
		if i > 0 {
			assert.LessOrEqual(t, e.TotalGamesWon, entries[i-1].TotalGamesWon)
		}
	}

	all, err := f.standings.Standings(ctx, tid, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, gs := range all {
		require.Len(t, gs.Entries, 8)
		for _, e := range gs.Entries {
			assert.Equal(t, gs.Group, e.Group)
		}
	}

	round := 1
	specials, err := f.standings.SpecialsRanking(ctx, tid, nil, &round)
	require.NoError(t, err)
	require.Len(t, specials, 2)
	for _, gs := range specials {
		require.NotEmpty(t, gs.Entries)
		assert.Equal(t, models.TitlePrimaryBonusLeader, gs.Entries[0].Title)
	}

	round2 := 2
	specials, err = f.standings.SpecialsRanking(ctx, tid, &group, &round2)
	require.NoError(t, err)
	require.Len(t, specials, 1)
	require.Len(t, specials[0].Entries, 8)
	for _, e := range specials[0].Entries {
		assert.Zero(t, e.TotalSpecials)
		assert.Empty(t, e.Title)
	}
}

func TestReportArchive(t *testing.T) {
	ctx := context.Background()
	f, tid, _ := scheduledFixture(t)

	t.Run("disabled without uploader", func(t *testing.T) {
		svc := NewReportService(fakeTournamentRepo{f.store}, f.standings, nil, discardLogger())
		_, err := svc.Archive(ctx, organizer, tid)
		assert.ErrorIs(t, err, ErrArchivingDisabled)
	})

	t.Run("uploads json report", func(t *testing.T) {
		up := &fakeUploader{}
		svc := NewReportService(fakeTournamentRepo{f.store}, f.standings, up, discardLogger())
		res, err := svc.Archive(ctx, organizer, tid)
		require.NoError(t, err)
		require.Len(t, up.keys, 1)
		assert.True(t, strings.HasPrefix(res.Key, "reports/tournament_"))
		assert.True(t, strings.HasSuffix(res.Key, ".json"))

		var report TournamentReport
		require.NoError(t, json.Unmarshal(up.bodies[0], &report))
		assert.Equal(t, tid, report.Tournament.ID)
		require.Len(t, report.Standings, 2)
		for _, gs := range report.Standings {
			assert.Len(t, gs.Entries, 8)
		}
	})

	t.Run("foreign organizer", func(t *testing.T) {
		counting := &countingStandings{StandingsService: f.standings}
		up := &fakeUploader{}
		svc := NewReportService(fakeTournamentRepo{f.store}, counting, up, discardLogger())
		_, err := svc.Archive(ctx, Actor{UserID: 500, Role: models.RoleOrganizer}, tid)
		assert.ErrorIs(t, err, ErrForbiddenOperation)
		assert.Zero(t, counting.reports)
		assert.Empty(t, up.keys)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		svc := NewReportService(fakeTournamentRepo{f.store}, f.standings, &fakeUploader{}, discardLogger())
		_, err := svc.Archive(ctx, organizer, tid+100)
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})
}

type countingStandings struct {
	StandingsService
	reports int
}

func (c *countingStandings) Report(ctx context.Context, tournamentID int) (*TournamentReport, error) {
	c.reports++
	return c.StandingsService.Report(ctx, tournamentID)
}
