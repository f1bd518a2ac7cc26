package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoster() *previewFile {
	f := &previewFile{}
	id := 0
	for gi, g := range models.AllGroups {
		for i := 1; i <= 8; i++ {
			id++
			f.Players = append(f.Players, models.Player{ID: id, Name: fmt.Sprintf("%c%d", 'A'+gi, i), RankingScore: float64(10 - i), Group: g})
		}
		for c := 1; c <= 2; c++ {
			f.Courts = append(f.Courts, models.Court{ID: 100 + gi*2 + c, Name: fmt.Sprintf("Court %d", gi*2+c), MenuOrder: gi*2 + c, IsActive: true, Group: g})
		}
	}
	return f
}

func writeFile(t *testing.T, f *previewFile) string {
	t.Helper()
	data, err := json.Marshal(f)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cup.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func playedRounds12(t *testing.T, f *previewFile) {
	t.Helper()
	scheduled, err := brackets.BuildTournamentSchedule(f.rosters(), 1)
	require.NoError(t, err)
	for i, sm := range scheduled {
		m := *sm.ToModel(1)
		m.ID = i + 1
		six, two := 6, 2
		m.ScoreTeam1, m.ScoreTeam2, m.Status = &six, &two, models.MatchStatusCompleted
		f.Matches = append(f.Matches, m)
	}
}

func TestLoadPreviewFile(t *testing.T) {
	path := writeFile(t, sampleRoster())
	f, err := loadPreviewFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Players, 16)
	assert.Len(t, f.Courts, 4)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = loadPreviewFile(bad)
	assert.Error(t, err)
}

func TestRenderSchedule(t *testing.T) {
	f := sampleRoster()
	matches, err := brackets.BuildTournamentSchedule(f.rosters(), 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	renderSchedule(&buf, "Rounds 1-2", matches, f.names())
	out := buf.String()
	assert.Contains(t, out, "Rounds 1-2")
	assert.Contains(t, out, "Court 1")
	assert.Contains(t, out, "A1 & ")
	assert.Contains(t, out, "B8")
}

func TestPreviewRound3(t *testing.T) {
	f := sampleRoster()

	report, _, err := previewRound3(f)
	assert.ErrorIs(t, err, brackets.ErrNotReady)
	assert.Equal(t, brackets.StateRound1Incomplete, report.State)

	playedRounds12(t, f)
	report, matches, err := previewRound3(f)
	require.NoError(t, err)
	assert.True(t, report.IsReady)
	require.Len(t, matches, 12)
	assert.Equal(t, 49, matches[0].MatchNumber)
	assert.Equal(t, 60, matches[11].MatchNumber)

	var buf bytes.Buffer
	renderReadiness(&buf, report)
	assert.Contains(t, buf.String(), "round 2: 24/24 valid")
}

func TestRenderStandings(t *testing.T) {
	f := sampleRoster()
	playedRounds12(t, f)
	f.Specials = []models.MatchSpecial{{MatchID: 1, PlayerID: f.Matches[0].Team1Player1ID, Count: 2}}

	var buf bytes.Buffer
	renderStandings(&buf, f, nil)
	out := buf.String()
	assert.Contains(t, out, "Standings groupA")
	assert.Contains(t, out, "Standings groupB")
	assert.Contains(t, out, string(models.TitlePrimaryBonusLeader))

	groupA, groupB, ok := strings.Cut(out, "Standings groupB")
	require.True(t, ok)
	for i := 1; i <= 8; i++ {
		assert.NotContains(t, groupA, fmt.Sprintf("B%d", i))
		assert.NotContains(t, groupB, fmt.Sprintf("A%d", i))
	}
}
