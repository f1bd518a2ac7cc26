package brackets

import (
	"fmt"

	"github.com/Dosada05/doubles-cup/models"
)

// seededPlayers returns P1..Pn with descending ranking scores, so Pn is seed n.
func seededPlayers(group models.Group, firstID, n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{
			ID:           firstID + i,
			Name:         fmt.Sprintf("P%d", i+1),
			RankingScore: float64(100 - i),
			Group:        group,
		}
	}
	return players
}

func groupCourts(group models.Group, firstID, firstOrder int) []models.Court {
	return []models.Court{
		{ID: firstID, Name: "CourtA", MenuOrder: firstOrder, IsActive: true, Group: group},
		{ID: firstID + 1, Name: "CourtB", MenuOrder: firstOrder + 1, IsActive: true, Group: group},
	}
}

func completed(m models.Match, s1, s2 int) models.Match {
	m.ScoreTeam1 = &s1
	m.ScoreTeam2 = &s2
	m.Status = models.MatchStatusCompleted
	return m
}

func toModels(scheduled []ScheduledMatch) []models.Match {
	out := make([]models.Match, len(scheduled))
	for i, s := range scheduled {
		out[i] = *s.ToModel(1)
		out[i].ID = i + 1
	}
	return out
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func quadOf(matches []ScheduledMatch, round, courtID int) map[int]bool {
	ids := make(map[int]bool)
	for _, m := range matches {
		if m.RoundNumber == round && m.Court.ID == courtID {
			for _, id := range m.Players() {
				ids[id] = true
			}
		}
	}
	return ids
}
