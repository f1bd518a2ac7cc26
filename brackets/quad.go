package brackets

import (
	"fmt"

	"github.com/Dosada05/doubles-cup/models"
)

// ScheduledMatch is an unpersisted schedule entry produced by the builders.
type ScheduledMatch struct {
	UID              string       `json:"uid"`
	Group            models.Group `json:"group"`
	RoundNumber      int          `json:"round_number"`
	RoundWithinGroup int          `json:"round_within_group"`
	MatchNumber      int          `json:"match_number"`
	Court            models.Court `json:"court"`
	Team1            [2]int       `json:"team1"`
	Team2            [2]int       `json:"team2"`
}

// ToModel converts the preview into a scheduled match row for the given tournament.
func (m ScheduledMatch) ToModel(tournamentID int) *models.Match {
	return &models.Match{
		TournamentID:     tournamentID,
		Group:            m.Group,
		RoundNumber:      m.RoundNumber,
		RoundWithinGroup: m.RoundWithinGroup,
		MatchNumber:      m.MatchNumber,
		Team1Player1ID:   m.Team1[0],
		Team1Player2ID:   m.Team1[1],
		Team2Player1ID:   m.Team2[0],
		Team2Player2ID:   m.Team2[1],
		CourtID:          m.Court.ID,
		Status:           models.StatusScheduled,
	}
}

// Players returns the four player ids, team 1 first.
func (m ScheduledMatch) Players() [4]int {
	return [4]int{m.Team1[0], m.Team1[1], m.Team2[0], m.Team2[1]}
}

// QuadParams describes one four-player round robin: players in seed order, one court.
type QuadParams struct {
	Players     []models.Player
	Court       models.Court
	Group       models.Group
	RoundNumber int
}

// quadPattern lists, per match, the seed indexes of team 1 and team 2.
// Every pair of the four seeds partners exactly once across the three matches.
var quadPattern = [3][2][2]int{
	{{0, 2}, {1, 3}},
	{{0, 3}, {1, 2}},
	{{0, 1}, {2, 3}},
}

// RoundRobinQuad expands four seeded players into three matches on one court.
// MatchNumber is left zero; callers number the full schedule.
func RoundRobinQuad(params QuadParams) ([]ScheduledMatch, error) {
	if len(params.Players) != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGroupSize, len(params.Players))
	}
	if err := checkDistinct(params.Players); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGroupSize, err)
	}

	p := params.Players
	matches := make([]ScheduledMatch, 0, len(quadPattern))
	for i, teams := range quadPattern {
		matches = append(matches, ScheduledMatch{
			UID:              fmt.Sprintf("%s_R%dC%dM%d", params.Group, params.RoundNumber, params.Court.ID, i+1),
			Group:            params.Group,
			RoundNumber:      params.RoundNumber,
			RoundWithinGroup: i + 1,
			Court:            params.Court,
			Team1:            [2]int{p[teams[0][0]].ID, p[teams[0][1]].ID},
			Team2:            [2]int{p[teams[1][0]].ID, p[teams[1][1]].ID},
		})
	}
	return matches, nil
}
