package brackets

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Dosada05/doubles-cup/models"
)

// Round3Number is the decisive round.
const Round3Number = 3

// Round3Params is the input for one group's round 3.
type Round3Params struct {
	Group models.Group
	// Lines holds rounds 1+2 performance, in seed order.
	Lines       []PerformanceLine
	Courts      []models.Court
	StartNumber int
}

// BuildRound3 flights the group by rounds 1+2 performance: the top four play a round robin
// on the first court, the bottom four on the second. Equal lines keep seed order.
func BuildRound3(params Round3Params) ([]ScheduledMatch, error) {
	if len(params.Lines) != GroupSize {
		return nil, fmt.Errorf("%w: group %s has %d", ErrInsufficientPlayers, params.Group, len(params.Lines))
	}
	players := make([]models.Player, len(params.Lines))
	for i, l := range params.Lines {
		players[i] = l.Player
	}
	if err := checkDistinct(players); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientPlayers, err)
	}
	courts := ActiveCourts(params.Courts)
	if len(courts) < CourtsPerGroup {
		return nil, fmt.Errorf("%w: group %s has %d", ErrInsufficientCourts, params.Group, len(courts))
	}

	ranked := slices.Clone(params.Lines)
	slices.SortStableFunc(ranked, func(a, b PerformanceLine) int {
		if c := cmp.Compare(b.GamesWon, a.GamesWon); c != 0 {
			return c
		}
		return cmp.Compare(b.Specials, a.Specials)
	})

	matches := make([]ScheduledMatch, 0, CourtsPerGroup*3)
	for flight := 0; flight < CourtsPerGroup; flight++ {
		quad := make([]models.Player, 0, 4)
		for _, line := range ranked[flight*4 : flight*4+4] {
			quad = append(quad, line.Player)
		}
		quadMatches, err := RoundRobinQuad(QuadParams{
			Players:     quad,
			Court:       courts[flight],
			Group:       params.Group,
			RoundNumber: Round3Number,
		})
		if err != nil {
			return nil, err
		}
		matches = append(matches, quadMatches...)
	}
	return NumberMatches(matches, params.StartNumber), nil
}
