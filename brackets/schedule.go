package brackets

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Dosada05/doubles-cup/models"
)

// initialPartitions holds, for rounds 1 and 2, the seed indexes sent to each court.
// s1 and s8 stay on the first court in both rounds while the middle seeds rotate.
var initialPartitions = [2][CourtsPerGroup][4]int{
	{{0, 3, 4, 7}, {1, 2, 5, 6}},
	{{0, 2, 5, 7}, {1, 3, 4, 6}},
}

// GroupScheduleParams is the input for rounds 1-2 of one group.
type GroupScheduleParams struct {
	Group       models.Group
	Players     []models.Player // any order; seeded internally
	Courts      []models.Court
	StartNumber int
}

// BuildGroupSchedule generates the 24 matches of rounds 1 and 2 for one group.
func BuildGroupSchedule(params GroupScheduleParams) ([]ScheduledMatch, error) {
	if len(params.Players) != GroupSize {
		return nil, fmt.Errorf("%w: group %s has %d", ErrInsufficientPlayers, params.Group, len(params.Players))
	}
	if err := checkDistinct(params.Players); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientPlayers, err)
	}
	courts := ActiveCourts(params.Courts)
	if len(courts) < CourtsPerGroup {
		return nil, fmt.Errorf("%w: group %s has %d", ErrInsufficientCourts, params.Group, len(courts))
	}
	courts = courts[:CourtsPerGroup]

	seeds := SeedPlayers(params.Players)
	matches := make([]ScheduledMatch, 0, len(initialPartitions)*CourtsPerGroup*3)
	for r, partition := range initialPartitions {
		for c, seedIdx := range partition {
			quad := make([]models.Player, 0, 4)
			for _, idx := range seedIdx {
				quad = append(quad, seeds[idx])
			}
			quadMatches, err := RoundRobinQuad(QuadParams{
				Players:     quad,
				Court:       courts[c],
				Group:       params.Group,
				RoundNumber: r + 1,
			})
			if err != nil {
				return nil, err
			}
			matches = append(matches, quadMatches...)
		}
	}
	return NumberMatches(matches, params.StartNumber), nil
}

// GroupRoster is one group's players and courts.
type GroupRoster struct {
	Group   models.Group
	Players []models.Player
	Courts  []models.Court
}

// BuildTournamentSchedule builds rounds 1 and 2 for every group and numbers the union
// densely from start. Nothing is returned if any group fails.
func BuildTournamentSchedule(groups []GroupRoster, start int) ([]ScheduledMatch, error) {
	all := make([]ScheduledMatch, 0, len(groups)*24)
	for _, g := range groups {
		matches, err := BuildGroupSchedule(GroupScheduleParams{
			Group:   g.Group,
			Players: g.Players,
			Courts:  g.Courts,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
	}
	return NumberMatches(all, start), nil
}

// NumberMatches returns a copy ordered by round, round-within-group, court menu order
// and group, with match numbers assigned sequentially from start.
func NumberMatches(matches []ScheduledMatch, start int) []ScheduledMatch {
	numbered := slices.Clone(matches)
	slices.SortStableFunc(numbered, func(a, b ScheduledMatch) int {
		if c := cmp.Compare(a.RoundNumber, b.RoundNumber); c != 0 {
			return c
		}
		if c := cmp.Compare(a.RoundWithinGroup, b.RoundWithinGroup); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Court.MenuOrder, b.Court.MenuOrder); c != 0 {
			return c
		}
		return cmp.Compare(groupRank(a.Group), groupRank(b.Group))
	})
	for i := range numbered {
		numbered[i].MatchNumber = start + i
	}
	return numbered
}
