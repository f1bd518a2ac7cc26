package brackets

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Dosada05/doubles-cup/models"
)

// GroupSize is the number of players in each group.
const GroupSize = 8

// CourtsPerGroup is the number of courts a group plays on.
const CourtsPerGroup = 2

// SeedPlayers returns a new slice ordered strongest first: ranking score descending,
// then name, then id. The input is left untouched.
func SeedPlayers(players []models.Player) []models.Player {
	seeded := slices.Clone(players)
	slices.SortStableFunc(seeded, func(a, b models.Player) int {
		if c := cmp.Compare(b.RankingScore, a.RankingScore); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return seeded
}

// ActiveCourts returns the active courts ordered by menu order.
func ActiveCourts(courts []models.Court) []models.Court {
	active := make([]models.Court, 0, len(courts))
	for _, c := range courts {
		if c.IsActive {
			active = append(active, c)
		}
	}
	slices.SortStableFunc(active, func(a, b models.Court) int {
		if c := cmp.Compare(a.MenuOrder, b.MenuOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return active
}

func checkDistinct(players []models.Player) error {
	seen := make(map[int]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate player %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func groupRank(g models.Group) int {
	if i := slices.Index(models.AllGroups, g); i >= 0 {
		return i
	}
	return len(models.AllGroups)
}
