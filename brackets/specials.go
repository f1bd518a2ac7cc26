package brackets

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Dosada05/doubles-cup/models"
)

type SpecialsTotal struct {
	Player models.Player
	Total  int
}

// SpecialsTotals sums specials per player, over one round when round is set.
func SpecialsTotals(players []models.Player, stats []models.PlayerRoundStat, round *int) []SpecialsTotal {
	rounds := []int{1, 2, 3}
	if round != nil {
		rounds = []int{*round}
	}
	lines := CombineRounds(players, stats, rounds...)
	totals := make([]SpecialsTotal, len(lines))
	for i, l := range lines {
		totals[i] = SpecialsTotal{Player: l.Player, Total: l.Specials}
	}
	return totals
}

// RankSpecials orders players by specials and hands out the two bonus titles.
// A title is only awarded for a positive total.
func RankSpecials(totals []SpecialsTotal) []models.SpecialsEntry {
	ranked := slices.Clone(totals)
	slices.SortStableFunc(ranked, func(a, b SpecialsTotal) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		if c := strings.Compare(a.Player.Name, b.Player.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Player.ID, b.Player.ID)
	})

	entries := make([]models.SpecialsEntry, len(ranked))
	for i, t := range ranked {
		entries[i] = models.SpecialsEntry{
			PlayerID:      t.Player.ID,
			PlayerName:    t.Player.Name,
			Group:         t.Player.Group,
			TotalSpecials: t.Total,
			RankPosition:  i + 1,
		}
		if t.Total <= 0 {
			continue
		}
		switch i {
		case 0:
			entries[i].Title = models.TitlePrimaryBonusLeader
		case 1:
			entries[i].Title = models.TitleSecondaryBonusLeader
		}
	}
	return entries
}
