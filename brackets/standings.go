package brackets

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Dosada05/doubles-cup/models"
)

type cascadeTier struct {
	name  models.TieBreaker
	value func(e *models.StandingEntry) int
}

// standingsCascade is the descending sort key, most significant tier first.
var standingsCascade = []cascadeTier{
	{models.TieBreakerRound3Games, func(e *models.StandingEntry) int { return e.Rounds[2].GamesWon }},
	{models.TieBreakerRound3Specials, func(e *models.StandingEntry) int { return e.Rounds[2].Specials }},
	{models.TieBreakerRound2Games, func(e *models.StandingEntry) int { return e.Rounds[1].GamesWon }},
	{models.TieBreakerRound1Games, func(e *models.StandingEntry) int { return e.Rounds[0].GamesWon }},
}

// CalculateStandings ranks players by the round cascade. Every player in the directory
// appears; stats for players outside it are ignored.
func CalculateStandings(players []models.Player, stats []models.PlayerRoundStat) []models.StandingEntry {
	index := make(map[int]int, len(players))
	entries := make([]models.StandingEntry, 0, len(players))
	for _, p := range players {
		index[p.ID] = len(entries)
		entries = append(entries, models.StandingEntry{PlayerID: p.ID, PlayerName: p.Name, Group: p.Group})
	}
	for _, s := range stats {
		if s.RoundNumber < 1 || s.RoundNumber > 3 {
			continue
		}
		i, ok := index[s.PlayerID]
		if !ok {
			continue
		}
		line := &entries[i].Rounds[s.RoundNumber-1]
		line.GamesWon += s.GamesWon
		line.GamesLost += s.GamesLost
		line.Specials += s.SpecialsCount
		entries[i].TotalGamesWon += s.GamesWon
		entries[i].TotalSpecials += s.SpecialsCount
	}

	slices.SortStableFunc(entries, func(a, b models.StandingEntry) int {
		if tier := separatingTier(&a, &b); tier != nil {
			return cmp.Compare(tier.value(&b), tier.value(&a))
		}
		if c := strings.Compare(a.PlayerName, b.PlayerName); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	for i := range entries {
		entries[i].Position = i + 1
		switch {
		case len(entries) == 1:
		case i+1 < len(entries):
			entries[i].TieBreakerUsed = tieBreakerBetween(&entries[i], &entries[i+1])
		default:
			entries[i].TieBreakerUsed = tieBreakerBetween(&entries[i-1], &entries[i])
		}
	}
	return entries
}

func separatingTier(a, b *models.StandingEntry) *cascadeTier {
	for i := range standingsCascade {
		if standingsCascade[i].value(a) != standingsCascade[i].value(b) {
			return &standingsCascade[i]
		}
	}
	return nil
}

func tieBreakerBetween(a, b *models.StandingEntry) models.TieBreaker {
	if tier := separatingTier(a, b); tier != nil {
		return tier.name
	}
	return models.TieBreakerTied
}
