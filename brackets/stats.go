package brackets

import (
	"cmp"
	"slices"

	"github.com/Dosada05/doubles-cup/models"
)

type statKey struct {
	playerID int
	round    int
}

// AggregateRoundStats derives one row per player per round from valid-complete matches.
// Specials recorded on matches that are not valid-complete are ignored.
func AggregateRoundStats(matches []models.Match, specials []models.MatchSpecial) []models.PlayerRoundStat {
	rows := make(map[statKey]*models.PlayerRoundStat)
	row := func(playerID, round int) *models.PlayerRoundStat {
		k := statKey{playerID, round}
		r, ok := rows[k]
		if !ok {
			r = &models.PlayerRoundStat{PlayerID: playerID, RoundNumber: round}
			rows[k] = r
		}
		return r
	}

	counted := make(map[int]*models.Match, len(matches))
	for i := range matches {
		m := &matches[i]
		if !m.IsValidComplete() {
			continue
		}
		counted[m.ID] = m
		for _, pid := range m.PlayerIDs() {
			r := row(pid, m.RoundNumber)
			if m.Team(pid) == 1 {
				r.GamesWon += *m.ScoreTeam1
				r.GamesLost += *m.ScoreTeam2
			} else {
				r.GamesWon += *m.ScoreTeam2
				r.GamesLost += *m.ScoreTeam1
			}
		}
	}
	for _, sp := range specials {
		m, ok := counted[sp.MatchID]
		if !ok || m.Team(sp.PlayerID) == 0 {
			continue
		}
		row(sp.PlayerID, m.RoundNumber).SpecialsCount += sp.Count
	}

	out := make([]models.PlayerRoundStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b models.PlayerRoundStat) int {
		if c := cmp.Compare(a.PlayerID, b.PlayerID); c != 0 {
			return c
		}
		return cmp.Compare(a.RoundNumber, b.RoundNumber)
	})
	return out
}

// PerformanceLine is a player's combined result over a set of rounds.
type PerformanceLine struct {
	Player   models.Player `json:"player"`
	GamesWon int           `json:"games_won"`
	Specials int           `json:"specials"`
}

// CombineRounds sums games won and specials over the given rounds for each player,
// keeping the order of players. Players without stats get zero lines.
func CombineRounds(players []models.Player, stats []models.PlayerRoundStat, rounds ...int) []PerformanceLine {
	index := make(map[int]int, len(players))
	lines := make([]PerformanceLine, len(players))
	for i, p := range players {
		lines[i].Player = p
		index[p.ID] = i
	}
	for _, s := range stats {
		i, ok := index[s.PlayerID]
		if !ok || !slices.Contains(rounds, s.RoundNumber) {
			continue
		}
		lines[i].GamesWon += s.GamesWon
		lines[i].Specials += s.SpecialsCount
	}
	return lines
}
