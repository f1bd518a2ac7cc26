package models

// TieBreaker names the cascade tier that separated two adjacent standings entries.
type TieBreaker string

const (
	TieBreakerRound3Games    TieBreaker = "round3_games_won"
	TieBreakerRound3Specials TieBreaker = "round3_specials"
	TieBreakerRound2Games    TieBreaker = "round2_games_won"
	TieBreakerRound1Games    TieBreaker = "round1_games_won"
	TieBreakerTied           TieBreaker = "tied"
)

// PlayerRoundStat is derived from valid-complete matches of one round.
type PlayerRoundStat struct {
	PlayerID      int `json:"player_id"`
	RoundNumber   int `json:"round_number"`
	GamesWon      int `json:"games_won"`
	GamesLost     int `json:"games_lost"`
	SpecialsCount int `json:"specials_count"`
}

// RoundLine holds one round's figures inside a standing.
type RoundLine struct {
	GamesWon  int `json:"games_won"`
	GamesLost int `json:"games_lost"`
	Specials  int `json:"specials"`
}

type StandingEntry struct {
	PlayerID       int          `json:"player_id"`
	PlayerName     string       `json:"player_name"`
	Group          Group        `json:"group,omitempty"`
	Rounds         [3]RoundLine `json:"rounds"`
	TotalGamesWon  int          `json:"total_games_won"`
	TotalSpecials  int          `json:"total_specials"`
	Position       int          `json:"position"`
	TieBreakerUsed TieBreaker   `json:"tie_breaker_used,omitempty"`
}

// Round returns the line for round 1..3.
func (e *StandingEntry) Round(n int) RoundLine {
	if n < 1 || n > len(e.Rounds) {
		return RoundLine{}
	}
	return e.Rounds[n-1]
}

type SpecialsTitle string

const (
	TitlePrimaryBonusLeader   SpecialsTitle = "primary bonus leader"
	TitleSecondaryBonusLeader SpecialsTitle = "secondary bonus leader"
)

type SpecialsEntry struct {
	PlayerID      int           `json:"player_id"`
	PlayerName    string        `json:"player_name"`
	Group         Group         `json:"group,omitempty"`
	TotalSpecials int           `json:"total_specials"`
	RankPosition  int           `json:"rank_position"`
	Title         SpecialsTitle `json:"title,omitempty"`
}
