package models

import "time"

type MatchStatus string

const (
	StatusScheduled      MatchStatus = "scheduled"
	StatusInProgress     MatchStatus = "in_progress"
	MatchStatusCompleted MatchStatus = "completed"
)

// GamesPerMatch is the fixed number of games played in every match.
const GamesPerMatch = 8

func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, MatchStatusCompleted:
		return true
	}
	return false
}

type Match struct {
	ID               int         `json:"id" db:"id"`
	TournamentID     int         `json:"tournament_id" db:"tournament_id"`
	Group            Group       `json:"group" db:"group_name"`
	RoundNumber      int         `json:"round_number" db:"round_number"`
	RoundWithinGroup int         `json:"round_within_group" db:"round_within_group"`
	MatchNumber      int         `json:"match_number" db:"match_number"`
	Team1Player1ID   int         `json:"team1_player1_id" db:"team1_player1_id"`
	Team1Player2ID   int         `json:"team1_player2_id" db:"team1_player2_id"`
	Team2Player1ID   int         `json:"team2_player1_id" db:"team2_player1_id"`
	Team2Player2ID   int         `json:"team2_player2_id" db:"team2_player2_id"`
	CourtID          int         `json:"court_id" db:"court_id"`
	ScoreTeam1       *int        `json:"score_team1,omitempty" db:"score_team1"`
	ScoreTeam2       *int        `json:"score_team2,omitempty" db:"score_team2"`
	Status           MatchStatus `json:"status" db:"status"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
}

// IsValidComplete reports whether the match is completed with the full game total recorded.
func (m *Match) IsValidComplete() bool {
	if m.Status != MatchStatusCompleted || m.ScoreTeam1 == nil || m.ScoreTeam2 == nil {
		return false
	}
	return *m.ScoreTeam1+*m.ScoreTeam2 == GamesPerMatch
}

// PlayerIDs returns the four players in team order.
func (m *Match) PlayerIDs() [4]int {
	return [4]int{m.Team1Player1ID, m.Team1Player2ID, m.Team2Player1ID, m.Team2Player2ID}
}

// Team returns 1 or 2 for a player in the match, 0 otherwise.
func (m *Match) Team(playerID int) int {
	switch playerID {
	case m.Team1Player1ID, m.Team1Player2ID:
		return 1
	case m.Team2Player1ID, m.Team2Player2ID:
		return 2
	}
	return 0
}

// MatchSpecial is the number of bonus events a player scored in a match.
type MatchSpecial struct {
	MatchID  int `json:"match_id" db:"match_id"`
	PlayerID int `json:"player_id" db:"player_id"`
	Count    int `json:"count" db:"count"`
}
