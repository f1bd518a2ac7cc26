package models

import "time"

// Group обозначает одну из двух параллельных групп турнира.
type Group string

const (
	GroupA Group = "groupA"
	GroupB Group = "groupB"
)

// AllGroups lists the groups in presentation order.
var AllGroups = []Group{GroupA, GroupB}

func (g Group) Valid() bool {
	return g == GroupA || g == GroupB
}

type Player struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	RankingScore float64   `json:"ranking_score" db:"ranking_score"`
	Group        Group     `json:"group" db:"group_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
