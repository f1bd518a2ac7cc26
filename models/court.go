package models

// Court is a playing court. Group is explicit: a court serves exactly one group.
type Court struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Name         string `json:"name" db:"name"`
	MenuOrder    int    `json:"menu_order" db:"menu_order"`
	IsActive     bool   `json:"is_active" db:"is_active"`
	Group        Group  `json:"group" db:"group_name"`
}
