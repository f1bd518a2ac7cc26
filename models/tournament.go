package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// Tournament представляет турнир.
type Tournament struct {
	ID                int              `json:"id" db:"id"`
	Name              string           `json:"name" db:"name"`
	OrganizerID       int              `json:"organizer_id" db:"organizer_id"`
	Status            TournamentStatus `json:"status" db:"status"`
	Rounds12Generated bool             `json:"rounds12_generated" db:"rounds12_generated"`
	Round3Generated   bool             `json:"round3_generated" db:"round3_generated"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Players []Player `json:"players,omitempty" db:"-"`
	Courts  []Court  `json:"courts,omitempty" db:"-"`
	Matches []Match  `json:"matches,omitempty" db:"-"`
}
