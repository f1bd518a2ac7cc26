package brackets

import (
	"fmt"

	"github.com/Dosada05/doubles-cup/models"
)

type ReadinessState string

const (
	StateAlreadyGenerated  ReadinessState = "already_generated"
	StateLackingPermission ReadinessState = "lacking_permission"
	StateWrongStatus       ReadinessState = "wrong_tournament_status"
	StateRound1Incomplete  ReadinessState = "round1_incomplete"
	StateRound2Incomplete  ReadinessState = "round2_incomplete"
	StateReady             ReadinessState = "ready"
)

// ReadinessSnapshot is everything the gate looks at.
type ReadinessSnapshot struct {
	TournamentStatus models.TournamentStatus
	Round3Flag       bool
	Matches          []models.Match
	Role             models.UserRole
}

type RoundProgress struct {
	Round         int  `json:"round"`
	Total         int  `json:"total"`
	ValidComplete int  `json:"valid_complete"`
	Complete      bool `json:"complete"`
}

type ReadinessReport struct {
	Rounds                 [3]RoundProgress `json:"rounds"`
	Round1Complete         bool             `json:"round1_complete"`
	Round2Complete         bool             `json:"round2_complete"`
	TournamentActive       bool             `json:"tournament_active"`
	HasPermission          bool             `json:"has_permission"`
	Round3AlreadyGenerated bool             `json:"round3_already_generated"`
	IsReady                bool             `json:"is_ready"`
	State                  ReadinessState   `json:"state"`
	Message                string           `json:"message"`
}

// CanGenerateRounds reports whether the role may generate schedules.
func CanGenerateRounds(role models.UserRole) bool {
	return role == models.RoleOrganizer || role == models.RoleAdmin
}

// EvaluateReadiness decides whether round 3 may be generated. It only reads the snapshot.
func EvaluateReadiness(s ReadinessSnapshot) ReadinessReport {
	var report ReadinessReport
	for i := range report.Rounds {
		report.Rounds[i].Round = i + 1
	}
	for i := range s.Matches {
		m := &s.Matches[i]
		if m.RoundNumber < 1 || m.RoundNumber > len(report.Rounds) {
			continue
		}
		rp := &report.Rounds[m.RoundNumber-1]
		rp.Total++
		if m.IsValidComplete() {
			rp.ValidComplete++
		}
	}
	for i := range report.Rounds {
		rp := &report.Rounds[i]
		rp.Complete = rp.Total > 0 && rp.ValidComplete == rp.Total
	}

	report.Round1Complete = report.Rounds[0].Complete
	report.Round2Complete = report.Rounds[1].Complete
	report.TournamentActive = s.TournamentStatus == models.StatusActive
	report.HasPermission = CanGenerateRounds(s.Role)
	report.Round3AlreadyGenerated = s.Round3Flag || report.Rounds[2].Total > 0
	report.IsReady = report.TournamentActive && report.Round1Complete && report.Round2Complete &&
		!report.Round3AlreadyGenerated && report.HasPermission

	switch {
	case report.Round3AlreadyGenerated:
		report.State = StateAlreadyGenerated
		report.Message = "round 3 has already been generated"
	case !report.HasPermission:
		report.State = StateLackingPermission
		report.Message = "only organizers and administrators can generate round 3"
	case !report.TournamentActive:
		report.State = StateWrongStatus
		report.Message = fmt.Sprintf("tournament must be %s to generate round 3 (current: %s)", models.StatusActive, s.TournamentStatus)
	case !report.Round1Complete:
		report.State = StateRound1Incomplete
		report.Message = incompleteMessage(report.Rounds[0])
	case !report.Round2Complete:
		report.State = StateRound2Incomplete
		report.Message = incompleteMessage(report.Rounds[1])
	default:
		report.State = StateReady
		report.Message = "round 3 is ready to be generated"
	}
	return report
}

func incompleteMessage(rp RoundProgress) string {
	if rp.Total == 0 {
		return fmt.Sprintf("round %d has no matches", rp.Round)
	}
	return fmt.Sprintf("round %d is incomplete: %d of %d matches completed with %d games",
		rp.Round, rp.ValidComplete, rp.Total, models.GamesPerMatch)
}

// Err converts a non-ready report into the matching error.
func (r ReadinessReport) Err() error {
	switch r.State {
	case StateReady:
		return nil
	case StateAlreadyGenerated:
		return ErrAlreadyGenerated
	case StateLackingPermission:
		return fmt.Errorf("%w: %s", ErrUnauthorized, r.Message)
	default:
		return &NotReadyError{State: r.State, Message: r.Message}
	}
}
