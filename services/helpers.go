package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/doubles-cup/models"
	"github.com/Dosada05/doubles-cup/repositories"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID int
	Role   models.UserRole
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
		models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:    {},
		models.StatusCanceled:     {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

func validStatus(s models.TournamentStatus) bool {
	switch s {
	case models.StatusRegistration, models.StatusActive, models.StatusCompleted, models.StatusCanceled:
		return true
	}
	return false
}

// authorizeOrganizer allows admins and the organizer who owns the tournament.
func authorizeOrganizer(t *models.Tournament, actor Actor) error {
	switch {
	case actor.Role == models.RoleAdmin:
		return nil
	case actor.Role == models.RoleOrganizer && t.OrganizerID == actor.UserID:
		return nil
	}
	return ErrForbiddenOperation
}

// handleRepositoryError переводит ошибки репозиториев в ошибки сервисного слоя.
func handleRepositoryError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrUserEmailConflict):
		return ErrUserEmailConflict
	case errors.Is(err, repositories.ErrPlayerNameConflict):
		return ErrPlayerNameConflict
	case errors.Is(err, repositories.ErrCourtMenuOrderConflict):
		return ErrCourtMenuOrderConflict
	case errors.Is(err, repositories.ErrPlayerTournamentInvalid),
		errors.Is(err, repositories.ErrCourtTournamentInvalid):
		return ErrTournamentNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func groupsOrAll(group *models.Group) []models.Group {
	if group != nil {
		return []models.Group{*group}
	}
	return models.AllGroups
}

func playersOfGroup(players []models.Player, g models.Group) []models.Player {
	out := make([]models.Player, 0, 8)
	for _, p := range players {
		if p.Group == g {
			out = append(out, p)
		}
	}
	return out
}

func courtsOfGroup(courts []models.Court, g models.Group) []models.Court {
	out := make([]models.Court, 0, 2)
	for _, c := range courts {
		if c.Group == g {
			out = append(out, c)
		}
	}
	return out
}
