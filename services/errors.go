package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Валидация и бизнес-правила
	ErrValidationFailed  = errors.New("validation failed")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrInvalidRole       = errors.New("role cannot be chosen at registration")
	ErrRosterLocked      = errors.New("roster cannot change after the schedule is generated")
	ErrGroupFull         = errors.New("group already has 8 players")
	ErrInvalidScore      = errors.New("scores must be between 0 and 8")
	ErrPlayerNotInMatch  = errors.New("special recorded for a player outside the match")
	ErrMatchNotEditable  = errors.New("results can only be recorded while the tournament is active")
	ErrArchivingDisabled = errors.New("report archiving is not configured")

	// Конфликты
	ErrUserEmailConflict        = errors.New("email address is already in use")
	ErrPlayerNameConflict       = errors.New("player name already registered in tournament")
	ErrCourtMenuOrderConflict   = errors.New("court menu order already used in tournament")
	ErrScheduleAlreadyGenerated = errors.New("rounds 1 and 2 have already been generated")

	// Аутентификация и доступ
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")

	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
)
