package brackets

import "errors"

var (
	ErrInvalidGroupSize    = errors.New("round robin quad requires exactly 4 distinct players")
	ErrInsufficientPlayers = errors.New("group requires exactly 8 players")
	ErrInsufficientCourts  = errors.New("group requires at least 2 active courts")
	ErrNotReady            = errors.New("round 3 is not ready to be generated")
	ErrAlreadyGenerated    = errors.New("round 3 has already been generated")
	ErrUnauthorized        = errors.New("only organizers and administrators can generate rounds")
)

// NotReadyError carries the readiness message that blocked round 3 generation.
type NotReadyError struct {
	State   ReadinessState
	Message string
}

func (e *NotReadyError) Error() string {
	return ErrNotReady.Error() + ": " + e.Message
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}
