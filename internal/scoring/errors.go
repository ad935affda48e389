package scoring

import "errors"

// Validation failures. They are always returned wrapped in a *ValidationError
// and leave the match untouched.
var (
	ErrUnknownOutcome    = errors.New("unknown ball outcome")
	ErrInvalidExtraRuns  = errors.New("extra runs out of range")
	ErrNotLive           = errors.New("match is not live")
	ErrNotUpcoming       = errors.New("match has already started")
	ErrSelectionPending  = errors.New("striker, non-striker and bowler must be selected")
	ErrAllOut            = errors.New("batting team is already all out")
	ErrTargetReached     = errors.New("target has already been reached")
	ErrOversComplete     = errors.New("innings overs are complete")
	ErrNoHistory         = errors.New("no balls to undo")
	ErrUnknownTeam       = errors.New("team is not part of this match")
	ErrInvalidDecision   = errors.New("toss decision must be bat or bowl")
	ErrInvalidSelection  = errors.New("invalid player selection")
	ErrConsecutiveOvers  = errors.New("bowler cannot bowl consecutive overs")
	ErrUnknownAction     = errors.New("unknown scoring action")
	ErrInvalidMatchSetup = errors.New("invalid match setup")
)

// ErrPlayerNotFound is returned when a name recorded in the ball history no
// longer resolves to a player on the roster.
var ErrPlayerNotFound = errors.New("player not found")

// ValidationError marks a rejected action. Err is one of the sentinels above.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, detail string) error {
	return &ValidationError{Err: err, Detail: detail}
}

// IsValidation reports whether err is a rejected-input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
