package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// ErrValidation rejects a session before it reaches the store.
	ErrValidation = errors.New("validation error")
	// ErrUnsupportedConditionType marks a goal whose condition is not "Count".
	ErrUnsupportedConditionType = errors.New("unsupported condition type")
	// ErrInvalidGoalDefinition marks a goal with a bad level or a missing identifier.
	ErrInvalidGoalDefinition = errors.New("invalid goal definition")
	// ErrStoreUnavailable wraps persisted data that cannot be read at startup.
	ErrStoreUnavailable = errors.New("store unavailable")
)
