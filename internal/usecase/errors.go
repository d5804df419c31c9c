package usecase

import "errors"

// Typed failures surfaced to the HTTP layer. Handlers map these to status
// codes and user-facing messages; anything else is a 500.
var (
	ErrAlreadyPurchased    = errors.New("gallery access already purchased")
	ErrAmountOutOfRange    = errors.New("tip amount out of range")
	ErrProvider            = errors.New("payment provider error")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("username or email already exists")
	ErrInvalidSignature    = errors.New("webhook signature verification failed")
	ErrMissingMetadata     = errors.New("webhook event missing required metadata")
	ErrUnknownPurchaseType = errors.New("unknown purchase type")
)

// ValidationError carries a user-facing message for bad input. It always maps
// to a 4xx with no state change.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(msg string) error { return &ValidationError{msg: msg} }
