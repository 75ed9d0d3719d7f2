package pricing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the subscription lifecycle services. Handlers
// translate these into flash notices or JSON error bodies; anything else is a
// transport failure wrapped with context and safe to retry.
var (
	ErrAgentNotFound        = errors.New("agent not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrUnauthorized         = errors.New("insufficient role")
)

// ValidationError marks a rejected write caused by malformed input, e.g. a
// promo price without a promo duration.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps err as a ValidationError.
func NewValidationError(err error) error {
	return &ValidationError{Err: err}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
