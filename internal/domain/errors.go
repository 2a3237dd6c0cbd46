package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and services. Handlers translate
// these into HTTP status codes; anything else surfaces as a generic 500.
var (
	ErrWorkshopNotFound      = errors.New("workshop not found")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrInvalidStatus         = errors.New("invalid registration status")
	ErrAlreadySubscribed     = errors.New("email already subscribed")
)

// ValidationError names the first field that failed input validation. The
// message is user-facing and already localized.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
