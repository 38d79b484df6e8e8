package signup

import "context"

// Status is the visitor-facing result of a signup attempt.
type Status string

const (
	// StatusSubmitted means the relay accepted the email.
	StatusSubmitted Status = "submitted"
	// StatusFailed means the relay rejected the email or could not be reached.
	StatusFailed Status = "failed"
)

// Attempt is one press of the submit button. It is discarded once the
// submission resolves.
type Attempt struct {
	// FormID identifies the form instance on the visitor's page. Attempts
	// sharing a FormID are mutually exclusive while one is in flight.
	FormID string
	// Email is the address as entered.
	Email string
}

// Outcome is what the form shows after a submission resolves.
type Outcome struct {
	Status Status `json:"status"`
	// Message is the confirmation or the generic retry prompt.
	Message string `json:"message"`
	// Email is the value the input should hold afterwards: empty on success,
	// unchanged on failure.
	Email string `json:"email"`
}

//go:generate mockgen -package mocksignup -source=interface.go -destination=mock/mocksignup.go *
type Submitter interface {
	// Submit validates the attempt and relays it. Invalid emails return
	// ErrBadRequest and an attempt whose form already has one in flight
	// returns ErrConflict; neither issues a relay request. Relay failures are
	// not errors: they produce a StatusFailed outcome.
	Submit(ctx context.Context, attempt Attempt) (*Outcome, error)
	// InFlight reports whether formID has a submission in flight.
	InFlight(formID string) bool
}
