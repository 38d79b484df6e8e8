// Package signup relays launch-notification signups and maps the relay's
// answer to what the visitor sees.
package signup

import (
	"bigbraintime/internal/config"
	"bigbraintime/pkg/analytics"
	"bigbraintime/pkg/logger"
	"bigbraintime/pkg/relay"
	"bigbraintime/pkg/serrors"
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure the forwarded subject and the visitor-facing messages.
type Options struct {
	// Subject is sent to the relay alongside the email.
	Subject string
	// SuccessMessage is shown once the relay accepted the email.
	SuccessMessage string
	// FailureMessage is shown for every kind of relay failure.
	FailureMessage string
	// AnalyticsEvent is tracked after each accepted signup.
	AnalyticsEvent string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Subject:        cfg.Relay.Subject,
		SuccessMessage: cfg.Relay.SuccessMessage,
		FailureMessage: cfg.Relay.FailureMessage,
		AnalyticsEvent: cfg.Relay.AnalyticsEvent,
	}
}

// submitter is the concrete implementation of the Submitter interface.
type submitter struct {
	options Options
	relay   relay.Client
	tracker analytics.Tracker

	validate *validator.Validate

	// mu guards inFlight, the set of form IDs with a submission in flight.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Submit implements Submitter.
func (s *submitter) Submit(ctx context.Context, attempt Attempt) (*Outcome, error) {
	email := strings.TrimSpace(attempt.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid email")
	}

	formID := attempt.FormID
	if formID == "" {
		formID = uuid.NewString()
	}
	if !s.acquire(formID) {
		return nil, serrors.With(serrors.ErrConflict, "a submission is already in flight for this form")
	}
	defer s.release(formID)

	ctx = logger.WithFields(ctx, zap.String("formId", formID), zap.String("emailDomain", domainOf(email)))

	err := s.relay.Submit(ctx, relay.Submission{Email: email, Subject: s.options.Subject})
	if err != nil {
		logger.Warn(ctx, "signup relay failed", zap.Error(err))

		return &Outcome{Status: StatusFailed, Message: s.options.FailureMessage, Email: email}, nil
	}

	logger.Info(ctx, "signup relayed")
	s.tracker.Track(ctx, s.options.AnalyticsEvent)

	return &Outcome{Status: StatusSubmitted, Message: s.options.SuccessMessage}, nil
}

// InFlight implements Submitter.
func (s *submitter) InFlight(formID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.inFlight[formID]

	return ok
}

func (s *submitter) acquire(formID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[formID]; busy {
		return false
	}
	s.inFlight[formID] = struct{}{}

	return true
}

func (s *submitter) release(formID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, formID)
}

func domainOf(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}

	return ""
}

// New creates a Submitter forwarding to client. A nil tracker is a no-op.
func New(client relay.Client, tracker analytics.Tracker, options Options) Submitter {
	return &submitter{
		options:  options,
		relay:    client,
		tracker:  analytics.OrNop(tracker),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		inFlight: map[string]struct{}{},
	}
}

// ErrorMessage returns the visitor-facing text for an error returned by
// Submit. Anything other than invalid input or an in-flight form gets
// failure.
func ErrorMessage(err error, failure string) string {
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		return "Please enter a valid email address."
	case errors.Is(err, serrors.ErrConflict):
		return "Hang on, your signup is already on its way."
	default:
		return failure
	}
}
