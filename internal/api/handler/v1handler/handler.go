// Package v1handler serves the JSON API used by the page's scripts: the
// countdown poll and the signup submission.
package v1handler

import (
	"bigbraintime/internal/signup"
	"bigbraintime/pkg/countdown"
	"bigbraintime/pkg/logger"
	"bigbraintime/pkg/serrors"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// Deps are the collaborators the handler delegates to.
type Deps struct {
	Submitter signup.Submitter
	// Clock is the time source for the countdown. Nil means time.Now.
	Clock countdown.Clock
}

// Options are the page-level settings the API answers with.
type Options struct {
	// Target is the launch instant counted down to.
	Target time.Time
	// Precision selects the poll interval reported to clients.
	Precision countdown.Precision
	// FailureMessage is the generic retry prompt.
	FailureMessage string
}

type Handler struct {
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Handler {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	return &Handler{deps: deps, opts: opts}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Status  signup.Status `json:"status"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Email   string        `json:"email,omitempty"`
}

// NewError maps err to a status code and a visitor-facing message.
func (h Handler) NewError(err error) (int, ErrorResponse) {
	code := serrors.ErrInternal.Error()
	var kind serrors.Kind
	if errors.As(err, &kind) {
		code = kind.Error()
	}

	msg := signup.ErrorMessage(err, h.opts.FailureMessage)

	return serrors.HTTPStatus(err), ErrorResponse{Status: signup.StatusFailed, Code: code, Message: msg}
}

func (h Handler) writeError(w http.ResponseWriter, r *http.Request, err error, email string) {
	status, body := h.NewError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", zap.Error(err))
	} else {
		logger.Debug(r.Context(), "request rejected", zap.Error(err))
	}
	body.Email = email

	render.Status(r, status)
	render.JSON(w, r, body)
}
