package v1handler

import (
	"bigbraintime/internal/signup"
	"bigbraintime/pkg/serrors"
	"net/http"

	"github.com/go-chi/render"
)

// maxSignupBody bounds the accepted request body.
const maxSignupBody = 4 << 10

// SignupRequest is the JSON body of POST /api/v1/signup.
type SignupRequest struct {
	FormID string `json:"formId"`
	Email  string `json:"email"`
}

// Signup relays one signup. Both relay outcomes answer 200 with the
// outcome; only invalid input (400) and an in-flight form (409) are errors.
func (h Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxSignupBody), &req); err != nil {
		h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode signup request"), "")

		return
	}

	out, err := h.deps.Submitter.Submit(r.Context(), signup.Attempt{FormID: req.FormID, Email: req.Email})
	if err != nil {
		h.writeError(w, r, err, req.Email)

		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, out)
}
