package serrors_test

import (
	"bigbraintime/pkg/serrors"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type relayError struct{ status int }

func (e *relayError) Error() string { return fmt.Sprintf("relay answered %d", e.status) }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrBadRequest,
		serrors.ErrNotFound,
		serrors.ErrConflict,
		serrors.ErrUnavailable,
		serrors.ErrTimeout,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	require.Equal(t, "variant launch-2030 not found",
		serrors.With(serrors.ErrNotFound, "variant %s not found", "launch-2030").Error())
	require.Equal(t, "submitting signup: connection refused",
		serrors.Wrap(serrors.ErrUnavailable, base, "submitting signup").Error())
	require.Equal(t, "CONFLICT", serrors.KindOnly(serrors.ErrConflict).Error())
	require.Equal(t, "connection refused", serrors.Wrap(serrors.ErrUnavailable, base, "").Error())
}

func TestIsAndAs(t *testing.T) {
	cause := &relayError{status: 502}
	err := fmt.Errorf("signup: %w", serrors.Wrap(serrors.ErrUnavailable, cause, "relay rejected submission"))

	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrConflict)

	var k serrors.Kind
	require.ErrorAs(t, err, &k)
	require.Equal(t, serrors.ErrUnavailable, k)

	var re *relayError
	require.ErrorAs(t, err, &re)
	require.Equal(t, 502, re.status)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrBadRequest, base, "invalid email")
	require.Equal(t, serrors.ErrBadRequest, e.Kind())
	require.Equal(t, "invalid email", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{serrors.KindOnly(serrors.ErrBadRequest), http.StatusBadRequest},
		{serrors.KindOnly(serrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", serrors.KindOnly(serrors.ErrConflict)), http.StatusConflict},
		{serrors.KindOnly(serrors.ErrUnavailable), http.StatusBadGateway},
		{serrors.KindOnly(serrors.ErrTimeout), http.StatusGatewayTimeout},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, serrors.HTTPStatus(tt.err), "err: %v", tt.err)
	}
}
