// Package formrelay provides a relay.Client backed by a hosted form-relay
// service (Formspree style): one JSON POST per submission, any 2xx is success.
package formrelay

import (
	"bigbraintime/pkg/relay"
	"bigbraintime/pkg/serrors"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxErrorBody bounds how much of a rejected response is kept in the error.
const maxErrorBody = 512

const tracerName = "bigbraintime/pkg/relay/formrelay"

// Client posts submissions to a fixed endpoint. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs the POST
	endpoint   string       // endpoint is the relay form URL
}

// EncodeSubmission renders sub as the relay's JSON body: {"email","_subject"}.
// The subject is omitted when empty.
func EncodeSubmission(sub relay.Submission) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("email")
	e.Str(sub.Email)
	if sub.Subject != "" {
		e.FieldStart("_subject")
		e.Str(sub.Subject)
	}
	e.ObjEnd()

	return e.Bytes()
}

// Submit posts sub to the relay endpoint. Non-2xx answers and transport
// failures are returned as ErrUnavailable (ErrTimeout when ctx expired); the
// response body is otherwise ignored.
func (c *Client) Submit(ctx context.Context, sub relay.Submission) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "formrelay.Submit", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := c.submit(ctx, sub, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "relay submission failed")
	}

	return err
}

func (c *Client) submit(ctx context.Context, sub relay.Submission, span trace.Span) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(EncodeSubmission(sub)))
	if err != nil {
		return errors.Wrap(err, "could not create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return serrors.Wrap(serrors.ErrTimeout, err, "relay request timed out")
		}

		return serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return serrors.With(serrors.ErrUnavailable,
			"relay rejected submission with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Ensure Client conforms to the relay.Client interface at compile time.
var _ relay.Client = (*Client)(nil)

// New constructs a Client posting to endpoint with httpClient.
func New(httpClient *http.Client, endpoint string) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}
