package v1handler

import (
	"bigbraintime/pkg/countdown"
	"net/http"
	"time"

	"github.com/go-faster/jx"
)

// EncodeCountdown renders the countdown poll response.
func EncodeCountdown(target time.Time, p countdown.Precision, s countdown.State) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("target")
	e.Str(target.UTC().Format(time.RFC3339))
	e.FieldStart("days")
	e.Int(s.Days)
	e.FieldStart("hours")
	e.Int(s.Hours)
	e.FieldStart("minutes")
	e.Int(s.Minutes)
	e.FieldStart("seconds")
	e.Int(s.Seconds)
	e.FieldStart("done")
	e.Bool(s.IsZero())
	e.FieldStart("precision")
	e.Str(string(p))
	e.FieldStart("interval")
	e.Int64(p.Interval().Milliseconds())
	e.ObjEnd()

	return e.Bytes()
}

// Countdown answers with the time left until the launch instant, read from
// the clock on every request.
func (h Handler) Countdown(w http.ResponseWriter, r *http.Request) {
	state := countdown.Remaining(h.opts.Target, h.deps.Clock())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(EncodeCountdown(h.opts.Target, h.opts.Precision, state))
}
