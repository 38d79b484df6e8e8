package countdown_test

import (
	"bigbraintime/pkg/countdown"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRemaining(t *testing.T) {
	target := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want countdown.State
	}{
		{
			name: "half a day before launch",
			now:  time.Date(2025, 7, 31, 12, 0, 0, 0, time.UTC),
			want: countdown.State{Hours: 12},
		},
		{
			name: "every unit populated",
			now:  target.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second)),
			want: countdown.State{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
		},
		{
			name: "sub-second remainder is floored",
			now:  target.Add(-(time.Minute + 999*time.Millisecond)),
			want: countdown.State{Minutes: 1},
		},
		{
			name: "one millisecond left",
			now:  target.Add(-time.Millisecond),
			want: countdown.State{},
		},
		{
			name: "exactly at target",
			now:  target,
			want: countdown.State{},
		},
		{
			name: "after target is clamped",
			now:  target.Add(48 * time.Hour),
			want: countdown.State{},
		},
		{
			name: "different zone same instant",
			now:  time.Date(2025, 7, 31, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
			want: countdown.State{Hours: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, countdown.Remaining(target, tt.now))
		})
	}
}

func TestRemaining_MatchesFloorDivision(t *testing.T) {
	target := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for step := time.Duration(0); step < 400*24*time.Hour; step += 7*time.Hour + 13*time.Minute + 17*time.Second + 3*time.Millisecond {
		at := now.Add(step)
		got := countdown.Remaining(target, at)

		ms := target.Sub(at).Milliseconds()
		if ms <= 0 {
			require.True(t, got.IsZero(), "expected zero state at %s", at)

			continue
		}
		require.Equal(t, int(ms/86400000), got.Days)
		require.Equal(t, int(ms%86400000/3600000), got.Hours)
		require.Equal(t, int(ms%3600000/60000), got.Minutes)
		require.Equal(t, int(ms%60000/1000), got.Seconds)
	}
}

func TestState_Format(t *testing.T) {
	s := countdown.State{Days: 12, Hours: 3, Minutes: 4, Seconds: 5}

	require.Equal(t, "12d 03h 04m 05s", s.String())
	require.Equal(t, "12d 03h 04m 05s", s.Format(countdown.PrecisionSeconds))
	require.Equal(t, "12d 03h 04m", s.Format(countdown.PrecisionMinutes))
	require.False(t, s.IsZero())
	require.True(t, countdown.State{}.IsZero())
}

func TestPrecision(t *testing.T) {
	require.Equal(t, time.Second, countdown.PrecisionSeconds.Interval())
	require.Equal(t, time.Minute, countdown.PrecisionMinutes.Interval())
	require.Equal(t, time.Minute, countdown.Precision("").Interval())
	require.True(t, countdown.PrecisionSeconds.ShowSeconds())
	require.False(t, countdown.PrecisionMinutes.ShowSeconds())
}
