package main

import (
	"bigbraintime/internal/config"
	"bigbraintime/pkg/countdown"
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// printCountdown writes the state at precision p, or "launched" at zero.
func printCountdown(w io.Writer, s countdown.State, p countdown.Precision) {
	if s.IsZero() {
		_, _ = fmt.Fprintln(w, "launched")

		return
	}

	_, _ = fmt.Fprintln(w, s.Format(p))
}

// watchCountdown prints the countdown on every tick until it reaches zero or
// ctx is done.
func watchCountdown(ctx context.Context, w io.Writer, t countdown.Ticker, p countdown.Precision) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.Run(ctx, func(s countdown.State) {
		printCountdown(w, s, p)
		if s.IsZero() {
			cancel()
		}
	})
}

func countdownCommand(cfg *config.Config) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Prints the time left until launch",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			content := getContent(ctx, cfg)
			ticker := countdown.Ticker{
				Target:   content.Launch,
				Interval: content.Precision.Interval(),
				Clock:    time.Now,
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s launches %s\n", content.Brand, content.Launch.UTC().Format(time.RFC3339))
			if !watch {
				printCountdown(cmd.OutOrStdout(), ticker.Now(), content.Precision)

				return
			}

			watchCountdown(ctx, cmd.OutOrStdout(), ticker, content.Precision)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep printing at the variant's precision until launch")

	return cmd
}
