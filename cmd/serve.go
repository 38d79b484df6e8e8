package main

import (
	"bigbraintime/internal/api"
	"bigbraintime/internal/config"
	"bigbraintime/internal/page"
	"bigbraintime/internal/signup"
	"bigbraintime/pkg/analytics"
	"bigbraintime/pkg/logger"
	"bigbraintime/pkg/metrics"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getTracker returns the analytics tracker: an otel counter exported to
// prometheus plus an info log per event. The returned function shuts the
// meter provider down.
func getTracker(ctx context.Context) (analytics.Tracker, func(ctx context.Context)) {
	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}

	counter, err := analytics.NewCounter(mp.Meter(metrics.MeterName))
	if err != nil {
		logger.Fatal(ctx, "could not create analytics counter", zap.Error(err))
	}

	tracker := analytics.Multi{
		counter,
		analytics.Func(func(ctx context.Context, event string) {
			logger.Info(ctx, "analytics event", zap.String("event", event))
		}),
	}

	return tracker, func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

func setupServer(ctx context.Context, cfg *config.Config, tracker analytics.Tracker) func(ctx context.Context) {
	opts, err := api.NewOptions(cfg)
	if err != nil {
		logger.Fatal(ctx, "invalid server options", zap.Error(err))
	}

	renderer, err := page.New()
	if err != nil {
		logger.Fatal(ctx, "could not create page renderer", zap.Error(err))
	}

	submitter := signup.New(getRelay(ctx, cfg), tracker, signup.NewOptions(cfg))
	content := getContent(ctx, cfg)

	server := api.NewServer(ctx, api.Deps{
		Submitter: submitter,
		Renderer:  renderer,
		Content:   content,
	}, opts)

	go func() {
		logger.Info(ctx, "starting webserver...",
			zap.String("addr", opts.Addr),
			zap.String("variant", content.Name),
			zap.String("relay", cfg.Relay.Provider))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the launch page web server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tracker, stopTracker := getTracker(ctx)
			stopWebserver := setupServer(ctx, cfg, tracker)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopTracker(shutdownCtx)
		},
	}

	return cmd
}
