// Package main provides the CLI entrypoint for the BIGBRAINTIME launch page.
// It wires subcommands (serve, countdown, variants), loads configuration, and initializes logging.
package main

import (
	"bigbraintime/internal/config"
	"bigbraintime/internal/site"
	"bigbraintime/pkg/countdown"
	"bigbraintime/pkg/logger"
	"bigbraintime/pkg/relay"
	"bigbraintime/pkg/relay/formrelay"
	"bigbraintime/pkg/relay/smtprelay"
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getContent loads the configured page variant and applies the countdown
// overrides from the config.
func getContent(ctx context.Context, cfg *config.Config) *site.Content {
	content, err := site.Load(cfg.Site.Variant)
	if err != nil {
		logger.Fatal(ctx, "could not load page variant", zap.String("variant", cfg.Site.Variant), zap.Error(err))
	}

	target, err := cfg.CountdownTarget()
	if err != nil {
		logger.Fatal(ctx, "invalid countdown target", zap.Error(err))
	}
	if !target.IsZero() {
		content.Launch = target
	}
	if cfg.Countdown.Precision != "" {
		content.Precision = countdown.Precision(cfg.Countdown.Precision)
	}

	return content
}

// getRelay creates the relay client selected by Relay.Provider.
func getRelay(ctx context.Context, cfg *config.Config) relay.Client {
	if cfg.Relay.Provider == config.RelayProviderSMTP {
		client, err := smtprelay.New(smtprelay.Options{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			TLS:      cfg.SMTP.TLS,
			Timeout:  cfg.SMTP.Timeout,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
		})
		if err != nil {
			logger.Fatal(ctx, "could not create smtp relay", zap.Error(err))
		}

		return client
	}

	return formrelay.New(&http.Client{Timeout: cfg.Relay.Timeout}, cfg.Relay.Endpoint)
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "bigbraintime",
		Short: "BIGBRAINTIME launch page",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configPath := flags.String("c", "config.yml", "The config file path")
	_ = flags.Parse(configArgs(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		countdownCommand(cfg),
		variantsCommand(),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs picks the -c/--config flag out of args so the standard flag
// package does not stop at the subcommand name.
func configArgs(args []string) []string {
	for i, arg := range args {
		switch arg {
		case "-c", "--config", "-config":
			if i+1 < len(args) {
				return []string{"-c", args[i+1]}
			}
		}
		for _, prefix := range []string{"-c=", "--config=", "-config="} {
			if path, ok := strings.CutPrefix(arg, prefix); ok && path != "" {
				return []string{"-c", path}
			}
		}
	}

	return nil
}
