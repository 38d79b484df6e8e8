package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Relay providers supported by Relay.Provider.
const (
	RelayProviderHTTP = "http"
	RelayProviderSMTP = "smtp"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Site selects which page variant is served and how display preferences behave
	Site struct {
		// Variant is the name of the embedded page variant to serve
		Variant string `env:"SITE_VARIANT" env-default:"launch-2025" yaml:"variant"`
		// DefaultTheme is used when the visitor has no stored theme preference
		DefaultTheme string `env:"SITE_DEFAULT_THEME" env-default:"dark" yaml:"defaultTheme"`
		// ThemeCookieMaxAge is how long the stored theme preference is kept
		ThemeCookieMaxAge time.Duration `env:"SITE_THEME_COOKIE_MAX_AGE" env-default:"8760h" yaml:"themeCookieMaxAge"`
		// AnalyticsDomain enables the client side analytics snippet when set
		AnalyticsDomain string `env:"SITE_ANALYTICS_DOMAIN" yaml:"analyticsDomain"`
	} `yaml:"site"`

	// Countdown optionally overrides the variant's launch instant
	Countdown struct {
		// Target is an RFC3339 instant; empty keeps the variant's launch date
		Target string `env:"COUNTDOWN_TARGET" yaml:"target"`
		// Precision is "seconds" or "minutes"; empty keeps the variant's precision
		Precision string `env:"COUNTDOWN_PRECISION" yaml:"precision"`
	} `yaml:"countdown"`

	// Relay configures where signups are forwarded
	Relay struct {
		// Provider is either "http" (hosted form relay) or "smtp"
		Provider string `env:"RELAY_PROVIDER" env-default:"http" yaml:"provider"`
		// Endpoint is the hosted form relay URL
		Endpoint string `env:"RELAY_ENDPOINT" env-default:"https://formspree.io/f/bigbraintime" yaml:"endpoint"`
		// Subject is the subject line of forwarded signups
		Subject string `env:"RELAY_SUBJECT" env-default:"New BIGBRAINTIME launch signup" yaml:"subject"`
		// Timeout bounds a single relay request
		Timeout time.Duration `env:"RELAY_TIMEOUT" env-default:"10s" yaml:"timeout"`
		// SuccessMessage is shown after the relay accepted a signup
		SuccessMessage string `env:"RELAY_SUCCESS_MESSAGE" env-default:"You're on the list! We'll email you at launch." yaml:"successMessage"` //nolint: lll
		// FailureMessage is shown for any relay failure
		FailureMessage string `env:"RELAY_FAILURE_MESSAGE" env-default:"Something went wrong. Please try again." yaml:"failureMessage"` //nolint: lll
		// AnalyticsEvent is reported after a successful signup
		AnalyticsEvent string `env:"RELAY_ANALYTICS_EVENT" env-default:"signup" yaml:"analyticsEvent"`
	} `yaml:"relay"`

	// SMTP is used when Relay.Provider is "smtp"
	SMTP struct {
		Host     string        `env:"SMTP_HOST" env-default:"localhost" yaml:"host"`
		Port     int           `env:"SMTP_PORT" env-default:"587" yaml:"port"`
		Username string        `env:"SMTP_USERNAME" yaml:"username"`
		Password string        `env:"SMTP_PASSWORD" yaml:"password"`
		TLS      bool          `env:"SMTP_TLS" env-default:"true" yaml:"tls"`
		Timeout  time.Duration `env:"SMTP_TIMEOUT" env-default:"15s" yaml:"timeout"`
		From     string        `env:"SMTP_FROM" env-default:"launch@bigbraintime.tv" yaml:"from"`
		To       string        `env:"SMTP_TO" env-default:"admin@bigbraintime.tv" yaml:"to"`
	} `yaml:"smtp"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if cfg.Relay.Provider != RelayProviderHTTP && cfg.Relay.Provider != RelayProviderSMTP {
		return nil, fmt.Errorf("unknown relay provider %q", cfg.Relay.Provider)
	}

	return &cfg, nil
}

// CountdownTarget parses the configured target override. The zero time and
// no error are returned when no override is set.
func (c *Config) CountdownTarget() (time.Time, error) {
	if c.Countdown.Target == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, c.Countdown.Target)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse countdown target: %w", err)
	}

	return t, nil
}
