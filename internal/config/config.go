package config

import (
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/websetgate/websetgate/internal/exa"
)

type Config struct {
	ListenAddr    string
	JWTSecret     string
	JWTAudience   string
	ExaAPIKey     string
	ExaBaseURL    string
	ExaTimeout    time.Duration
	CORSOrigins   []string
	PollRateLimit int
	LogLevel      slog.Level
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:  getEnv("WEBSETS_LISTEN_ADDR", ":8080"),
		JWTSecret:   os.Getenv("WEBSETS_JWT_SECRET"),
		JWTAudience: getEnvDefault("WEBSETS_JWT_AUDIENCE", "authenticated"),
		ExaAPIKey:   strings.TrimSpace(os.Getenv("EXA_API_KEY")),
		ExaBaseURL:  getEnv("EXA_BASE_URL", exa.DefaultBaseURL),
		CORSOrigins: splitCSV(os.Getenv("WEBSETS_CORS_ORIGINS")),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("WEBSETS_JWT_SECRET must not be empty")
	}

	if err := validateBaseURL(cfg.ExaBaseURL); err != nil {
		return nil, errors.Wrap(err, "EXA_BASE_URL")
	}

	timeout, err := getEnvInt("EXA_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, errors.Wrap(err, "EXA_TIMEOUT_SECONDS")
	}
	if timeout < 1 {
		return nil, errors.New("EXA_TIMEOUT_SECONDS must be > 0")
	}
	cfg.ExaTimeout = time.Duration(timeout) * time.Second

	cfg.PollRateLimit, err = getEnvInt("WEBSETS_POLL_RATE_LIMIT", 10)
	if err != nil {
		return nil, errors.Wrap(err, "WEBSETS_POLL_RATE_LIMIT")
	}
	if cfg.PollRateLimit < 0 {
		return nil, errors.New("WEBSETS_POLL_RATE_LIMIT must be >= 0")
	}

	cfg.LogLevel, err = parseLevel(getEnv("WEBSETS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, errors.Wrap(err, "WEBSETS_LOG_LEVEL")
	}

	return cfg, nil
}

// validateBaseURL accepts absolute http(s) URLs only.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(err, "invalid URL")
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return errors.Newf("unsupported scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDefault is like getEnv but an explicitly empty value stays empty.
func getEnvDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Newf("invalid integer %q", v)
	}
	return n, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Newf("invalid log level %q", s)
	}
	return level, nil
}
