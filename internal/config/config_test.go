package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllVarsSet(t *testing.T) {
	t.Setenv("WEBSETS_LISTEN_ADDR", ":9090")
	t.Setenv("WEBSETS_JWT_SECRET", "s3cret")
	t.Setenv("WEBSETS_JWT_AUDIENCE", "api")
	t.Setenv("EXA_API_KEY", " exa-key ")
	t.Setenv("EXA_BASE_URL", "https://exa.internal")
	t.Setenv("EXA_TIMEOUT_SECONDS", "5")
	t.Setenv("WEBSETS_CORS_ORIGINS", "https://a.com, https://b.com,")
	t.Setenv("WEBSETS_POLL_RATE_LIMIT", "3")
	t.Setenv("WEBSETS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "api", cfg.JWTAudience)
	assert.Equal(t, "exa-key", cfg.ExaAPIKey)
	assert.Equal(t, "https://exa.internal", cfg.ExaBaseURL)
	assert.Equal(t, 5*time.Second, cfg.ExaTimeout)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.PollRateLimit)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	// Only the required variable set; everything else falls back.
	t.Setenv("WEBSETS_JWT_SECRET", "s3cret")
	t.Setenv("WEBSETS_LISTEN_ADDR", "")
	t.Setenv("EXA_API_KEY", "")
	t.Setenv("EXA_BASE_URL", "")
	t.Setenv("EXA_TIMEOUT_SECONDS", "")
	t.Setenv("WEBSETS_CORS_ORIGINS", "")
	t.Setenv("WEBSETS_POLL_RATE_LIMIT", "")
	t.Setenv("WEBSETS_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "", cfg.ExaAPIKey)
	assert.Equal(t, "https://api.exa.ai", cfg.ExaBaseURL)
	assert.Equal(t, 30*time.Second, cfg.ExaTimeout)
	assert.Nil(t, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.PollRateLimit)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_EmptyAudienceDisablesCheck(t *testing.T) {
	t.Setenv("WEBSETS_JWT_SECRET", "s3cret")
	t.Setenv("WEBSETS_JWT_AUDIENCE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.JWTAudience)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing jwt secret", env: map[string]string{"WEBSETS_JWT_SECRET": ""}, wantErr: "WEBSETS_JWT_SECRET must not be empty"},
		{name: "bad timeout", env: map[string]string{"EXA_TIMEOUT_SECONDS": "soon"}, wantErr: `EXA_TIMEOUT_SECONDS: invalid integer "soon"`},
		{name: "zero timeout", env: map[string]string{"EXA_TIMEOUT_SECONDS": "0"}, wantErr: "EXA_TIMEOUT_SECONDS must be > 0"},
		{name: "negative rate limit", env: map[string]string{"WEBSETS_POLL_RATE_LIMIT": "-1"}, wantErr: "WEBSETS_POLL_RATE_LIMIT must be >= 0"},
		{name: "base url without scheme", env: map[string]string{"EXA_BASE_URL": "api.exa.ai"}, wantErr: `EXA_BASE_URL: unsupported scheme: ""`},
		{name: "base url ftp", env: map[string]string{"EXA_BASE_URL": "ftp://api.exa.ai"}, wantErr: `EXA_BASE_URL: unsupported scheme: "ftp"`},
		{name: "base url unparsable", env: map[string]string{"EXA_BASE_URL": "http://[::1"}, wantErr: "EXA_BASE_URL: invalid URL"},
		{name: "bad log level", env: map[string]string{"WEBSETS_LOG_LEVEL": "loud"}, wantErr: `WEBSETS_LOG_LEVEL: invalid log level "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WEBSETS_JWT_SECRET", "s3cret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
