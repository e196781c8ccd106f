package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("SMTP_USER", "owner@example.com")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://faroukafolabi.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 20*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 500, cfg.ChatMaxTokens)
	assert.Equal(t, "owner@example.com", cfg.MailFrom)
	assert.Equal(t, "owner@example.com", cfg.MailTo)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.MailConfigured())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", " https://example.com/ ,http://localhost:5173")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("SMTP_USER", "relay@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("MAIL_TO", "owner@example.com")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "relay@example.com", cfg.MailFrom)
	assert.Equal(t, "owner@example.com", cfg.MailTo)
	assert.True(t, cfg.MailConfigured())
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero rate limit", "RATE_LIMIT_MAX", "0"},
		{"negative window", "RATE_LIMIT_WINDOW", "-1s"},
		{"bad origin", "ALLOWED_ORIGINS", "example.com"},
		{"zero max tokens", "CHAT_MAX_TOKENS", "0"},
		{"unparsable duration", "PROVIDER_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := &Config{LogLevel: "DEBUG", LogFile: "/tmp/relay.log", LogRequests: true}

	lc := cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "/tmp/relay.log", lc.File)
	assert.True(t, lc.LogRequests)
	assert.NoError(t, lc.Validate())
}

func TestRedacted(t *testing.T) {
	cfg := &Config{
		SMTPUser:       "relay@example.com",
		SMTPPass:       "hunter2",
		ChatAPIKey:     "sk-live",
		AllowedOrigins: []string{"https://example.com"},
	}

	out := cfg.Redacted()
	assert.Equal(t, "relay@example.com", out.SMTPUser)
	assert.NotEqual(t, "hunter2", out.SMTPPass)
	assert.NotEqual(t, "sk-live", out.ChatAPIKey)
	assert.True(t, cfg.ChatConfigured())

	out.AllowedOrigins[0] = "changed"
	assert.Equal(t, "https://example.com", cfg.AllowedOrigins[0])
	assert.Empty(t, (&Config{}).Redacted().SMTPPass)
}
