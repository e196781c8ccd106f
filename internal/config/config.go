package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/farouk/portfolio-relay/internal/logging"
)

// Config holds all configuration for the relay service. It is built once in
// main and handed to the components that need it.
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://faroukafolabi.com,http://localhost:3000"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Mail Configuration
	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	MailFrom string `env:"MAIL_FROM"`
	MailTo   string `env:"MAIL_TO"`

	// Chat Configuration
	ChatAPIKey       string `env:"CHAT_API_KEY"`
	ChatBaseURL      string `env:"CHAT_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ChatModel        string `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	ChatMaxTokens    int    `env:"CHAT_MAX_TOKENS" envDefault:"500"`
	SystemPromptFile string `env:"SYSTEM_PROMPT_FILE"`

	// Outbound provider calls
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"20s"`

	// Rate Limiting
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// The sending account doubles as sender identity and owner inbox
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}
	if cfg.MailTo == "" {
		cfg.MailTo = cfg.SMTPUser
	}

	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimRight(strings.TrimSpace(origin), "/")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot run with. Missing provider
// credentials are not an error: the affected endpoint fails per request.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("ALLOWED_ORIGINS must list at least one origin"))
	}
	for _, origin := range c.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("invalid allowed origin %q", origin))
		}
	}
	if c.RateLimitMax <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must be positive"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.ProviderTimeout <= 0 {
		errs = append(errs, errors.New("PROVIDER_TIMEOUT must be positive"))
	}
	if c.ChatMaxTokens <= 0 {
		errs = append(errs, errors.New("CHAT_MAX_TOKENS must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MailConfigured reports whether SMTP credentials are present
func (c *Config) MailConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.MailTo != ""
}

// Logging returns the logger settings derived from this config
func (c *Config) Logging() *logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = strings.ToLower(c.LogLevel)
	lc.File = c.LogFile
	lc.LogRequests = c.LogRequests
	return lc
}

// ChatConfigured reports whether an API key for the completion provider is present
func (c *Config) ChatConfigured() bool {
	return c.ChatAPIKey != ""
}

// Redacted returns a copy safe to print, with secrets masked
func (c *Config) Redacted() Config {
	out := *c
	out.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	out.TrustedProxies = append([]string(nil), c.TrustedProxies...)
	out.SMTPPass = mask(c.SMTPPass)
	out.ChatAPIKey = mask(c.ChatAPIKey)
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
