package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/handlers"
	"github.com/farouk/portfolio-relay/internal/api/middleware"
	"github.com/farouk/portfolio-relay/internal/api/validation"
	"github.com/farouk/portfolio-relay/internal/config"
	"github.com/farouk/portfolio-relay/internal/logging"
	"github.com/farouk/portfolio-relay/internal/prompt"
	"github.com/farouk/portfolio-relay/internal/server/routes"
	"github.com/farouk/portfolio-relay/internal/service"
	"github.com/farouk/portfolio-relay/internal/telemetry"
	"github.com/farouk/portfolio-relay/internal/version"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the external providers the server delegates to
type Dependencies struct {
	Mailer    service.Mailer
	Completer service.Completer
	Prompt    prompt.Prompt
}

// DefaultDependencies builds the SMTP mailer, the OpenAI-compatible completer
// and the system prompt described by cfg
func DefaultDependencies(cfg *config.Config) (Dependencies, error) {
	p, err := prompt.Load(cfg.SystemPromptFile)
	if err != nil {
		return Dependencies{}, err
	}

	return Dependencies{
		Mailer: service.NewSMTPMailer(service.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			Timeout:  cfg.ProviderTimeout,
		}),
		Completer: service.NewOpenAICompleter(service.OpenAIConfig{
			APIKey:  cfg.ChatAPIKey,
			BaseURL: cfg.ChatBaseURL,
			Model:   cfg.ChatModel,
			Timeout: cfg.ProviderTimeout,
		}),
		Prompt: p,
	}, nil
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance with all routes registered
func NewServer(cfg *config.Config, logger *logging.Logger, deps Dependencies) (*Server, error) {
	if deps.Mailer == nil || deps.Completer == nil {
		return nil, errors.New("server: mailer and completer are required")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	contactService := service.NewContactService(deps.Mailer, cfg.MailFrom, cfg.MailTo, cfg.ProviderTimeout)
	chatService := service.NewChatService(deps.Completer, deps.Prompt, cfg.ChatMaxTokens, cfg.ProviderTimeout)

	h := &routes.Handlers{
		Health:  handlers.NewHealthHandler(version.Label()),
		Contact: handlers.NewContactHandler(contactService, validation.New(), logger),
		Chat:    handlers.NewChatHandler(chatService, logger),
	}
	m := &routes.Middleware{
		RateLimiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			Max:    cfg.RateLimitMax,
			Window: cfg.RateLimitWindow,
		}, logger),
	}

	routes.SetupGlobalMiddleware(router, logger, routes.GlobalOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Tracing:        telemetry.Enabled(cfg.OTLPEndpoint),
	})
	routes.Setup(router, h, m, logger)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Long enough for one provider call plus encoding
		WriteTimeout: s.cfg.ProviderTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
