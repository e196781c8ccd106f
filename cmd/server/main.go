package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/farouk/portfolio-relay/internal/config"
	"github.com/farouk/portfolio-relay/internal/logging"
	"github.com/farouk/portfolio-relay/internal/server"
	"github.com/farouk/portfolio-relay/internal/telemetry"
	"github.com/farouk/portfolio-relay/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-relay",
	Short: "Portfolio relay - contact form and chat backend",
	Long: `Portfolio relay accepts contact form submissions and chat questions from the
portfolio site and forwards them to the mail and chat completion providers.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. Configuration is read from the environment and from
.env.<ENV> or .env in the working directory.

Example:
  PORT=3001 SMTP_USER=me@gmail.com SMTP_PASS=app-password portfolio-relay serve`,
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("portfolio-relay %s\n", version.Info())
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Logging())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	logger.Info("Starting portfolio-relay %s in %s mode", version.Label(), cfg.Environment)
	if !cfg.MailConfigured() {
		logger.Warn("SMTP credentials are not set, contact submissions will fail")
	}
	if !cfg.ChatConfigured() {
		logger.Warn("CHAT_API_KEY is not set, chat requests will fail")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, version.Label())
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	deps, err := server.DefaultDependencies(cfg)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cfg, logger, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped: %v", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	initConfigCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
