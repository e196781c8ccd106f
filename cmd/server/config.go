package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farouk/portfolio-relay/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect relay configuration",
	Long:  `Validate and display the configuration the server would start with.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the effective configuration in JSON format. Secrets are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(cfg.Redacted(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		fmt.Println(string(data))
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and report missing providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Println("Configuration is valid")
		fmt.Printf("Mail provider:  %s\n", status(cfg.MailConfigured()))
		fmt.Printf("Chat provider:  %s\n", status(cfg.ChatConfigured()))
		return nil
	},
}

func status(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

// initConfigCommands sets up all config-related commands
func initConfigCommands() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configCheckCmd)
}
