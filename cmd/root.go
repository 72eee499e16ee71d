package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/firmsite/site-api/pkg/config"
	"github.com/firmsite/site-api/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "site-api",
	Short: "Law firm website API server",
	Long: `Firm Site API - content, search and newsletter backend for the firm website

The API reads practice areas, team members, blog posts, testimonials and
hero slides from the headless CMS and serves them in English or Arabic.

Features:
  • Search across services and team members with tabs and pagination
  • English / Arabic language negotiation with RTL direction
  • Hero, testimonial and team carousels
  • Newsletter subscriptions mirrored to a local database`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// setup configures logging and loads the configuration for commands that need it
func setup(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")

	if skipsConfig(cmd) {
		logging.Init(orDefault(level, "info"), jsonLogs)
		return nil
	}

	if err := config.Init(); err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	// Flags win over the logging section of the config
	if level == "" {
		level = config.GetString("logging.level")
	}
	if !cmd.Flags().Changed("json-logs") {
		jsonLogs = config.GetString("logging.format") == "json"
	}
	logging.Init(orDefault(level, "info"), jsonLogs)
	return nil
}

// skipsConfig reports whether cmd runs without loading configuration
func skipsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// loadConfig returns the parsed configuration, validated
func loadConfig() (*config.Config, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
