package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firmsite/site-api/internal/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the local subscriber database schema.

Available subcommands:
  up      - Create or update all tables
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update all tables",
	RunE:  runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

// openDatabase opens the configured database
func openDatabase() (*database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("no database configured, set database.path")
	}
	return database.Initialize(cfg.Database)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		status, err := db.Status()
		if err != nil {
			return err
		}
		for _, s := range status {
			action := "update"
			if !s.Exists {
				action = "create"
			}
			fmt.Fprintf(out, "  would %s table %s\n", action, s.Table)
		}
		return nil
	}

	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := db.Status()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	pending := 0
	for _, s := range status {
		state := "applied"
		if !s.Exists {
			state = "pending"
			pending++
		}
		fmt.Fprintf(out, "  %-30s %s\n", s.Table, state)
	}
	fmt.Fprintf(out, "\n%d table(s), %d pending\n", len(status), pending)
	return nil
}
