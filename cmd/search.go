package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firmsite/site-api/internal/services/search"
)

// searchCmd runs one search against the CMS
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search services and team members",
	Long: `Run the site search against the CMS and print the resulting page.

Example:
  site-api search law
  site-api search "corporate law" --tab services --page 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("tab", string(search.TabAll), "result tab (all, services, team)")
	searchCmd.Flags().Int("page", 1, "page number")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tab, _ := cmd.Flags().GetString("tab")
	page, _ := cmd.Flags().GetInt("page")

	sessions := search.NewSessionStore(cfg.Search.SessionIdle)
	defer sessions.Stop()

	service := search.NewService(
		search.NewFetcher(newCMSClient(cfg), cfg.Search.FetchTimeout),
		sessions,
		search.WithPageSize(cfg.Search.PageSize),
	)

	result, err := service.Search(cmd.Context(), "cli", search.QueryState{
		Query: strings.Join(args, " "),
		Tab:   search.ParseTab(tab),
		Page:  page,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
