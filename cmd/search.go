package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kasuwa-dev/kasuwa/internal/catalog"
	"github.com/kasuwa-dev/kasuwa/internal/insight"
	"github.com/kasuwa-dev/kasuwa/internal/intent"
	"github.com/kasuwa-dev/kasuwa/internal/ui"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Conversational product search from the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "Max recommendations, 1-12 (default 6)")
	searchCmd.Flags().String("category", "", "Restrict to one category")
	searchCmd.Flags().Float64("budget-min", -1, "Minimum price")
	searchCmd.Flags().Float64("budget-max", -1, "Maximum price")
	searchCmd.Flags().Bool("in-stock", false, "Only products in stock")
	searchCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	gateway := buildGateway()
	service := buildSearchService(gateway)

	query := args[0]
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	var filters intent.Filters
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		filters.Category = &v
	}
	if v, _ := cmd.Flags().GetFloat64("budget-min"); v >= 0 {
		filters.BudgetMin = &v
	}
	if v, _ := cmd.Flags().GetFloat64("budget-max"); v >= 0 {
		filters.BudgetMax = &v
	}
	if v, _ := cmd.Flags().GetBool("in-stock"); v {
		filters.InStockOnly = &v
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Searching the store for '%s'...", query))
	ctx := catalog.WithProgress(context.Background(), spin.Update)
	result, err := service.Search(ctx, insight.Request{
		Query:   query,
		Limit:   limit,
		Filters: &filters,
	})
	spin.Stop()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		printSearchResult(result)
	}
	return nil
}
