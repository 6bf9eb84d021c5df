package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/kasuwa-dev/kasuwa/internal/catalog"
	"github.com/kasuwa-dev/kasuwa/internal/ui"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show catalog categories ranked by product count",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	gateway := buildGateway()
	cache := catalog.NewCache(gateway, cfg.CacheTTL, nil)

	spin := ui.NewSpinner()
	spin.Start("Loading the full catalog...")
	ctx := catalog.WithProgress(context.Background(), spin.Update)
	products, err := cache.FullCatalog(ctx)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	// Aggregate categories
	counts := make(map[string]int)
	for _, p := range products {
		for _, c := range p.Categories {
			counts[c]++
		}
	}

	if len(counts) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	type entry struct {
		category string
		count    int
	}
	entries := make([]entry, 0, len(counts))
	for cat, n := range counts {
		entries = append(entries, entry{cat, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].category < entries[j].category
	})

	fmt.Printf("Catalog categories (%d products):\n\n", len(products))
	for i, e := range entries {
		fmt.Printf(" %2d. %-40s  (%d products)\n", i+1, e.category, e.count)
	}
	return nil
}
