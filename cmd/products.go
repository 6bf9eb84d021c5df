package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kasuwa-dev/kasuwa/internal/woo"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List a page of products from the store",
	RunE:  runProducts,
}

func init() {
	productsCmd.Flags().Int("page", 1, "Page number")
	productsCmd.Flags().Int("per-page", 24, "Products per page")
	productsCmd.Flags().String("search", "", "Free-text search filter")
	productsCmd.Flags().String("category", "", "Category filter")
	productsCmd.Flags().Bool("featured", false, "Only featured products")
	productsCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	gateway := buildGateway()

	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	featured, _ := cmd.Flags().GetBool("featured")
	format, _ := cmd.Flags().GetString("format")

	products, err := gateway.ListProducts(context.Background(), woo.ListParams{
		Page:     page,
		PerPage:  perPage,
		Search:   search,
		Category: category,
		Featured: featured,
	})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	default:
		printProductsTable(products)
	}
	return nil
}
