package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kasuwa-dev/kasuwa/internal/insight"
	"github.com/kasuwa-dev/kasuwa/internal/intent"
	"github.com/kasuwa-dev/kasuwa/internal/woo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(s *server.MCPServer, searcher Searcher, gateway Gateway) {
	// ai_search
	searchTool := mcp.NewTool("ai_search",
		mcp.WithDescription("Conversational product search: give a free-text shopping request and get ranked, explained recommendations from the store catalog"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text shopping request, e.g. 'cheap smartphone under 100k'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max recommendations, 1-12 (default: 6)"),
		),
		mcp.WithString("category",
			mcp.Description("Restrict results to one category"),
		),
		mcp.WithNumber("budget_min",
			mcp.Description("Minimum price"),
		),
		mcp.WithNumber("budget_max",
			mcp.Description("Maximum price"),
		),
		mcp.WithBoolean("in_stock_only",
			mcp.Description("Only include products in stock"),
		),
	)
	s.AddTool(searchTool, handleAISearch(searcher))

	// list_products
	listTool := mcp.NewTool("list_products",
		mcp.WithDescription("List a page of products from the store catalog"),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
		mcp.WithNumber("per_page",
			mcp.Description("Products per page (default: 24)"),
		),
		mcp.WithString("search",
			mcp.Description("Free-text search filter"),
		),
		mcp.WithString("category",
			mcp.Description("Category filter"),
		),
	)
	s.AddTool(listTool, handleListProducts(gateway))

	// featured_products
	featuredTool := mcp.NewTool("featured_products",
		mcp.WithDescription("Get the store's featured products"),
		mcp.WithNumber("limit",
			mcp.Description("Number of products (default: 8)"),
		),
	)
	s.AddTool(featuredTool, handleFeaturedProducts(gateway))
}

func handleAISearch(searcher Searcher) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		if len(query) < 2 {
			return mcp.NewToolResultError("query must be at least 2 characters"), nil
		}

		var filters intent.Filters
		if v := request.GetString("category", ""); v != "" {
			filters.Category = &v
		}
		if v := request.GetFloat("budget_min", -1); v >= 0 {
			filters.BudgetMin = &v
		}
		if v := request.GetFloat("budget_max", -1); v >= 0 {
			filters.BudgetMax = &v
		}
		if request.GetBool("in_stock_only", false) {
			inStock := true
			filters.InStockOnly = &inStock
		}

		result, err := searcher.Search(ctx, insight.Request{
			Query:   query,
			Limit:   request.GetInt("limit", 0),
			Filters: &filters,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleListProducts(gateway Gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		products, err := gateway.ListProducts(ctx, woo.ListParams{
			Page:     request.GetInt("page", 1),
			PerPage:  request.GetInt("per_page", 24),
			Search:   request.GetString("search", ""),
			Category: request.GetString("category", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(products, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleFeaturedProducts(gateway Gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		products, err := gateway.ListProducts(ctx, woo.ListParams{
			Page:     1,
			PerPage:  request.GetInt("limit", 8),
			Featured: true,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("featured error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(products, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
