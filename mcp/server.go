// Package mcp exposes the storefront search engine to AI agents over the
// Model Context Protocol, on stdio or streamable HTTP.
package mcp

import (
	"context"

	"github.com/kasuwa-dev/kasuwa/internal/insight"
	"github.com/kasuwa-dev/kasuwa/internal/models"
	"github.com/kasuwa-dev/kasuwa/internal/woo"
	"github.com/mark3labs/mcp-go/server"
)

// Searcher runs conversational product searches.
type Searcher interface {
	Search(ctx context.Context, req insight.Request) (*insight.Response, error)
}

// Gateway lists products from the upstream catalog.
type Gateway interface {
	ListProducts(ctx context.Context, p woo.ListParams) ([]models.Product, error)
}

func newServer(searcher Searcher, gateway Gateway) *server.MCPServer {
	s := server.NewMCPServer(
		"kasuwa",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	registerTools(s, searcher, gateway)
	return s
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(searcher Searcher, gateway Gateway) error {
	return server.ServeStdio(newServer(searcher, gateway))
}
