package cmd

import (
	"fmt"
	"os"

	"github.com/kasuwa-dev/kasuwa/config"
	"github.com/kasuwa-dev/kasuwa/internal/catalog"
	"github.com/kasuwa-dev/kasuwa/internal/httputil"
	"github.com/kasuwa-dev/kasuwa/internal/insight"
	"github.com/kasuwa-dev/kasuwa/internal/llm"
	"github.com/kasuwa-dev/kasuwa/internal/woo"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "kasuwa",
	Short: "Kasuwa - Storefront backend & conversational product search",
	Long:  "Backend for a WooCommerce-hosted storefront: REST API, MCP server, and an AI-assisted product search engine with a deterministic core.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("store-url", "", "WooCommerce base URL (overrides WC_BASE_URL)")
	rootCmd.PersistentFlags().String("model", "", "OpenRouter model identifier (overrides OPENROUTER_MODEL)")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("store-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("model"); v != "" {
		cfg.OpenRouterModel = v
	}
}

// buildGateway creates the WooCommerce client with the politeness limiter.
func buildGateway() *woo.Client {
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	return woo.NewClient(httputil.NewHTTPClient(nil), woo.Options{
		BaseURL:        cfg.BaseURL,
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		UseStoreAPI:    cfg.UseStoreAPI,
		Timeout:        cfg.RequestTimeout,
		Limiter:        limiter,
	})
}

// buildSearchService wires the catalog cache, the optional enricher, and the
// search orchestrator. Without an OpenRouter key the enricher stays nil and
// every search completes deterministically.
func buildSearchService(gateway *woo.Client) *insight.Service {
	cache := catalog.NewCache(gateway, cfg.CacheTTL, nil)

	var enricher insight.Enricher
	if cfg.OpenRouterKey != "" {
		client := llm.NewClient(httputil.NewHTTPClient(nil), llm.Options{
			APIKey:  cfg.OpenRouterKey,
			Model:   cfg.OpenRouterModel,
			Timeout: cfg.RequestTimeout,
		})
		enricher = insight.NewLLMEnricher(client)
	}
	return insight.NewService(cache, enricher)
}
