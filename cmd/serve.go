package cmd

import (
	"fmt"

	"github.com/kasuwa-dev/kasuwa/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront REST API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (default from $PORT or 4000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	gateway := buildGateway()
	service := buildSearchService(gateway)

	port := cfg.HTTPPort
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	server := api.NewServer(service, gateway, cfg.FrontendOrigin)
	return api.Serve(fmt.Sprintf(":%s", port), server)
}
