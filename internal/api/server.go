// Package api exposes the storefront over HTTP: the conversational search
// endpoint plus thin product-listing passthroughs to the catalog gateway.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/kasuwa-dev/kasuwa/internal/insight"
	"github.com/kasuwa-dev/kasuwa/internal/models"
	"github.com/kasuwa-dev/kasuwa/internal/woo"
)

// Searcher runs conversational product searches.
type Searcher interface {
	Search(ctx context.Context, req insight.Request) (*insight.Response, error)
}

// Gateway lists products straight from the upstream catalog.
type Gateway interface {
	ListProducts(ctx context.Context, p woo.ListParams) ([]models.Product, error)
	ProductByReference(ctx context.Context, ref string) (*models.Product, error)
}

// Server holds the HTTP handler dependencies.
type Server struct {
	searcher Searcher
	gateway  Gateway
	origin   string
}

// NewServer creates the API server. origin, when non-empty, is the allowed
// CORS origin for the storefront frontend.
func NewServer(searcher Searcher, gateway Gateway, origin string) *Server {
	return &Server{searcher: searcher, gateway: gateway, origin: origin}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/v1/ai/search", s.handleSearch)
	mux.HandleFunc("GET /api/v1/products", s.handleListProducts)
	mux.HandleFunc("GET /api/v1/products/featured", s.handleFeaturedProducts)
	mux.HandleFunc("GET /api/v1/products/{reference}", s.handleProductByReference)

	return s.cors(mux)
}

// Serve runs the API server on addr until it fails.
func Serve(addr string, s *Server) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Kasuwa API listening on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.origin)
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
