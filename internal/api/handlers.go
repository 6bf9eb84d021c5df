package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/kasuwa-dev/kasuwa/internal/catalog"
	"github.com/kasuwa-dev/kasuwa/internal/insight"
	"github.com/kasuwa-dev/kasuwa/internal/models"
	"github.com/kasuwa-dev/kasuwa/internal/woo"
)

var validate = validator.New()

// ProductsResponse is the paginated product-listing payload.
type ProductsResponse struct {
	Items      []models.Product `json:"items"`
	Categories []string         `json:"categories"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	HasMore    bool             `json:"hasMore"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req insight.Request
	body := http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid search request: "+err.Error())
		return
	}

	result, err := s.searcher.Search(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := intParam(q.Get("page"), 1, 1, 0)
	perPage := intParam(q.Get("perPage"), 24, 1, 50)

	products, err := s.gateway.ListProducts(r.Context(), woo.ListParams{
		Page:     page,
		PerPage:  perPage,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		for _, c := range p.Categories {
			if _, dup := seen[c]; !dup {
				seen[c] = struct{}{}
				categories = append(categories, c)
			}
		}
	}
	sort.Strings(categories)

	writeJSON(w, http.StatusOK, ProductsResponse{
		Items:      products,
		Categories: append([]string{"All"}, categories...),
		Page:       page,
		PerPage:    perPage,
		HasMore:    len(products) == perPage,
	})
}

func (s *Server) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query().Get("limit"), 8, 1, 20)

	products, err := s.gateway.ListProducts(r.Context(), woo.ListParams{
		Page:     1,
		PerPage:  limit,
		Featured: true,
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if len(products) > limit {
		products = products[:limit]
	}
	writeJSON(w, http.StatusOK, map[string][]models.Product{"items": products})
}

func (s *Server) handleProductByReference(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("reference")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing product reference")
		return
	}

	product, err := s.gateway.ProductByReference(r.Context(), ref)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// writeUpstreamError maps gateway and cache failures onto server errors.
// Client mistakes never reach here: validation already returned 400.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var upstream *woo.UpstreamError
	switch {
	case errors.Is(err, catalog.ErrUnavailable), errors.As(err, &upstream):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// intParam parses a positive integer query parameter with a default and an
// optional upper bound (0 = unbounded).
func intParam(raw string, def, min, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
