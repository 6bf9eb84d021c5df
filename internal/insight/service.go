// Package insight orchestrates conversational product search: it reads the
// cached catalog, parses intent, filters and ranks candidates, and layers an
// optional LLM narrative over a fully deterministic baseline.
package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kasuwa-dev/kasuwa/internal/intent"
	"github.com/kasuwa-dev/kasuwa/internal/models"
	"github.com/kasuwa-dev/kasuwa/internal/rank"
)

const (
	defaultLimit = 6
	maxLimit     = 12

	baselineInsights      = "I found options from our store that best match your request."
	deterministicInsights = "I matched products based on your intent, budget, category fit, and availability in our store."
)

// CatalogSource supplies the full catalog snapshot.
type CatalogSource interface {
	FullCatalog(ctx context.Context) ([]models.Product, error)
}

// Service runs conversational searches. Enricher may be nil when no provider
// key is configured; every search then completes deterministically.
type Service struct {
	catalog  CatalogSource
	enricher Enricher
}

// NewService creates the search orchestrator.
func NewService(source CatalogSource, enricher Enricher) *Service {
	return &Service{catalog: source, enricher: enricher}
}

// Search turns a raw query plus optional caller filters into a ranked,
// explained response. Enrichment failures never surface: the deterministic
// result stands on its own.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	limit = min(max(limit, 1), maxLimit)

	products, err := s.catalog.FullCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	categories := vocabulary(products)
	parsed, parsedFilters := intent.Parse(req.Query, categories)

	merged := parsedFilters
	if req.Filters != nil {
		merged = parsedFilters.Merge(*req.Filters)
	}

	filtered := applyFilters(products, merged)
	recommendations := rankCandidates(filtered, parsed, limit)

	insights := baselineInsights
	followUps := FollowUps(req.Query)

	if s.enricher == nil || len(recommendations) == 0 {
		insights = deterministicInsights
	} else if enriched, err := s.enricher.Enrich(ctx, req.Query, categories, recommendations); err == nil {
		insights = enriched.Insights
		if enriched.FollowUps != nil {
			followUps = enriched.FollowUps
		}
		for i := range recommendations {
			if why, ok := enriched.Reasons[recommendations[i].ID]; ok {
				recommendations[i].Why = why
			}
		}
	}

	return &Response{
		Intent:            parsed,
		Filters:           merged,
		Insights:          insights,
		FollowUpQuestions: followUps,
		Recommendations:   recommendations,
		TotalCatalogSize:  len(products),
	}, nil
}

// vocabulary collects the distinct category names across the snapshot,
// keeping first-seen order and dropping the "all" pseudo-category.
func vocabulary(products []models.Product) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		for _, c := range p.Categories {
			if c == "" || strings.EqualFold(c, "all") {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			categories = append(categories, c)
		}
	}
	return categories
}

func applyFilters(products []models.Product, f intent.Filters) []models.Product {
	var out []models.Product
	for _, p := range products {
		if f.Category != nil && !hasCategory(p, *f.Category) {
			continue
		}
		if f.InStockOnly != nil && *f.InStockOnly && !p.InStock {
			continue
		}
		if f.BudgetMin != nil && p.Price < *f.BudgetMin {
			continue
		}
		if f.BudgetMax != nil && p.Price > *f.BudgetMax {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasCategory(p models.Product, category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// rankCandidates scores the filtered products, drops zero scores, and keeps
// the top candidates in score order. Ties preserve catalog order.
func rankCandidates(products []models.Product, parsed intent.Intent, limit int) []Recommendation {
	type scored struct {
		product models.Product
		score   float64
	}
	var candidates []scored
	for _, p := range products {
		score := rank.Score(p, parsed.DetectedNeeds, parsed.NormalizedQuery)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scored{product: p, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	recommendations := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recommendations = append(recommendations, Recommendation{
			Product: c.product,
			Score:   rank.Round2(c.score),
			Why:     fallbackWhy(c.product),
		})
	}
	return recommendations
}

func fallbackWhy(p models.Product) string {
	category := "general use"
	if len(p.Categories) > 0 {
		category = p.Categories[0]
	}
	return fmt.Sprintf("%s is a strong match in %s with current pricing and availability.", p.Name, category)
}
