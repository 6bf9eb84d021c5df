package insight

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kasuwa-dev/kasuwa/internal/intent"
	"github.com/kasuwa-dev/kasuwa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products []models.Product
	err      error
}

func (f *fakeCatalog) FullCatalog(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

type fakeEnricher struct {
	result *Enrichment
	err    error
	calls  int
}

func (f *fakeEnricher) Enrich(ctx context.Context, query string, categories []string, candidates []Recommendation) (*Enrichment, error) {
	f.calls++
	return f.result, f.err
}

func storeCatalog() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Smartphone Pro", Price: 210_000, Categories: []string{"Mobile"}, InStock: true},
		{ID: "2", Name: "Smartphone Mini", Price: 85_000, Categories: []string{"Mobile"}, InStock: true},
		{ID: "3", Name: "Smartwatch", Price: 45_000, Categories: []string{"Gadgets"}, InStock: true},
		{ID: "4", Name: "Leather Wallet", Price: 15_000, Categories: []string{"Fashion"}, InStock: false},
	}
}

func TestSearchBudgetedQuery(t *testing.T) {
	svc := NewService(&fakeCatalog{products: storeCatalog()}, nil)

	resp, err := svc.Search(context.Background(), Request{Query: "cheap smartphone under 100k"})
	require.NoError(t, err)

	require.NotNil(t, resp.Filters.BudgetMax)
	assert.Equal(t, 100_000.0, *resp.Filters.BudgetMax)
	assert.Equal(t, 4, resp.TotalCatalogSize)

	// the 210k smartphone is priced out; the 85k one wins on its name match
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Smartphone Mini", resp.Recommendations[0].Name)
	for _, rec := range resp.Recommendations {
		assert.LessOrEqual(t, rec.Price, 100_000.0)
	}
}

func TestSearchDeterministicWithoutEnricher(t *testing.T) {
	svc := NewService(&fakeCatalog{products: storeCatalog()}, nil)

	resp, err := svc.Search(context.Background(), Request{Query: "smartphone"})
	require.NoError(t, err)

	assert.Equal(t, deterministicInsights, resp.Insights)
	require.NotEmpty(t, resp.Recommendations)
	first := resp.Recommendations[0]
	assert.Equal(t, fmt.Sprintf("%s is a strong match in %s with current pricing and availability.", first.Name, first.Categories[0]), first.Why)
	assert.NotEmpty(t, resp.FollowUpQuestions)
}

func TestSearchNoSignalMeansNoRecommendations(t *testing.T) {
	enricher := &fakeEnricher{result: &Enrichment{Insights: "should never appear"}}
	svc := NewService(&fakeCatalog{products: storeCatalog()}, enricher)

	// every word is a stop word, so there is nothing to score on
	resp, err := svc.Search(context.Background(), Request{Query: "the best for me"})
	require.NoError(t, err)

	assert.Empty(t, resp.Recommendations)
	assert.Equal(t, deterministicInsights, resp.Insights)
	assert.Zero(t, enricher.calls, "enricher is skipped when nothing ranked")
}

func TestSearchCallerFiltersWin(t *testing.T) {
	svc := NewService(&fakeCatalog{products: storeCatalog()}, nil)

	gadgets := "Gadgets"
	resp, err := svc.Search(context.Background(), Request{
		Query:   "mobile phone",
		Filters: &intent.Filters{Category: &gadgets},
	})
	require.NoError(t, err)

	// the query detects Mobile, but the caller pinned Gadgets
	assert.Contains(t, resp.Intent.DetectedCategories, "Mobile")
	require.NotNil(t, resp.Filters.Category)
	assert.Equal(t, "Gadgets", *resp.Filters.Category)
	for _, rec := range resp.Recommendations {
		assert.Contains(t, rec.Categories, "Gadgets")
	}
}

func TestSearchInStockOnly(t *testing.T) {
	svc := NewService(&fakeCatalog{products: storeCatalog()}, nil)

	resp, err := svc.Search(context.Background(), Request{Query: "wallet available now"})
	require.NoError(t, err)

	require.NotNil(t, resp.Filters.InStockOnly)
	assert.True(t, *resp.Filters.InStockOnly)
	// the only wallet in the catalog is out of stock
	for _, rec := range resp.Recommendations {
		assert.True(t, rec.InStock)
		assert.NotEqual(t, "Leather Wallet", rec.Name)
	}
}

func TestSearchLimitClamping(t *testing.T) {
	var products []models.Product
	for i := 0; i < 20; i++ {
		products = append(products, models.Product{
			ID:         fmt.Sprintf("%d", i+1),
			Name:       fmt.Sprintf("Phone Case %d", i+1),
			Price:      5_000,
			Categories: []string{"Accessories"},
			InStock:    true,
		})
	}
	svc := NewService(&fakeCatalog{products: products}, nil)

	resp, err := svc.Search(context.Background(), Request{Query: "case", Limit: 50})
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, 12)

	resp, err = svc.Search(context.Background(), Request{Query: "case"})
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, 6)

	// equal scores keep catalog order
	assert.Equal(t, "1", resp.Recommendations[0].ID)
	assert.Equal(t, "6", resp.Recommendations[5].ID)
}

func TestSearchIsIdempotent(t *testing.T) {
	svc := NewService(&fakeCatalog{products: storeCatalog()}, nil)
	req := Request{Query: "cheap smartphone"}

	first, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchEnrichmentOverlay(t *testing.T) {
	enricher := &fakeEnricher{result: &Enrichment{
		Insights:  "The Mini is the sweet spot for your budget.",
		FollowUps: []string{"Do you want a case with that?"},
		Reasons:   map[string]string{"2": "Best value under your budget."},
	}}
	svc := NewService(&fakeCatalog{products: storeCatalog()}, enricher)

	resp, err := svc.Search(context.Background(), Request{Query: "cheap smartphone under 100k"})
	require.NoError(t, err)

	assert.Equal(t, 1, enricher.calls)
	assert.Equal(t, "The Mini is the sweet spot for your budget.", resp.Insights)
	assert.Equal(t, []string{"Do you want a case with that?"}, resp.FollowUpQuestions)

	for _, rec := range resp.Recommendations {
		if rec.ID == "2" {
			assert.Equal(t, "Best value under your budget.", rec.Why)
		} else {
			assert.Contains(t, rec.Why, "is a strong match in")
		}
	}
}

func TestSearchEnrichmentFailureKeepsBaseline(t *testing.T) {
	enricher := &fakeEnricher{err: errors.New("provider down")}
	svc := NewService(&fakeCatalog{products: storeCatalog()}, enricher)

	resp, err := svc.Search(context.Background(), Request{Query: "smartphone"})
	require.NoError(t, err, "enrichment failures never fail the search")

	assert.Equal(t, 1, enricher.calls)
	assert.Equal(t, baselineInsights, resp.Insights)
	require.NotEmpty(t, resp.Recommendations)
	assert.Contains(t, resp.Recommendations[0].Why, "is a strong match in")
}

func TestSearchCatalogFailure(t *testing.T) {
	svc := NewService(&fakeCatalog{err: errors.New("store offline")}, nil)

	_, err := svc.Search(context.Background(), Request{Query: "smartphone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestVocabulary(t *testing.T) {
	products := []models.Product{
		{Categories: []string{"All", "Mobile"}},
		{Categories: []string{"Gadgets", "Mobile"}},
		{Categories: []string{"", "all"}},
	}
	assert.Equal(t, []string{"Mobile", "Gadgets"}, vocabulary(products))
}

func TestFollowUps(t *testing.T) {
	// nothing specified: all three questions, in priority order
	qs := FollowUps("something nice")
	require.Len(t, qs, 3)
	assert.Contains(t, qs[0], "budget")

	// digits count as budget coverage
	qs = FollowUps("phone under 100k")
	require.Len(t, qs, 2)
	assert.Contains(t, qs[0], "brand")

	qs = FollowUps("samsung phone with 8gb ram under 200k")
	assert.Empty(t, qs)
}
