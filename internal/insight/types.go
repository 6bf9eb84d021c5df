package insight

import (
	"github.com/kasuwa-dev/kasuwa/internal/intent"
	"github.com/kasuwa-dev/kasuwa/internal/models"
)

// Request is the inbound conversational search request.
type Request struct {
	Query   string          `json:"query" validate:"required,min=2"`
	Limit   int             `json:"limit,omitempty" validate:"omitempty,gte=1,lte=12"`
	Filters *intent.Filters `json:"filters,omitempty"`
}

// Recommendation is a product that survived filtering and scored above zero,
// carrying its score and a human-readable rationale.
type Recommendation struct {
	models.Product
	Score float64 `json:"score"`
	Why   string  `json:"why"`
}

// Response is the full conversational search result.
type Response struct {
	Intent            intent.Intent    `json:"intent"`
	Filters           intent.Filters   `json:"filters"`
	Insights          string           `json:"insights"`
	FollowUpQuestions []string         `json:"followUpQuestions"`
	Recommendations   []Recommendation `json:"recommendations"`
	TotalCatalogSize  int              `json:"totalCatalogSize"`
}

// Enrichment is the optional LLM-generated overlay on a deterministic result.
type Enrichment struct {
	Insights  string
	FollowUps []string
	Reasons   map[string]string
}
