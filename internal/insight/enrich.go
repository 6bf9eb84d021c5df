package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kasuwa-dev/kasuwa/internal/llm"
	"github.com/kasuwa-dev/kasuwa/internal/text"
)

const (
	systemPrompt = `You are an ecommerce sales assistant. Recommend only from provided products. Reply with strict JSON: {"insights":"...","followUpQuestions":["..."],"reasons":{"productId":"reason"}}.`

	unparseableInsights = "I found options that best match your request from our store catalog."

	shortDescriptionLimit = 280
	descriptionLimit      = 420
)

// Enricher layers an LLM-generated narrative over deterministic results. A
// returned error means the attempt failed outright (network, provider error);
// the caller keeps its deterministic baseline either way.
type Enricher interface {
	Enrich(ctx context.Context, query string, categories []string, candidates []Recommendation) (*Enrichment, error)
}

// LLMEnricher asks OpenRouter for insights about the scored candidates.
type LLMEnricher struct {
	client *llm.Client
}

// NewLLMEnricher wraps an OpenRouter client.
func NewLLMEnricher(client *llm.Client) *LLMEnricher {
	return &LLMEnricher{client: client}
}

// candidateProjection is the compact product view sent to the model:
// identifiers, pricing, availability, and truncated plain-text descriptions.
type candidateProjection struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Price            float64  `json:"price"`
	OriginalPrice    *float64 `json:"originalPrice"`
	InStock          bool     `json:"inStock"`
	Categories       []string `json:"categories"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
}

type enrichmentPayload struct {
	Query             string                `json:"query"`
	Categories        []string              `json:"categories"`
	CandidateProducts []candidateProjection `json:"candidateProducts"`
}

type enrichmentReply struct {
	Insights          string            `json:"insights"`
	FollowUpQuestions []string          `json:"followUpQuestions"`
	Reasons           map[string]string `json:"reasons"`
}

func (e *LLMEnricher) Enrich(ctx context.Context, query string, categories []string, candidates []Recommendation) (*Enrichment, error) {
	projections := make([]candidateProjection, 0, len(candidates))
	for _, c := range candidates {
		projections = append(projections, candidateProjection{
			ID:               c.ID,
			Name:             c.Name,
			Price:            c.Price,
			OriginalPrice:    c.OriginalPrice,
			InStock:          c.InStock,
			Categories:       c.Categories,
			ShortDescription: text.Truncate(text.StripHTML(c.ShortDescription), shortDescriptionLimit),
			Description:      text.Truncate(text.StripHTML(c.Description), descriptionLimit),
		})
	}

	payload, err := json.Marshal(enrichmentPayload{
		Query:             query,
		Categories:        categories,
		CandidateProducts: projections,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal enrichment payload: %w", err)
	}

	content, err := e.client.Complete(ctx, systemPrompt, string(payload))
	if err != nil {
		return nil, err
	}
	return parseReply(content, query), nil
}

// parseReply extracts the first balanced JSON object from the model output.
// An unparseable reply is not an error: it degrades to a deterministic
// narrative so enrichment can never break a search.
func parseReply(content, query string) *Enrichment {
	block := extractJSONBlock(content)

	var reply enrichmentReply
	if block == "" || json.Unmarshal([]byte(block), &reply) != nil || reply.Insights == "" {
		return &Enrichment{
			Insights:  unparseableInsights,
			FollowUps: FollowUps(query),
		}
	}

	followUps := reply.FollowUpQuestions
	if len(followUps) > maxFollowUps {
		followUps = followUps[:maxFollowUps]
	}
	if followUps == nil {
		followUps = FollowUps(query)
	}
	return &Enrichment{
		Insights:  reply.Insights,
		FollowUps: followUps,
		Reasons:   reply.Reasons,
	}
}

// extractJSONBlock returns the first balanced {...} block in s, tracking
// string literals so braces inside values don't skew the depth count.
func extractJSONBlock(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
