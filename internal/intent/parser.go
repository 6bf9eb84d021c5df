// Package intent turns a free-text shopper query into structured search
// intent without any external NLP service. Parsing is deterministic: the
// budget and urgency vocabularies are ordered pattern tables, and the first
// matching budget rule wins.
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the structured interpretation of a query.
type Intent struct {
	NormalizedQuery    string   `json:"normalizedQuery"`
	DetectedCategories []string `json:"detectedCategories"`
	DetectedNeeds      []string `json:"detectedNeeds"`
	BudgetMin          *float64 `json:"budgetMin,omitempty"`
	BudgetMax          *float64 `json:"budgetMax,omitempty"`
}

// Filters is a sparse filter set: nil means "no constraint" for that
// dimension, so merging with caller-supplied filters stays additive.
type Filters struct {
	Category    *string  `json:"category,omitempty"`
	BudgetMin   *float64 `json:"budgetMin,omitempty" validate:"omitempty,gte=0"`
	BudgetMax   *float64 `json:"budgetMax,omitempty" validate:"omitempty,gte=0"`
	InStockOnly *bool    `json:"inStockOnly,omitempty"`
}

// Merge overlays the override filters key-by-key; override values win.
func (f Filters) Merge(override Filters) Filters {
	out := f
	if override.Category != nil {
		out.Category = override.Category
	}
	if override.BudgetMin != nil {
		out.BudgetMin = override.BudgetMin
	}
	if override.BudgetMax != nil {
		out.BudgetMax = override.BudgetMax
	}
	if override.InStockOnly != nil {
		out.InStockOnly = override.InStockOnly
	}
	return out
}

const maxNeeds = 10

var stopWords = map[string]struct{}{
	"i": {}, "need": {}, "want": {}, "a": {}, "an": {}, "the": {},
	"for": {}, "with": {}, "and": {}, "or": {}, "to": {}, "my": {},
	"that": {}, "is": {}, "in": {}, "on": {}, "of": {}, "at": {},
	"me": {}, "you": {}, "best": {}, "good": {}, "please": {},
}

// budgetRule binds a pattern to the bounds it derives. Rules are tried in
// order; the first match wins.
type budgetRule struct {
	re    *regexp.Regexp
	apply func(m []string) (min, max *float64)
}

var budgetRules = []budgetRule{
	{
		// "50k-100k", "50000 to 80000"
		re: regexp.MustCompile(`(?i)(\d[\d,.]*\s*[km]?)\s*(?:-|to)\s*(\d[\d,.]*\s*[km]?)`),
		apply: func(m []string) (*float64, *float64) {
			lo, hi := ParseAmount(m[1]), ParseAmount(m[2])
			return &lo, &hi
		},
	},
	{
		re: regexp.MustCompile(`(?i)(?:under|below|less than|max|within)\s*(?:ngn|naira|₦)?\s*(\d[\d,.]*\s*[km]?)`),
		apply: func(m []string) (*float64, *float64) {
			hi := ParseAmount(m[1])
			return nil, &hi
		},
	},
	{
		re: regexp.MustCompile(`(?i)(?:above|over|from|starting at|min|minimum)\s*(?:ngn|naira|₦)?\s*(\d[\d,.]*\s*[km]?)`),
		apply: func(m []string) (*float64, *float64) {
			lo := ParseAmount(m[1])
			return &lo, nil
		},
	},
}

var urgencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)instock|in stock|ready stock`),
	regexp.MustCompile(`(?i)available now|urgent|immediately`),
}

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// ParseAmount converts a magnitude token into a number: thousands separators
// are stripped and a trailing k/m multiplies by 1e3/1e6. Non-numeric residue
// yields 0.
func ParseAmount(value string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(value, ",", "")))
	multiplier := 1.0
	switch {
	case strings.HasSuffix(normalized, "m"):
		multiplier = 1_000_000
		normalized = strings.TrimSuffix(normalized, "m")
	case strings.HasSuffix(normalized, "k"):
		multiplier = 1_000
		normalized = strings.TrimSuffix(normalized, "k")
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(normalized), 64)
	if err != nil {
		return 0
	}
	return parsed * multiplier
}

// Parse derives intent and filters from a query against the known category
// vocabulary. Pure and deterministic; category order follows the caller's.
func Parse(query string, knownCategories []string) (Intent, Filters) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	budgetMin, budgetMax := extractBudget(normalized)

	var detected []string
	for _, category := range knownCategories {
		if category != "" && strings.Contains(normalized, strings.ToLower(category)) {
			detected = append(detected, category)
		}
	}

	needs := needTokens(normalized)
	urgent := matchesAny(urgencyPatterns, normalized)

	parsed := Intent{
		NormalizedQuery:    normalized,
		DetectedCategories: detected,
		DetectedNeeds:      needs,
		BudgetMin:          budgetMin,
		BudgetMax:          budgetMax,
	}

	filters := Filters{BudgetMin: budgetMin, BudgetMax: budgetMax}
	if len(detected) > 0 {
		category := detected[0]
		filters.Category = &category
	}
	if urgent {
		inStock := true
		filters.InStockOnly = &inStock
	}
	return parsed, filters
}

func extractBudget(normalized string) (min, max *float64) {
	for _, rule := range budgetRules {
		if m := rule.re.FindStringSubmatch(normalized); m != nil {
			return rule.apply(m)
		}
	}
	return nil, nil
}

func needTokens(normalized string) []string {
	seen := make(map[string]struct{})
	var needs []string
	for _, token := range tokenSplit.Split(normalized, -1) {
		token = strings.TrimSpace(token)
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		needs = append(needs, token)
		if len(needs) == maxNeeds {
			break
		}
	}
	return needs
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
