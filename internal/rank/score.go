// Package rank scores catalog products against extracted query intent. The
// scoring function is pure and additive so that rankings are explainable and
// reproducible run-to-run.
package rank

import (
	"math"
	"strings"

	"github.com/kasuwa-dev/kasuwa/internal/models"
	"github.com/kasuwa-dev/kasuwa/internal/text"
)

// Per-token weights: a name hit is worth more than a category hit, which is
// worth more than a mention anywhere in the product text.
const (
	nameWeight     = 10
	categoryWeight = 6
	haystackWeight = 2
)

// Score rates a product against the query's need tokens. No tokens means no
// signal, so the score is 0 and the product cannot rank. Scores are unbounded
// above; ranking is relative, never normalized.
func Score(p models.Product, needTokens []string, normalizedQuery string) float64 {
	if len(needTokens) == 0 {
		return 0
	}

	name := strings.ToLower(p.Name)
	haystack := haystackFor(p)

	var score float64
	for _, token := range needTokens {
		if strings.Contains(name, token) {
			score += nameWeight
		}
		if categoryContains(p.Categories, token) {
			score += categoryWeight
		}
		if strings.Contains(haystack, token) {
			score += haystackWeight
		}
	}

	// Price-sensitivity nudges keyed off the raw query, not per token.
	if containsAny(normalizedQuery, "cheap", "budget", "affordable") {
		score += math.Max(0, 5-p.Price/100000)
	}
	if containsAny(normalizedQuery, "premium", "best", "quality") {
		score += math.Min(5, p.Price/150000)
	}
	if p.InStock {
		score++
	}
	if p.Hot {
		score += 0.5
	}
	return score
}

// Round2 rounds a score to two decimals for presentation.
func Round2(score float64) float64 {
	return math.Round(score*100) / 100
}

func haystackFor(p models.Product) string {
	parts := []string{
		p.Name,
		strings.Join(p.Categories, " "),
		text.StripHTML(p.ShortDescription),
		text.StripHTML(p.Description),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func categoryContains(categories []string, token string) bool {
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c), token) {
			return true
		}
	}
	return false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
