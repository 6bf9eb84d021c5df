package cmd

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/kasuwa-dev/kasuwa/internal/insight"
	"github.com/kasuwa-dev/kasuwa/internal/models"
)

// printProductsTable prints products in a human-friendly card layout.
func printProductsTable(products []models.Product) {
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		name := p.Name
		if p.Hot {
			name = "[HOT] " + name
		}
		fmt.Fprintf(os.Stdout, " %d. %s\n", i+1, name)

		priceLine := "    Price: " + formatPrice(p.Price)
		if p.OriginalPrice != nil {
			priceLine += fmt.Sprintf("  (was %s)", formatPrice(*p.OriginalPrice))
		}
		priceLine += "  |  " + string(p.Badge)
		fmt.Fprintln(os.Stdout, priceLine)

		if len(p.Categories) > 0 {
			fmt.Fprintf(os.Stdout, "    Category: %s\n", strings.Join(p.Categories, ", "))
		}
		fmt.Fprintf(os.Stdout, "    /%s\n", p.Slug)
	}
}

// printSearchResult prints a conversational search response: narrative,
// ranked recommendations with their rationale, then follow-up questions.
func printSearchResult(res *insight.Response) {
	fmt.Fprintf(os.Stdout, "%s\n", res.Insights)
	if len(res.Intent.DetectedCategories) > 0 {
		fmt.Fprintf(os.Stdout, "Detected categories: %s\n", strings.Join(res.Intent.DetectedCategories, ", "))
	}
	fmt.Fprintf(os.Stdout, "Catalog size: %d\n\n", res.TotalCatalogSize)

	if len(res.Recommendations) == 0 {
		fmt.Fprintln(os.Stdout, "No matching products found.")
	}
	for i, rec := range res.Recommendations {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, " %d. %s  [score %.2f]\n", i+1, rec.Name, rec.Score)
		fmt.Fprintf(os.Stdout, "    Price: %s  |  %s\n", formatPrice(rec.Price), rec.Badge)
		fmt.Fprintf(os.Stdout, "    %s\n", truncate(rec.Why, 120))
	}

	if len(res.FollowUpQuestions) > 0 {
		fmt.Fprintln(os.Stdout)
		for _, q := range res.FollowUpQuestions {
			fmt.Fprintf(os.Stdout, " ? %s\n", q)
		}
	}
}

// formatPrice formats a major-unit price as "₦1,234,567.50".
func formatPrice(n float64) string {
	whole := int64(n)
	s := strconv.FormatInt(whole, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "₦" + strings.Join(parts, ",")

	if cents := int(math.Round((n - float64(whole)) * 100)); cents > 0 {
		out += fmt.Sprintf(".%02d", cents)
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
