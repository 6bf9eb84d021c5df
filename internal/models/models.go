package models

// Badge indicates fulfilment speed, derived purely from stock status.
type Badge string

const (
	BadgeReadyStock Badge = "Ready Stock"
	BadgePreOrder   Badge = "Pre-Order"
)

// BadgeFor returns the badge for a stock state.
func BadgeFor(inStock bool) Badge {
	if inStock {
		return BadgeReadyStock
	}
	return BadgePreOrder
}

// Product is the canonical catalog product shape. Invariants: OriginalPrice
// is nil unless it is strictly greater than Price; Badge always agrees with
// InStock.
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Image            string   `json:"image"`
	Images           []string `json:"images"`
	Category         string   `json:"category"`
	Categories       []string `json:"categories"`
	Price            float64  `json:"price"`
	OriginalPrice    *float64 `json:"originalPrice"`
	Badge            Badge    `json:"badge"`
	Hot              bool     `json:"hot"`
	InStock          bool     `json:"inStock"`
}
