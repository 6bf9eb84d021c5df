package woo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kasuwa-dev/kasuwa/internal/models"
)

const placeholderImage = "https://placehold.co/600x750?text=No+Image"

// RawProduct covers both WooCommerce product payloads: the v3 REST shape
// (decimal price strings, stock_status) and the Store API shape (minor-unit
// integer strings under prices, is_in_stock).
type RawProduct struct {
	ID               json.Number   `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	Categories       []rawCategory `json:"categories"`
	Images           []rawImage    `json:"images"`
	Price            string        `json:"price"`
	RegularPrice     string        `json:"regular_price"`
	Prices           *rawPrices    `json:"prices"`
	StockStatus      string        `json:"stock_status"`
	IsInStock        *bool         `json:"is_in_stock"`
	Featured         bool          `json:"featured"`
}

type rawCategory struct {
	Name string `json:"name"`
}

type rawImage struct {
	Src string `json:"src"`
}

type rawPrices struct {
	Price             string `json:"price"`
	RegularPrice      string `json:"regular_price"`
	CurrencyMinorUnit *int   `json:"currency_minor_unit"`
}

// MapProduct normalizes a raw upstream record. It never fails: missing
// optional fields fall back to defaults (price 0, empty descriptions,
// placeholder image).
func MapProduct(raw RawProduct) models.Product {
	var categories []string
	for _, c := range raw.Categories {
		if c.Name != "" {
			categories = append(categories, c.Name)
		}
	}
	var images []string
	for _, img := range raw.Images {
		if img.Src != "" {
			images = append(images, img.Src)
		}
	}

	price, regular := mapPrices(raw)

	id := raw.ID.String()
	name := raw.Name
	if name == "" {
		name = "Untitled Product"
	}
	slug := raw.Slug
	if slug == "" {
		slug = id
	}
	image := placeholderImage
	if len(images) > 0 {
		image = images[0]
	}
	category := "General"
	if len(categories) > 0 {
		category = categories[0]
	}

	var originalPrice *float64
	if regular > 0 && regular > price {
		originalPrice = &regular
	}
	inStock := raw.StockStatus == "instock" || (raw.IsInStock != nil && *raw.IsInStock)

	return models.Product{
		ID:               id,
		Name:             name,
		Slug:             slug,
		Description:      raw.Description,
		ShortDescription: raw.ShortDescription,
		Image:            image,
		Images:           images,
		Category:         category,
		Categories:       categories,
		Price:            price,
		OriginalPrice:    originalPrice,
		Badge:            models.BadgeFor(inStock),
		Hot:              raw.Featured,
		InStock:          inStock,
	}
}

// mapPrices picks whichever price representation is present: Store API
// minor-unit integer strings (exponent defaults to 2), or v3 major-unit
// decimal strings.
func mapPrices(raw RawProduct) (price, regular float64) {
	if raw.Prices != nil {
		exponent := 2
		if raw.Prices.CurrencyMinorUnit != nil {
			exponent = *raw.Prices.CurrencyMinorUnit
		}
		divisor := math.Pow10(exponent)
		return toNumber(raw.Prices.Price) / divisor, toNumber(raw.Prices.RegularPrice) / divisor
	}
	return toNumber(raw.Price), toNumber(raw.RegularPrice)
}

func toNumber(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}
