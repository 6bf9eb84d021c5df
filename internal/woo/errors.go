package woo

import "fmt"

// UpstreamError reports a non-2xx response from the WooCommerce API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("woocommerce request failed (%d): %s", e.Status, e.Body)
}
