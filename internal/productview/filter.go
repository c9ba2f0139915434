package productview

import (
	"strconv"
	"strings"

	"ProductTrac/internal/productapi"
)

// Filter keeps the products whose name contains term case-insensitively or
// whose decimal id contains term. An empty term keeps everything.
func Filter(products []productapi.Product, term string) []productapi.Product {
	lower := strings.ToLower(term)

	out := make([]productapi.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strconv.FormatInt(p.ID, 10), term) {
			out = append(out, p)
		}
	}
	return out
}
