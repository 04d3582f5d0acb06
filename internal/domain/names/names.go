// Package names centralizes the product-name normalization used to correlate
// sales, receipts and movements with the product table. The join key is
// free text, so every component must match through the same rule or rows
// silently fall out of aggregates.
package names

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize trims, collapses internal whitespace and case-folds a product
// name. Two names correlate iff their normalized forms are equal; substring
// matching is deliberately not supported.
// A Caser must not be shared across goroutines, so each call builds its own.
func Normalize(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// Match reports whether two product names refer to the same product.
func Match(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
