package cart

import (
	"encoding/json"

	"github.com/shashiranjanraj/lumina/pkg/metrics"
)

// Decode turns a raw persisted cookie value into a cart of length n.
//
// It never fails outward; corrupt input maps to the empty cart:
//
//  1. Empty, unparseable, or not an array of numbers: empty cart.
//  2. Exactly n entries: returned verbatim, no per-element validation.
//  3. Shorter than n: right-padded with zeros. This repairs carts written
//     before the catalogue grew.
//  4. Longer than n: discarded, empty cart. Longer payloads are stale
//     cookies from a different catalogue; truncating would attribute
//     quantities to the wrong products.
func Decode(raw string, n int) Items {
	if raw == "" {
		return Zero(n)
	}

	// A nil slice survives Unmarshal when the payload is the literal null;
	// that is corrupt input, not a short cart.
	var parsed []int
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed == nil {
		metrics.CartRepairs.WithLabelValues("reset").Inc()
		return Zero(n)
	}

	switch {
	case len(parsed) == n:
		return Items(parsed)
	case len(parsed) < n:
		metrics.CartRepairs.WithLabelValues("padded").Inc()
		out := Zero(n)
		copy(out, parsed)
		return out
	default:
		metrics.CartRepairs.WithLabelValues("reset").Inc()
		return Zero(n)
	}
}

// Encode serializes the cart for cookie storage as a JSON array.
func Encode(c Items) string {
	if c == nil {
		c = Items{}
	}
	b, _ := json.Marshal([]int(c))
	return string(b)
}
