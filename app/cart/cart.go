// Package cart implements the shopping cart: a fixed-length quantity array
// persisted in a browser cookie.
//
// The cart for a catalogue of N products is a slice of N non-negative
// integers where Items[id-1] holds the quantity of product id. Quantity 0
// means "not in cart"; absence and zero are the same state. Every mutation
// returns a fresh slice; nothing here mutates its input.
//
// The client holds no authoritative state: each request carries the cookie,
// the handler decodes it, applies one mutation, and writes the new value
// back. Two tabs mutating concurrently are last-write-wins by design.
package cart

// Items is the positional quantity array. Items[id-1] = quantity of product id.
type Items []int

// Zero returns the empty cart for a catalogue of n products.
func Zero(n int) Items {
	return make(Items, n)
}

// Quantity returns the quantity of product id, or 0 when id is out of range.
func (c Items) Quantity(id int) int {
	if id < 1 || id > len(c) {
		return 0
	}
	return c[id-1]
}

// Contains reports whether product id is in the cart with quantity > 0.
func (c Items) Contains(id int) bool {
	return c.Quantity(id) > 0
}

// IsEmpty reports whether every slot is zero.
func (c Items) IsEmpty() bool {
	for _, q := range c {
		if q > 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of units across all products.
func (c Items) Count() int {
	total := 0
	for _, q := range c {
		total += q
	}
	return total
}

// clone returns a copy of c so mutations never alias the input.
func (c Items) clone() Items {
	out := make(Items, len(c))
	copy(out, c)
	return out
}

// Increase returns a new cart with one more unit of product id.
// An out-of-range id returns the cart unchanged.
func (c Items) Increase(id int) Items {
	if id < 1 || id > len(c) {
		return c
	}
	out := c.clone()
	out[id-1]++
	return out
}

// Decrease returns a new cart with one less unit of product id,
// flooring at zero. An out-of-range id returns the cart unchanged.
func (c Items) Decrease(id int) Items {
	if id < 1 || id > len(c) {
		return c
	}
	out := c.clone()
	if out[id-1] > 0 {
		out[id-1]--
	}
	return out
}

// SetQuantity returns a new cart with product id's slot set to n.
// n <= 0 sets the slot to zero, which is the same as Delete. There is no
// upper clamp. An out-of-range id returns the cart unchanged.
func (c Items) SetQuantity(id, n int) Items {
	if id < 1 || id > len(c) {
		return c
	}
	out := c.clone()
	if n <= 0 {
		out[id-1] = 0
	} else {
		out[id-1] = n
	}
	return out
}

// Delete returns a new cart with product id removed.
func (c Items) Delete(id int) Items {
	return c.SetQuantity(id, 0)
}

// Clear returns the empty cart of the same length.
// Used after a successful payment capture.
func (c Items) Clear() Items {
	return Zero(len(c))
}
