// Package catalog fetches and indexes the remote product catalog.
//
// The catalog is fetched once at session bootstrap, best-effort: no
// retries, no caching. A fetched list is wrapped in a Snapshot, an
// immutable indexed view used to resolve product identifiers for the
// rest of the session.
package catalog

// Product is a single catalog entry. Immutable once fetched; prices
// are in the catalog's base currency (USD). Display conversion happens
// in the presentation layer only.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Rating is the aggregate customer rating of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Snapshot is an immutable indexed view over a fetched product list.
// The zero value is an empty, usable snapshot (the shopping session
// stays technically usable when the bootstrap fetch fails).
type Snapshot struct {
	products []Product
	byID     map[int]Product
}

// NewSnapshot indexes products by identifier. Input order is preserved.
func NewSnapshot(products []Product) *Snapshot {
	s := &Snapshot{
		products: make([]Product, len(products)),
		byID:     make(map[int]Product, len(products)),
	}
	copy(s.products, products)
	for _, p := range s.products {
		s.byID[p.ID] = p
	}
	return s
}

// Resolve looks up a product by identifier.
func (s *Snapshot) Resolve(id int) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	p, ok := s.byID[id]
	return p, ok
}

// Head returns the first n products in catalog order.
// This is a positional truncation, not a relevance ranking: items past
// position n are never shown to the oracle.
func (s *Snapshot) Head(n int) []Product {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.products) {
		n = len(s.products)
	}
	out := make([]Product, n)
	copy(out, s.products[:n])
	return out
}

// Products returns a copy of the full product list in catalog order.
func (s *Snapshot) Products() []Product {
	if s == nil {
		return nil
	}
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len reports the number of products in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}
