package session

import (
	"sync"

	"github.com/stylesphere/stylesphere/internal/catalog"
)

// WelcomeText is the assistant greeting that opens every session.
const WelcomeText = "Hello! I'm your virtual shopping assistant. How can I help you find the perfect item today? You can ask me for recommendations, search for products, or tell me about your style."

// State is the session controller. It owns every piece of mutable
// session state so the presentation layer never mutates anything
// directly.
//
// The generation counter increments on every Reset. Callers capture the
// generation before a slow call and compare afterwards; a mismatch
// means the session was reset in the meantime and the result belongs to
// a session that no longer exists.
type State struct {
	mu          sync.RWMutex
	snapshot    *catalog.Snapshot
	cart        []CartItem
	transcript  []Message
	checkedOut  bool
	generation  uint64
	maxMessages int
}

// New creates a session state containing only the welcome message.
func New() *State {
	return &State{
		transcript: []Message{NewMessage(SenderAssistant, WelcomeText)},
	}
}

// SetCatalog installs the fetched catalog snapshot.
func (s *State) SetCatalog(snapshot *catalog.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

// Catalog returns the current catalog snapshot. May be nil before
// bootstrap completes or when the bootstrap fetch failed.
func (s *State) Catalog() *catalog.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// AddToCart adds one unit of the identified product. An identifier that
// does not resolve against the catalog snapshot is a no-op returning
// false. Adding an existing item increments its quantity; the cart
// never holds two entries for the same product.
func (s *State) AddToCart(id int) (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.snapshot.Resolve(id)
	if !ok {
		return catalog.Product{}, false
	}

	for i := range s.cart {
		if s.cart[i].Product.ID == id {
			s.cart[i].Quantity++
			return p, true
		}
	}
	s.cart = append(s.cart, CartItem{Product: p, Quantity: 1})
	return p, true
}

// UpdateQuantity sets the quantity of a cart entry to exactly n.
// n <= 0 removes the entry. Unknown identifiers are a no-op.
func (s *State) UpdateQuantity(id, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].Product.ID != id {
			continue
		}
		if n <= 0 {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
		} else {
			s.cart[i].Quantity = n
		}
		return
	}
}

// SetMaxMessages bounds the in-memory transcript. When the bound is
// exceeded the oldest messages are dropped. n <= 0 means unbounded.
func (s *State) SetMaxMessages(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxMessages = n
}

// Append adds a message to the end of the transcript. Transcript order
// is the only ordering guarantee the session makes.
func (s *State) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, msg)
	if s.maxMessages > 0 && len(s.transcript) > s.maxMessages {
		s.transcript = s.transcript[len(s.transcript)-s.maxMessages:]
	}
}

// ReplaceTranscript discards the transcript and installs msg as its
// sole entry. Used when bootstrap fails and the error message takes the
// welcome message's place.
func (s *State) ReplaceTranscript(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = []Message{msg}
}

// Reset returns the session to its initial shape: empty cart, the
// welcome message as the sole transcript entry, checkout flag cleared.
// The catalog snapshot survives. Bumps the generation so in-flight
// oracle replies from before the reset are discarded on arrival.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.transcript = []Message{NewMessage(SenderAssistant, WelcomeText)}
	s.checkedOut = false
	s.generation++
}

// CompleteCheckout flips the checkout flag. There is no settlement
// call; the state is terminal until Reset.
func (s *State) CompleteCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkedOut = true
}

// CheckedOut reports whether the session has completed checkout.
func (s *State) CheckedOut() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkedOut
}

// Generation returns the current reset generation.
func (s *State) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Messages returns a copy of the transcript in order.
func (s *State) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// CartItems returns a copy of the cart in insertion order.
func (s *State) CartItems() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartCount returns the total number of units across all cart entries.
func (s *State) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.cart {
		n += item.Quantity
	}
	return n
}

// CartTotal sums unit price times quantity across the cart, in the
// catalog's base currency. Display conversion is presentation-only.
func (s *State) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.cart {
		total += item.Subtotal()
	}
	return total
}
