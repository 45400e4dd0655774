// Package session holds the in-memory state of one shopping session.
//
// The [State] controller owns the catalog snapshot, the cart, the chat
// transcript, and the checkout flag. All mutation goes through it; read
// accessors return copies. State is safe for concurrent use.
//
// Nothing here persists: a session lives and dies with the process.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/stylesphere/stylesphere/internal/catalog"
)

// Sender identifies who authored a transcript message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a single transcript entry. Identifiers are random UUIDs,
// so two messages created in the same instant never collide.
type Message struct {
	ID        uuid.UUID
	Sender    Sender
	Text      string
	Products  []catalog.Product
	CreatedAt time.Time
}

// NewMessage creates a transcript message with a fresh identifier.
func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.New(),
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// CartItem is a product plus how many units of it are in the cart.
// Quantity is always >= 1; dropping to zero removes the item instead.
type CartItem struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal is unit price times quantity, in the catalog's base currency.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
