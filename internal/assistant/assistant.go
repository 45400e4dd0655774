// Package assistant orchestrates a shopping conversation turn by turn.
//
// It owns the control flow between the user, the session state, and the
// conversation oracle: append the user's message, ask the oracle for a
// decision, merge that decision into the session, append the assistant's
// message. The presentation layer only ever calls Bootstrap, Send, and
// the session accessors.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/stylesphere/stylesphere/internal/catalog"
	"github.com/stylesphere/stylesphere/internal/log"
	"github.com/stylesphere/stylesphere/internal/oracle"
	"github.com/stylesphere/stylesphere/internal/session"
)

// ApologyText is appended as the assistant's sole output when the
// oracle fails a turn. The failure itself is swallowed.
const ApologyText = "I'm sorry, I'm having trouble connecting right now. Please try again later."

// CatalogErrorText replaces the welcome message when the bootstrap
// catalog fetch fails. The session stays usable with an empty catalog.
const CatalogErrorText = "Sorry, I couldn't load the product catalog. Please restart to try again."

// Oracle is the conversation model dependency. Satisfied by
// [oracle.Client]; tests substitute a stub.
type Oracle interface {
	Converse(ctx context.Context, userMessage string, history []session.Message, snapshot *catalog.Snapshot) (*oracle.Decision, error)
}

// CatalogFetcher fetches the product list once at bootstrap.
// Satisfied by [catalog.Client].
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]catalog.Product, error)
}

// Config carries the assistant's dependencies.
type Config struct {
	Catalog CatalogFetcher
	Oracle  Oracle
	State   *session.State
	Logger  log.Logger
}

func (c Config) validate() error {
	if c.Catalog == nil {
		return errors.New("catalog fetcher is required")
	}
	if c.Oracle == nil {
		return errors.New("oracle is required")
	}
	if c.State == nil {
		return errors.New("session state is required")
	}
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// Assistant drives the conversation. Safe for concurrent use to the
// extent the session is; the TUI serializes turns anyway by keeping at
// most one request in flight.
type Assistant struct {
	catalog CatalogFetcher
	oracle  Oracle
	state   *session.State
	logger  log.Logger
}

// New creates an assistant.
func New(cfg Config) (*Assistant, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("assistant config: %w", err)
	}
	return &Assistant{
		catalog: cfg.Catalog,
		oracle:  cfg.Oracle,
		state:   cfg.State,
		logger:  cfg.Logger,
	}, nil
}

// State exposes the session for read accessors and cart mutations that
// bypass the oracle (quantity controls, checkout, reset).
func (a *Assistant) State() *session.State {
	return a.state
}

// Bootstrap performs the single catalog fetch that gates session
// readiness. One attempt, no retries: on failure the transcript is
// replaced with a single assistant-style error message and the session
// continues with an empty catalog.
func (a *Assistant) Bootstrap(ctx context.Context) error {
	products, err := a.catalog.Fetch(ctx)
	if err != nil {
		a.logger.Error("catalog bootstrap failed", "error", err)
		a.state.ReplaceTranscript(session.NewMessage(session.SenderAssistant, CatalogErrorText))
		return fmt.Errorf("bootstrapping catalog: %w", err)
	}

	a.state.SetCatalog(catalog.NewSnapshot(products))
	a.logger.Info("session ready", "products", len(products))
	return nil
}

// Send runs one conversation turn and returns the messages it appended
// to the transcript, in order.
//
// The user's message is appended before the oracle call and stays in
// the transcript no matter what happens after. An oracle failure
// appends the fixed apology instead of a reply. A reply that arrives
// after the session was reset is discarded entirely; the fresh session
// never sees messages from a previous life.
func (a *Assistant) Send(ctx context.Context, text string) []session.Message {
	history := a.state.Messages()
	gen := a.state.Generation()

	userMsg := session.NewMessage(session.SenderUser, text)
	a.state.Append(userMsg)

	decision, err := a.oracle.Converse(ctx, text, history, a.state.Catalog())

	if a.state.Generation() != gen {
		a.logger.Debug("discarding reply for reset session")
		return nil
	}

	if err != nil {
		a.logger.Warn("oracle turn failed", "error", err)
		apology := session.NewMessage(session.SenderAssistant, ApologyText)
		a.state.Append(apology)
		return []session.Message{userMsg, apology}
	}

	reply := a.merge(decision)
	a.state.Append(reply)
	return []session.Message{userMsg, reply}
}

// merge applies the oracle's decision to the session and builds the
// assistant message. Product IDs are resolved here, against the
// caller's snapshot, never trusted from the model.
func (a *Assistant) merge(decision *oracle.Decision) session.Message {
	msg := session.NewMessage(session.SenderAssistant, decision.Reply)

	switch decision.Action {
	case oracle.ActionRecommendProducts:
		wanted := make(map[int]bool, len(decision.ProductIDs))
		for _, id := range decision.ProductIDs {
			wanted[id] = true
		}
		// Attachments follow catalog order, not the model's; duplicate
		// IDs collapse and unresolvable IDs are dropped without
		// comment. The reply text stands on its own when nothing
		// resolves.
		var resolved []catalog.Product
		for _, p := range a.state.Catalog().Products() {
			if wanted[p.ID] {
				resolved = append(resolved, p)
			}
		}
		msg.Products = resolved

	case oracle.ActionAddToCart:
		if len(decision.ProductIDs) == 0 {
			break
		}
		// First ID only, even when the model sends several.
		if p, ok := a.state.AddToCart(decision.ProductIDs[0]); ok {
			msg.Text += fmt.Sprintf("\n\nI've added the %s to your cart!", p.Title)
		}

	case oracle.ActionSummarizeCart, oracle.ActionNone:
		// Reply text only, no state change.

	default:
		a.logger.Warn("unknown oracle action", "action", decision.Action)
	}

	return msg
}
