package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/google/jsonschema-go/jsonschema"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/stylesphere/stylesphere/internal/catalog"
	"github.com/stylesphere/stylesphere/internal/log"
	"github.com/stylesphere/stylesphere/internal/session"
)

// ErrOracle wraps every failure of a conversation turn: transport,
// model, and malformed payloads alike. Callers check with errors.Is and
// treat any match as "no response this turn".
var ErrOracle = errors.New("oracle request failed")

// maxResponseBytes caps model output before JSON parsing (64 KB).
const maxResponseBytes = 64 * 1024

// responseSchema constrains the model to the Decision shape. Sent with
// every generation so the model emits JSON directly instead of prose.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"reply": {
			Type:        genai.TypeString,
			Description: "A friendly, conversational reply to the user's message.",
		},
		"action": {
			Type:        genai.TypeString,
			Description: "The action to perform. Must be one of: 'RECOMMEND_PRODUCTS', 'ADD_TO_CART', 'SUMMARIZE_CART', or 'NONE'.",
		},
		"productIds": {
			Type:        genai.TypeArray,
			Description: "An array of product IDs (as numbers) related to the action. For example, products to recommend or add to the cart. Can be an empty array if not applicable.",
			Items:       &genai.Schema{Type: genai.TypeNumber},
		},
	},
	Required: []string{"reply", "action", "productIds"},
}

// Config carries the dependencies and tuning for a Client.
type Config struct {
	Genkit         *genkit.Genkit
	Logger         log.Logger
	ModelName      string
	Temperature    float32
	CatalogLimit   int     // leading catalog slice shown to the model
	ConversionRate float64 // USD to INR rate quoted in the prompt
	RateLimiter    *rate.Limiter
}

func (c Config) validate() error {
	if c.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if strings.TrimSpace(c.ModelName) == "" {
		return errors.New("model name is required")
	}
	if c.CatalogLimit <= 0 {
		return errors.New("catalog limit must be positive")
	}
	if c.ConversionRate <= 0 {
		return errors.New("conversion rate must be positive")
	}
	return nil
}

// Client asks the conversation model for a Decision per turn.
// Safe for concurrent use; all fields are immutable after New.
type Client struct {
	g              *genkit.Genkit
	logger         log.Logger
	modelName      string
	temperature    float32
	catalogLimit   int
	conversionRate float64
	rateLimiter    *rate.Limiter
	schema         *jsonschema.Resolved
}

// New creates an oracle client.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("oracle config: %w", err)
	}

	// Default: 10 requests/sec sustained, burst of 30.
	rl := cfg.RateLimiter
	if rl == nil {
		rl = rate.NewLimiter(10, 30)
	}

	schema, err := jsonschema.For[Decision](nil)
	if err != nil {
		return nil, fmt.Errorf("deriving decision schema: %w", err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving decision schema: %w", err)
	}

	return &Client{
		g:              cfg.Genkit,
		logger:         cfg.Logger,
		modelName:      cfg.ModelName,
		temperature:    cfg.Temperature,
		catalogLimit:   cfg.CatalogLimit,
		conversionRate: cfg.ConversionRate,
		rateLimiter:    rl,
		schema:         resolved,
	}, nil
}

// Converse runs one conversation turn and returns the model's Decision.
//
// The catalog snapshot is truncated to the leading configured slice
// before serialization. History is sent in full, in order. Every
// failure wraps ErrOracle; there are no retries, a failed turn is
// terminal until the user resends.
//
// Converse does not interpret the Decision. Resolving product IDs and
// applying the action is the caller's merge policy.
func (c *Client) Converse(ctx context.Context, userMessage string, history []session.Message, snapshot *catalog.Snapshot) (*Decision, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %w", ErrOracle, err)
	}

	prompt, err := buildPrompt(userMessage, history, snapshot.Head(c.catalogLimit), c.conversionRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOracle, err)
	}

	resp, err := genkit.Generate(ctx, c.g,
		ai.WithModelName(c.modelName),
		ai.WithPrompt(prompt),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(c.temperature),
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: generating decision: %w", ErrOracle, err)
	}

	decision, err := c.parse(resp.Text())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("oracle decision",
		"action", decision.Action,
		"productIds", decision.ProductIDs,
	)
	return decision, nil
}

// parse decodes and structurally validates the model output.
func (c *Client) parse(text string) (*Decision, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrOracle)
	}
	if len(text) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response too large: %d bytes", ErrOracle, len(text))
	}

	// Structured output should arrive bare, but models occasionally
	// fence JSON anyway.
	text = stripCodeFences(text)

	var instance any
	if err := json.Unmarshal([]byte(text), &instance); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %w (raw: %q)", ErrOracle, err, truncate(text, 200))
	}
	if err := c.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: validating response: %w", ErrOracle, err)
	}

	var decision Decision
	if err := json.Unmarshal([]byte(text), &decision); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrOracle, err)
	}
	return &decision, nil
}

// stripCodeFences removes ```json ... ``` wrapping from model output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// truncate shortens s to at most n bytes for error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
