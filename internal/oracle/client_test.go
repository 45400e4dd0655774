package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/genkit"

	"github.com/stylesphere/stylesphere/internal/catalog"
	"github.com/stylesphere/stylesphere/internal/log"
	"github.com/stylesphere/stylesphere/internal/session"
	"github.com/stylesphere/stylesphere/internal/testutil"
)

func testSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot([]catalog.Product{
		{ID: 1, Title: "Blue Shirt", Price: 10, Category: "men's clothing", Description: "A crisp blue shirt"},
		{ID: 2, Title: "Red Dress", Price: 25.5, Category: "women's clothing", Description: "An elegant red dress"},
		{ID: 3, Title: "Gold Ring", Price: 168, Category: "jewelery", Description: "A simple gold band"},
	})
}

func newTestClient(t *testing.T, mock *testutil.MockModel) *Client {
	t.Helper()

	g := genkit.Init(context.Background())
	mock.Register(g)

	c, err := New(Config{
		Genkit:         g,
		Logger:         log.NewNop(),
		ModelName:      testutil.MockModelName,
		Temperature:    0.5,
		CatalogLimit:   2,
		ConversionRate: 80,
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	g := genkit.Init(context.Background())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nil genkit", func(c *Config) { c.Genkit = nil }},
		{"nil logger", func(c *Config) { c.Logger = nil }},
		{"empty model name", func(c *Config) { c.ModelName = " " }},
		{"zero catalog limit", func(c *Config) { c.CatalogLimit = 0 }},
		{"zero conversion rate", func(c *Config) { c.ConversionRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Config{
				Genkit:         g,
				Logger:         log.NewNop(),
				ModelName:      "mock/m",
				CatalogLimit:   20,
				ConversionRate: 80,
			}
			tt.mutate(&cfg)

			if _, err := New(cfg); err == nil {
				t.Error("New() = nil error, want error")
			}
		})
	}
}

func TestConverse_ParsesDecision(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockModel(testutil.DecisionJSON("Here you go!", "RECOMMEND_PRODUCTS", 1, 2))
	c := newTestClient(t, mock)

	d, err := c.Converse(context.Background(), "show me shirts", nil, testSnapshot())
	if err != nil {
		t.Fatalf("Converse() = %v", err)
	}
	if d.Reply != "Here you go!" {
		t.Errorf("Reply = %q, want %q", d.Reply, "Here you go!")
	}
	if d.Action != ActionRecommendProducts {
		t.Errorf("Action = %q, want %q", d.Action, ActionRecommendProducts)
	}
	if len(d.ProductIDs) != 2 || d.ProductIDs[0] != 1 || d.ProductIDs[1] != 2 {
		t.Errorf("ProductIDs = %v, want [1 2]", d.ProductIDs)
	}
}

func TestConverse_StripsCodeFences(t *testing.T) {
	t.Parallel()

	fenced := "```json\n" + testutil.DecisionJSON("Sure!", "NONE") + "\n```"
	mock := testutil.NewMockModel(fenced)
	c := newTestClient(t, mock)

	d, err := c.Converse(context.Background(), "hello", nil, testSnapshot())
	if err != nil {
		t.Fatalf("Converse() = %v", err)
	}
	if d.Action != ActionNone {
		t.Errorf("Action = %q, want %q", d.Action, ActionNone)
	}
}

func TestConverse_PromptContents(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockModel(testutil.DecisionJSON("ok", "NONE"))
	c := newTestClient(t, mock)

	history := []session.Message{
		session.NewMessage(session.SenderAssistant, session.WelcomeText),
		session.NewMessage(session.SenderUser, "I like minimalist style"),
	}

	if _, err := c.Converse(context.Background(), "what about rings?", history, testSnapshot()); err != nil {
		t.Fatalf("Converse() = %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("mock saw %d calls, want 1", len(calls))
	}
	prompt := calls[0]

	for _, want := range []string{
		"StyleSphere",
		"80 INR",
		"Blue Shirt",
		"Red Dress",
		"I like minimalist style",
		`"what about rings?"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// CatalogLimit is 2: the third product must be cut positionally.
	if strings.Contains(prompt, "Gold Ring") {
		t.Error("prompt contains product past the catalog limit")
	}
	// Image URLs and ratings stay out of the prompt.
	if strings.Contains(prompt, "image") {
		t.Error("prompt contains image field")
	}
}

func TestConverse_GenerationFailure(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockModel("")
	mock.FailWith(errors.New("model overloaded"))
	c := newTestClient(t, mock)

	if _, err := c.Converse(context.Background(), "hi", nil, testSnapshot()); !errors.Is(err, ErrOracle) {
		t.Errorf("Converse() = %v, want ErrOracle", err)
	}
}

func TestConverse_MalformedResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I'd recommend the blue shirt!"},
		{"missing required field", `{"reply":"hi","productIds":[]}`},
		{"wrong productIds type", `{"reply":"hi","action":"NONE","productIds":"none"}`},
		{"array instead of object", `[{"reply":"hi"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := testutil.NewMockModel(tt.response)
			c := newTestClient(t, mock)

			if _, err := c.Converse(context.Background(), "hi", nil, testSnapshot()); !errors.Is(err, ErrOracle) {
				t.Errorf("Converse() = %v, want ErrOracle", err)
			}
		})
	}
}

func TestConverse_UnknownActionPassesThrough(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockModel(testutil.DecisionJSON("hm", "DANCE", 1))
	c := newTestClient(t, mock)

	d, err := c.Converse(context.Background(), "hi", nil, testSnapshot())
	if err != nil {
		t.Fatalf("Converse() = %v", err)
	}
	if d.Action != Action("DANCE") {
		t.Errorf("Action = %q, want raw %q", d.Action, "DANCE")
	}
}

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
