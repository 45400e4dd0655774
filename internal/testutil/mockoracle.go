// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// MockModelName is the name the mock registers under.
const MockModelName = "mock/shopping-model"

// MockModel provides deterministic conversation-model responses for
// testing. It matches the prompt against registered patterns and
// returns the corresponding canned JSON decision.
//
// Thread-safe for concurrent use.
type MockModel struct {
	mu        sync.Mutex
	responses []mockRule
	fallback  string
	err       error
	calls     []string
}

type mockRule struct {
	pattern  string // substring match in the prompt, case-insensitive
	response string
}

// NewMockModel creates a mock model with the given fallback response.
// The fallback is returned when no pattern matches.
func NewMockModel(fallback string) *MockModel {
	return &MockModel{fallback: fallback}
}

// AddResponse registers a pattern-response pair. Patterns are checked
// in registration order; first match wins.
func (m *MockModel) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockRule{
		pattern:  strings.ToLower(pattern),
		response: response,
	})
}

// FailWith makes every subsequent generation return err.
// Pass nil to restore normal behavior.
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns a copy of every prompt the mock has seen.
func (m *MockModel) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.calls))
	copy(cp, m.calls)
	return cp
}

// Register registers the mock as a Genkit model.
func (m *MockModel) Register(g *genkit.Genkit) ai.Model {
	return genkit.DefineModel(g, MockModelName, &ai.ModelOptions{
		Label: "Mock Shopping Model",
		Supports: &ai.ModelSupports{
			Multiturn:  true,
			SystemRole: true,
		},
	}, m.generate)
}

func (m *MockModel) generate(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
	var prompt string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == ai.RoleUser {
			prompt = req.Messages[i].Text()
			break
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, prompt)
	if m.err != nil {
		err := m.err
		m.mu.Unlock()
		return nil, err
	}

	responseText := m.fallback
	lower := strings.ToLower(prompt)
	for i := range m.responses {
		if strings.Contains(lower, m.responses[i].pattern) {
			responseText = m.responses[i].response
			break
		}
	}
	m.mu.Unlock()

	return &ai.ModelResponse{
		Request: req,
		Message: &ai.Message{
			Role:    ai.RoleModel,
			Content: []*ai.Part{ai.NewTextPart(responseText)},
		},
	}, nil
}

// DecisionJSON builds a canned structured-output payload for the mock.
func DecisionJSON(reply, action string, productIDs ...int) string {
	if productIDs == nil {
		productIDs = []int{}
	}
	payload := map[string]any{
		"reply":      reply,
		"action":     action,
		"productIds": productIDs,
	}
	out, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return string(out)
}
