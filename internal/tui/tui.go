// Package tui provides the Bubble Tea terminal interface for the
// shopping assistant: a scrollable chat pane, a cart sidebar, and a
// checkout-success screen.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stylesphere/stylesphere/internal/assistant"
	"github.com/stylesphere/stylesphere/internal/session"
)

// State represents the TUI state machine.
type State int

// TUI state machine states.
const (
	StateLoading  State = iota // Bootstrap catalog fetch in flight
	StateInput                 // Awaiting user input
	StateThinking              // Oracle request in flight
	StateCheckout              // Checkout-success screen
)

// maxHistory bounds the input history ring.
const maxHistory = 100

// Layout constants.
const (
	cartWidth      = 34 // Cart sidebar width including borders
	separatorLines = 2  // Above and below input
	helpLines      = 1
	promptLines    = 1
	minViewport    = 3
)

// TUI is the Bubble Tea model for the shopping interface.
//
// Exactly one oracle request is in flight at any time: submits are
// ignored outside StateInput, and StateInput only returns when the
// turn's result message arrives.
type TUI struct {
	// Input
	input      textarea.Model
	history    []string
	historyIdx int

	// State
	state     State
	lastCtrlC time.Time

	// Transcript mirror, refreshed from the session after every event.
	messages []session.Message

	// Local status note rendered under the transcript. Never part of
	// the session, never sent to the oracle.
	status string

	spinner  spinner.Model
	viewport viewport.Model
	viewBuf  strings.Builder

	help help.Model
	keys keyMap

	// Dependencies
	assistant *assistant.Assistant
	ctx       context.Context
	ctxCancel context.CancelFunc

	// Display conversion, applied at render time only.
	conversionRate float64
	currencySymbol string

	width  int
	height int

	styles   Styles
	markdown *markdownRenderer
}

// Config carries TUI construction parameters.
type Config struct {
	Assistant      *assistant.Assistant
	ConversionRate float64 // catalog currency to display currency
	CurrencySymbol string
}

// New creates the TUI model.
//
// ctx MUST be the same context passed to tea.WithContext() so
// cancellation behaves consistently.
func New(ctx context.Context, cfg Config) (*TUI, error) {
	if cfg.Assistant == nil {
		return nil, errors.New("tui.New: assistant is required")
	}
	if ctx == nil {
		return nil, errors.New("tui.New: ctx is required")
	}
	if cfg.ConversionRate <= 0 {
		return nil, errors.New("tui.New: conversion rate must be positive")
	}
	if cfg.CurrencySymbol == "" {
		return nil, errors.New("tui.New: currency symbol is required")
	}

	ctx, cancel := context.WithCancel(ctx)

	ta := textarea.New()
	ta.Placeholder = "Ask for recommendations, or tell me about your style..."
	ta.SetHeight(1)
	ta.SetWidth(120)
	ta.MaxWidth = 0
	ta.ShowLineNumbers = false

	cleanStyle := textarea.StyleState{
		Base:        lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Prompt:      lipgloss.NewStyle(),
	}
	ta.SetStyles(textarea.Styles{
		Focused: cleanStyle,
		Blurred: cleanStyle,
	})
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Built-in viewport key handling is disabled; keys are routed
	// explicitly in handleKey to avoid conflicts with the textarea.
	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(20))
	vp.MouseWheelEnabled = true
	vp.SoftWrap = true
	vp.KeyMap = viewport.KeyMap{}

	return &TUI{
		assistant:      cfg.Assistant,
		ctx:            ctx,
		ctxCancel:      cancel,
		conversionRate: cfg.ConversionRate,
		currencySymbol: cfg.CurrencySymbol,
		input:          ta,
		spinner:        sp,
		viewport:       vp,
		help:           help.New(),
		keys:           newKeyMap(),
		styles:         DefaultStyles(),
		history:        make([]string, 0, maxHistory),
		markdown:       newMarkdownRenderer(80),
		width:          80,
		state:          StateLoading,
	}, nil
}

// Init implements tea.Model. The catalog bootstrap starts immediately;
// input unlocks when it finishes either way.
func (t *TUI) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		t.spinner.Tick,
		t.input.Focus(),
		t.startBootstrap(),
	)
}

// syncTranscript refreshes the local transcript mirror from the
// session.
func (t *TUI) syncTranscript() {
	t.messages = t.assistant.State().Messages()
}
