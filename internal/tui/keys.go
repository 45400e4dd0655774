package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Slash command constants.
const (
	cmdHelp     = "/help"
	cmdCheckout = "/checkout"
	cmdNew      = "/new"
	cmdAdd      = "/add"
	cmdQty      = "/qty"
	cmdRemove   = "/remove"
	cmdExit     = "/exit"
	cmdQuit     = "/quit"
)

// keyMap holds key bindings for help bar display.
type keyMap struct {
	Submit     key.Binding
	NewLine    key.Binding
	History    key.Binding
	Cancel     key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	NewSession key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		NewLine:    key.NewBinding(key.WithKeys("shift+enter"), key.WithHelp("s+enter", "newline")),
		History:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "history")),
		Cancel:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "clear/quit")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "exit")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		NewSession: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new session")),
	}
}

func (t *TUI) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.Key()

	if k.Mod&tea.ModCtrl != 0 {
		switch k.Code {
		case 'c':
			return t.handleCtrlC()
		case 'd':
			return t, t.cleanup()
		}
	}

	// The checkout screen accepts only "new session" or exit.
	if t.state == StateCheckout {
		if k.Code == tea.KeyEnter {
			t.assistant.State().Reset()
			t.syncTranscript()
			t.state = StateInput
			t.input.Reset()
			t.rebuildViewportContent()
			t.viewport.GotoBottom()
			return t, t.input.Focus()
		}
		return t, nil
	}

	switch k.Code {
	case tea.KeyEnter:
		// Submits are ignored while a request is in flight; one
		// oracle call per session at a time.
		if t.state == StateInput && k.Mod&tea.ModShift == 0 {
			return t.handleSubmit()
		}

	case tea.KeyUp:
		if t.state == StateInput && t.input.Line() == 0 {
			return t.navigateHistory(-1)
		}

	case tea.KeyDown:
		if t.state == StateInput && t.input.Line() == t.input.LineCount()-1 {
			return t.navigateHistory(1)
		}

	case tea.KeyPgUp:
		t.viewport.PageUp()
		return t, nil

	case tea.KeyPgDown:
		t.viewport.PageDown()
		return t, nil
	}

	// Typing is allowed even while thinking; only submit is gated.
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TUI) handleCtrlC() (tea.Model, tea.Cmd) {
	now := time.Now()

	// Double Ctrl+C within 1 second quits.
	if now.Sub(t.lastCtrlC) < time.Second {
		return t, t.cleanup()
	}
	t.lastCtrlC = now

	if t.state == StateInput {
		t.input.Reset()
	}
	return t, nil
}

func (t *TUI) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(t.input.Value())
	if text == "" {
		return t, nil
	}

	if strings.HasPrefix(text, "/") {
		return t.handleSlashCommand(text)
	}

	t.history = append(t.history, text)
	if len(t.history) > maxHistory {
		t.history = t.history[len(t.history)-maxHistory:]
	}
	t.historyIdx = len(t.history)

	t.input.Reset()
	t.state = StateThinking

	return t, tea.Batch(
		t.spinner.Tick,
		t.startTurn(text),
	)
}

func (t *TUI) handleSlashCommand(cmd string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(cmd)

	switch fields[0] {
	case cmdHelp:
		t.setStatus("Commands: /add <id>, /checkout, /new, /qty <id> <n>, /remove <id>, /exit\n" +
			"Shortcuts: Enter send · Shift+Enter newline · Ctrl+C clear · Ctrl+D exit · PgUp/PgDn scroll")

	case cmdCheckout:
		if len(t.assistant.State().CartItems()) == 0 {
			t.setStatus("Your cart is empty.")
			break
		}
		t.assistant.State().CompleteCheckout()
		t.state = StateCheckout

	case cmdNew:
		t.assistant.State().Reset()
		t.syncTranscript()
		t.rebuildViewportContent()
		t.viewport.GotoBottom()

	case cmdAdd:
		t.handleAdd(fields)

	case cmdQty:
		t.handleQty(fields)

	case cmdRemove:
		if len(fields) != 2 {
			t.setStatus("Usage: /remove <product-id>")
			break
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			t.setStatus("Usage: /remove <product-id>")
			break
		}
		t.assistant.State().UpdateQuantity(id, 0)

	case cmdExit, cmdQuit:
		return t, t.cleanup()

	default:
		t.setStatus("Unknown command: " + fields[0])
	}

	t.input.Reset()
	return t, nil
}

// handleAdd puts a recommended product in the cart directly, without a
// conversation turn.
func (t *TUI) handleAdd(fields []string) {
	if len(fields) != 2 {
		t.setStatus("Usage: /add <product-id>")
		return
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		t.setStatus("Usage: /add <product-id>")
		return
	}
	p, ok := t.assistant.State().AddToCart(id)
	if !ok {
		t.setStatus(fmt.Sprintf("No product with ID %d in the catalog.", id))
		return
	}
	t.setStatus(fmt.Sprintf("Added %s to your cart.", p.Title))
}

func (t *TUI) handleQty(fields []string) {
	if len(fields) != 3 {
		t.setStatus("Usage: /qty <product-id> <quantity>")
		return
	}
	id, err1 := strconv.Atoi(fields[1])
	n, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil {
		t.setStatus("Usage: /qty <product-id> <quantity>")
		return
	}
	t.assistant.State().UpdateQuantity(id, n)
	if n <= 0 {
		t.setStatus(fmt.Sprintf("Removed product %d from your cart.", id))
	}
}

// setStatus shows a local system note in the chat pane. These never
// enter the session transcript and are never sent to the oracle.
func (t *TUI) setStatus(text string) {
	t.status = text
	t.rebuildViewportContent()
	t.viewport.GotoBottom()
}

func (t *TUI) navigateHistory(delta int) (tea.Model, tea.Cmd) {
	if len(t.history) == 0 {
		return t, nil
	}

	t.historyIdx += delta
	if t.historyIdx < 0 {
		t.historyIdx = 0
	}
	if t.historyIdx > len(t.history) {
		t.historyIdx = len(t.history)
	}

	if t.historyIdx == len(t.history) {
		t.input.SetValue("")
	} else {
		t.input.SetValue(t.history[t.historyIdx])
		t.input.CursorEnd()
	}

	return t, nil
}

// cleanup cancels the app context and quits.
func (t *TUI) cleanup() tea.Cmd {
	if t.ctxCancel != nil {
		t.ctxCancel()
		t.ctxCancel = nil
	}
	return tea.Quit
}
