package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/stylesphere/stylesphere/internal/session"
)

// bootstrapDoneMsg signals the single catalog fetch finished, in
// success or failure. Either way the session transcript holds the
// right opening message.
type bootstrapDoneMsg struct{}

// turnDoneMsg carries the messages a conversation turn appended.
// appended is nil when the turn was discarded after a session reset.
type turnDoneMsg struct {
	appended []session.Message
}

// startBootstrap runs the one-shot catalog fetch. Failure is already
// folded into the transcript by the assistant, so the command never
// reports an error.
func (t *TUI) startBootstrap() tea.Cmd {
	return func() tea.Msg {
		_ = t.assistant.Bootstrap(t.ctx)
		return bootstrapDoneMsg{}
	}
}

// startTurn runs one conversation turn. The assistant swallows oracle
// failures into an apology message, so this command never reports an
// error either; the TUI just re-reads the transcript.
func (t *TUI) startTurn(text string) tea.Cmd {
	return func() tea.Msg {
		appended := t.assistant.Send(t.ctx, text)
		return turnDoneMsg{appended: appended}
	}
}
