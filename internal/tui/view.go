package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stylesphere/stylesphere/internal/catalog"
	"github.com/stylesphere/stylesphere/internal/session"
)

// View implements tea.Model.
func (t *TUI) View() tea.View {
	if t.state == StateCheckout {
		return t.checkoutView()
	}

	t.viewBuf.Reset()

	// Chat pane beside the cart sidebar.
	chat := t.viewport.View()
	cart := t.renderCart()
	_, _ = t.viewBuf.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chat, " ", cart))
	_, _ = t.viewBuf.WriteString("\n")

	_, _ = t.viewBuf.WriteString(t.renderSeparator())
	_, _ = t.viewBuf.WriteString("\n")

	_, _ = t.viewBuf.WriteString(t.styles.Prompt.Render("> "))
	_, _ = t.viewBuf.WriteString(t.input.View())
	_, _ = t.viewBuf.WriteString("\n")

	_, _ = t.viewBuf.WriteString(t.renderSeparator())
	_, _ = t.viewBuf.WriteString("\n")

	_, _ = t.viewBuf.WriteString(t.renderStatusBar())

	v := tea.NewView(t.viewBuf.String())
	v.AltScreen = true
	return v
}

// checkoutView renders the full-screen checkout-success state.
func (t *TUI) checkoutView() tea.View {
	var b strings.Builder
	_, _ = b.WriteString(t.styles.Success.Render("✔ Checkout Complete!"))
	_, _ = b.WriteString("\n\n")
	_, _ = b.WriteString("Thank you for your purchase. Your order has been placed successfully.\n\n")
	_, _ = b.WriteString(t.styles.System.Render("Press Enter to start a new shopping session, Ctrl+D to exit."))

	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(brandIndigo)).
		Padding(1, 4).
		Render(b.String())

	canvas := lipgloss.Place(t.width, t.height, lipgloss.Center, lipgloss.Center, content)
	v := tea.NewView(canvas)
	v.AltScreen = true
	return v
}

// rebuildViewportContent reconstructs the chat pane from the transcript
// mirror and current state.
func (t *TUI) rebuildViewportContent() {
	var b strings.Builder

	_, _ = b.WriteString(t.styles.RenderBanner())
	_, _ = b.WriteString("\n")
	_, _ = b.WriteString(t.styles.RenderWelcomeTips())
	_, _ = b.WriteString("\n")

	for _, msg := range t.messages {
		t.renderMessage(&b, msg)
	}

	if t.status != "" {
		_, _ = b.WriteString(t.styles.System.Render(t.status))
		_, _ = b.WriteString("\n\n")
	}

	switch t.state {
	case StateLoading:
		_, _ = b.WriteString(t.spinner.View())
		_, _ = b.WriteString(" Loading the catalog...\n\n")
	case StateThinking:
		_, _ = b.WriteString(t.spinner.View())
		_, _ = b.WriteString(" Thinking...\n\n")
	}

	t.viewport.SetContent(b.String())
}

func (t *TUI) renderMessage(b *strings.Builder, msg session.Message) {
	switch msg.Sender {
	case session.SenderUser:
		_, _ = b.WriteString(t.styles.User.Render("You> "))
		_, _ = b.WriteString(msg.Text)
	case session.SenderAssistant:
		_, _ = b.WriteString(t.styles.Assistant.Render("StyleSphere> "))
		_, _ = b.WriteString(t.markdown.Render(msg.Text))
	}
	_, _ = b.WriteString("\n")

	// Product cards under recommending messages.
	for _, p := range msg.Products {
		_, _ = b.WriteString(t.renderProductCard(p))
		_, _ = b.WriteString("\n")
	}
	_, _ = b.WriteString("\n")
}

// renderProductCard renders one recommended product: title, category,
// rating, and the display-currency price.
func (t *TUI) renderProductCard(p catalog.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", p.Title, t.styles.Price.Render(t.displayPrice(p.Price)))
	fmt.Fprintf(&b, "%s · ★ %.1f (%d)", p.Category, p.Rating.Rate, p.Rating.Count)
	return t.styles.ProductCard.Render(b.String())
}

// renderCart renders the cart sidebar.
func (t *TUI) renderCart() string {
	items := t.assistant.State().CartItems()

	var b strings.Builder
	_, _ = b.WriteString(t.styles.CartTitle.Render("Your Cart"))
	_, _ = b.WriteString("\n\n")

	if len(items) == 0 {
		_, _ = b.WriteString(t.styles.CartEmpty.Render("Your cart is empty."))
	} else {
		for _, item := range items {
			fmt.Fprintf(&b, "#%d %s\n", item.Product.ID, truncateTitle(item.Product.Title, cartWidth-8))
			fmt.Fprintf(&b, "   %d × %s\n", item.Quantity, t.styles.Price.Render(t.displayPrice(item.Product.Price)))
		}
		_, _ = b.WriteString("\n")
		fmt.Fprintf(&b, "Total  %s\n", t.styles.Price.Render(t.displayPrice(t.assistant.State().CartTotal())))
		_, _ = b.WriteString(t.styles.System.Render("/checkout to complete"))
	}

	return t.styles.CartBorder.Width(cartWidth - 2).Render(b.String())
}

// displayPrice converts a base-currency amount for display. Storage
// stays in the catalog currency; only rendering converts.
func (t *TUI) displayPrice(usd float64) string {
	return fmt.Sprintf("%s%.2f", t.currencySymbol, usd*t.conversionRate)
}

func truncateTitle(s string, n int) string {
	if n < 4 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// renderSeparator returns a horizontal line separator.
func (t *TUI) renderSeparator() string {
	width := t.width
	if width <= 0 {
		width = 80
	}
	return t.styles.Separator.Render(strings.Repeat("─", width))
}

// renderStatusBar returns state-appropriate keyboard shortcut help.
func (t *TUI) renderStatusBar() string {
	var bindings []key.Binding
	switch t.state {
	case StateInput:
		bindings = []key.Binding{
			t.keys.Submit, t.keys.NewLine, t.keys.History,
			t.keys.Cancel, t.keys.Quit, t.keys.ScrollUp,
		}
	case StateLoading, StateThinking:
		bindings = []key.Binding{
			t.keys.ScrollUp, t.keys.ScrollDown, t.keys.Quit,
		}
	case StateCheckout:
		bindings = []key.Binding{t.keys.NewSession, t.keys.Quit}
	}
	return t.help.ShortHelpView(bindings)
}
