package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Indigo accent matching the StyleSphere brand.
const brandIndigo = "#6366F1"

// StyleSphere banner (filled block style).
var bannerArt = []string{
	"  ███████╗████████╗██╗   ██╗██╗     ███████╗███████╗██████╗ ██╗  ██╗███████╗██████╗ ███████╗",
	"  ██╔════╝╚══██╔══╝╚██╗ ██╔╝██║     ██╔════╝██╔════╝██╔══██╗██║  ██║██╔════╝██╔══██╗██╔════╝",
	"  ███████╗   ██║    ╚████╔╝ ██║     █████╗  ███████╗██████╔╝███████║█████╗  ██████╔╝█████╗  ",
	"  ╚════██║   ██║     ╚██╔╝  ██║     ██╔══╝  ╚════██║██╔═══╝ ██╔══██║██╔══╝  ██╔══██╗██╔══╝  ",
	"  ███████║   ██║      ██║   ███████╗███████╗███████║██║     ██║  ██║███████╗██║  ██║███████╗",
	"  ╚══════╝   ╚═╝      ╚═╝   ╚══════╝╚══════╝╚══════╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚══════╝",
}

// Styles contains all lipgloss styles for the TUI.
type Styles struct {
	Banner      lipgloss.Style
	User        lipgloss.Style
	Assistant   lipgloss.Style
	System      lipgloss.Style
	Tips        lipgloss.Style
	Error       lipgloss.Style
	Prompt      lipgloss.Style
	Separator   lipgloss.Style
	StatusBar   lipgloss.Style
	CartBorder  lipgloss.Style
	CartTitle   lipgloss.Style
	CartEmpty   lipgloss.Style
	Price       lipgloss.Style
	ProductCard lipgloss.Style
	Success     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Banner:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(brandIndigo)),
		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		System:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		Tips:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		CartBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		CartTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(brandIndigo)),
		CartEmpty: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		Price:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(brandIndigo)),
		ProductCard: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(brandIndigo)).
			PaddingLeft(1),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

// RenderBanner returns the StyleSphere banner as a styled string.
func (s Styles) RenderBanner() string {
	var b strings.Builder
	for _, line := range bannerArt {
		_, _ = b.WriteString(s.Banner.Render(line))
		_, _ = b.WriteString("\n")
	}
	return b.String()
}

// welcomeTips contains getting started tips displayed under the banner.
var welcomeTips = []string{
	"Tips for getting started:",
	"  • Describe your style or budget and ask for recommendations",
	"  • Ask me to add an item to your cart when you like it",
	"  • Use /qty and /remove to adjust the cart, /checkout when done",
	"  • Use /help for all commands, Ctrl+D to exit",
}

// RenderWelcomeTips returns the styled tips block.
func (s Styles) RenderWelcomeTips() string {
	var b strings.Builder
	for _, tip := range welcomeTips {
		_, _ = b.WriteString(s.Tips.Render(tip))
		_, _ = b.WriteString("\n")
	}
	return b.String()
}
