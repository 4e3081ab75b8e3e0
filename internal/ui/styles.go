package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/icarus-itcs/lazylink/internal/platform"
)

var (
	// Primary colors
	linkBlue  = lipgloss.Color("#119EFF")
	linkCyan  = lipgloss.Color("#73B7F6")
	linkLight = lipgloss.Color("#ECEDEE")

	// Status colors
	successColor = lipgloss.Color("#4ADE80")
	errorColor   = lipgloss.Color("#F87171")
	warnColor    = lipgloss.Color("#FBBF24")
	mutedColor   = lipgloss.Color("#64748B")

	// Platform colors
	iosColor     = lipgloss.Color("#0A84FF")
	androidColor = lipgloss.Color("#34D399")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(linkBlue).
			Bold(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(linkCyan).
			Underline(true)

	onlineStyle = lipgloss.NewStyle().
			Foreground(successColor)

	offlineStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	failedStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// Badges
	iosBadge = lipgloss.NewStyle().
			Foreground(iosColor).
			Bold(true)

	androidBadge = lipgloss.NewStyle().
			Foreground(androidColor).
			Bold(true)

	bothBadge = lipgloss.NewStyle().
			Foreground(linkLight).
			Bold(true)
)

// ConfigureColor turns styling off when asked to, or when out is not a terminal.
func ConfigureColor(noColor bool, out *os.File) {
	if noColor || out == nil || !(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Logo returns the compact inline logo
func Logo() string {
	bolt := lipgloss.NewStyle().Foreground(linkBlue).Bold(true).Render("⚡")
	name := lipgloss.NewStyle().Foreground(linkLight).Bold(true).Render("lazylink")
	return bolt + " " + name
}

// StatusDot returns a colored dot
func StatusDot(online bool) string {
	if online {
		return onlineStyle.Render("●")
	}
	return offlineStyle.Render("○")
}

// PlatformBadge returns styled platform text
func PlatformBadge(p platform.Selection) string {
	switch p {
	case platform.IOS:
		return iosBadge.Render(p.Label())
	case platform.Android:
		return androidBadge.Render(p.Label())
	}
	return bothBadge.Render(p.Label())
}
