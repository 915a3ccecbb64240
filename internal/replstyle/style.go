// Package replstyle holds the lipgloss styles used to present glox's
// prompt, banner, and diagnostics in interactive mode. Grounded on
// abdidvp-openkraft's internal/adapters/outbound/tui styles (section
// headers, error/hint colors built from lipgloss.NewStyle()).
package replstyle

import "github.com/charmbracelet/lipgloss"

var (
	// Prompt is the dim "> " REPL prompt.
	Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Banner is the startup line (version + exit hint).
	Banner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	// StaticError styles a static (lexical/parse/resolution) diagnostic
	// line, written in file mode and prompt mode alike.
	StaticError = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	// RuntimeErrorStyle styles a runtime diagnostic line, kept visually
	// distinct from static errors.
	RuntimeErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// Hint is used for the low-emphasis "Ctrl-D to exit" banner subtext.
	Hint = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)
