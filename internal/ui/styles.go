package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/chmouel/lazyscm/internal/theme"
)

// Severity of a notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) prefix() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Styles renders notices for one theme.
type Styles struct {
	info    lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	modal   lipgloss.Style
	plain   bool
}

// NewStyles derives notice styles from thm. Plain styles render no escape
// sequences.
func NewStyles(thm *theme.Theme, plain bool) Styles {
	if plain {
		return Styles{plain: true}
	}
	return Styles{
		info:    lipgloss.NewStyle().Foreground(thm.Info).Bold(true),
		warning: lipgloss.NewStyle().Foreground(thm.Warn).Bold(true),
		err:     lipgloss.NewStyle().Foreground(thm.Error).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(thm.Muted),
		accent:  lipgloss.NewStyle().Foreground(thm.Accent),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(thm.Border).
			Padding(0, 1),
	}
}

func (s Styles) label(sev Severity) string {
	text := sev.prefix() + ":"
	if s.plain {
		return text
	}
	switch sev {
	case SeverityWarning:
		return s.warning.Render(text)
	case SeverityError:
		return s.err.Render(text)
	default:
		return s.info.Render(text)
	}
}

// Notice renders message wrapped to width, boxed when modal.
func (s Styles) Notice(sev Severity, message string, width int, modal bool) string {
	if width <= 0 {
		width = 80
	}
	prefix := s.label(sev) + " "
	body := wordwrap.String(message, max(width-lipgloss.Width(prefix)-4, 20))
	body = strings.ReplaceAll(body, "\n", "\n"+strings.Repeat(" ", lipgloss.Width(prefix)))
	out := prefix + body
	if modal && !s.plain {
		out = s.modal.Render(out)
	}
	return out
}

// Muted renders secondary text.
func (s Styles) Muted(text string) string {
	if s.plain {
		return text
	}
	return s.muted.Render(text)
}

// Accent renders highlighted text.
func (s Styles) Accent(text string) string {
	if s.plain {
		return text
	}
	return s.accent.Render(text)
}
