package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles derived from a palette. Screens render
// exclusively through these so a palette change restyles the whole tree.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// Styles derives the style set for the active palette.
func (m *Manager) Styles() Styles {
	return NewStyles(m.Active())
}

// NewStyles builds the style set for an arbitrary palette.
func NewStyles(p Palette) Styles {
	primary := lipgloss.Color(p.Primary)
	secondary := lipgloss.Color(p.Secondary)
	text := lipgloss.Color(p.Text)
	card := lipgloss.Color(p.Card)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(text).Background(primary).Padding(0, 1),
		Text:     lipgloss.NewStyle().Foreground(text),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Accent:   lipgloss.NewStyle().Foreground(secondary),
		Card:     lipgloss.NewStyle().Background(card).Foreground(text).Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}
