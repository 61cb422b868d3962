package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sefyapp/sefy/internal/theme"
)

// MenuItem is one selectable entry in a Menu.
type MenuItem struct {
	Title string
	Desc  string
}

// Menu is a vertical cursor-driven list used by the home screens.
type Menu struct {
	items  []MenuItem
	cursor int
}

// NewMenu builds a menu over the given items.
func NewMenu(items []MenuItem) Menu {
	return Menu{items: items}
}

// Update moves the cursor. The caller handles enter.
func (m Menu) Update(msg tea.Msg) Menu {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	}
	return m
}

// Cursor returns the selected index.
func (m Menu) Cursor() int {
	return m.cursor
}

// Selected returns the item under the cursor.
func (m Menu) Selected() MenuItem {
	if len(m.items) == 0 {
		return MenuItem{}
	}
	return m.items[m.cursor]
}

// View renders the menu with the given styles.
func (m Menu) View(styles theme.Styles) string {
	var b strings.Builder
	for i, item := range m.items {
		prefix := "  "
		title := styles.Text.Render(item.Title)
		if i == m.cursor {
			prefix = styles.Selected.Render("> ")
			title = styles.Selected.Render(item.Title)
		}
		line := prefix + title
		if item.Desc != "" {
			line += "  " + styles.Muted.Render(item.Desc)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
