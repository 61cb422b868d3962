package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sefyapp/sefy/internal/theme"
)

// Field describes one labeled text input in a Form.
type Field struct {
	Label       string
	Placeholder string
	Value       string
	CharLimit   int
}

// Form manages a column of labeled text inputs with tab/arrow focus cycling.
type Form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

// NewForm builds a form from field definitions. The first field gets focus.
func NewForm(fields []Field) Form {
	f := Form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}

	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.Placeholder
		ti.SetValue(field.Value)
		if field.CharLimit > 0 {
			ti.CharLimit = field.CharLimit
		}
		f.labels[i] = field.Label
		f.inputs[i] = ti
	}

	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Update routes key messages: tab/shift+tab/up/down cycle focus, everything
// else reaches the focused input.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.moveFocus(1), nil
		case "shift+tab", "up":
			return f.moveFocus(-1), nil
		}
	}

	if f.focus < 0 || f.focus >= len(f.inputs) {
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f Form) moveFocus(delta int) Form {
	if len(f.inputs) == 0 {
		return f
	}

	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

// Value returns the trimmed value of the field at index i.
func (f Form) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

// SetValue replaces the value of the field at index i.
func (f *Form) SetValue(i int, value string) {
	if i < 0 || i >= len(f.inputs) {
		return
	}
	f.inputs[i].SetValue(value)
}

// Len returns the number of fields.
func (f Form) Len() int {
	return len(f.inputs)
}

// View renders the labeled inputs.
func (f Form) View(styles theme.Styles) string {
	var b strings.Builder
	for i := range f.inputs {
		label := styles.Text.Render(f.labels[i])
		if i == f.focus {
			label = styles.Selected.Render(f.labels[i])
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n")
	}
	return b.String()
}
