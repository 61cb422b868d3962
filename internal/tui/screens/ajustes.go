package screens

import (
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/theme"
	"github.com/sefyapp/sefy/internal/tui/components"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var themeNames = []theme.Name{theme.Light, theme.Dark, theme.Custom}

func themeLabel(name theme.Name) string {
	switch name {
	case theme.Light:
		return "Claro"
	case theme.Dark:
		return "Oscuro"
	default:
		return "Personalizado"
	}
}

// Ajustes lets the user switch themes and tune the custom palette.
type Ajustes struct {
	ctx     *app.Context
	cursor  int
	editing bool
	form    components.Form
	alert   components.Alert
}

// NewAjustes builds the theme settings screen.
func NewAjustes(ctx *app.Context) Ajustes {
	cursor := 0
	for i, name := range themeNames {
		if name == ctx.Theme.ActiveName() {
			cursor = i
		}
	}
	return Ajustes{ctx: ctx, cursor: cursor}
}

func (m Ajustes) Init() tea.Cmd {
	return nil
}

func (m Ajustes) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateEditing(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Pop()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(themeNames)-1 {
				m.cursor++
			}
		case "enter":
			m.ctx.Theme.Select(themeNames[m.cursor])
			m.alert = components.NewSuccessAlert("Tema aplicado: " + themeLabel(themeNames[m.cursor]) + ".")
		case "e":
			m.editing = true
			m.alert.Clear()
			m.form = newPaletteForm(m.ctx.Theme.CustomPalette())
		}
	}

	return m, nil
}

func newPaletteForm(p theme.Palette) components.Form {
	fields := make([]components.Field, len(theme.Roles))
	for i, role := range theme.Roles {
		fields[i] = components.Field{
			Label:       paletteLabel(role),
			Placeholder: "#RRGGBB",
			Value:       p.Color(role),
			CharLimit:   7,
		}
	}
	return components.NewForm(fields)
}

func paletteLabel(role theme.Role) string {
	switch role {
	case theme.RoleBackground:
		return "Fondo"
	case theme.RoleText:
		return "Texto"
	case theme.RolePrimary:
		return "Primario"
	case theme.RoleSecondary:
		return "Secundario"
	case theme.RoleCard:
		return "Tarjeta"
	default:
		return string(role)
	}
}

func (m Ajustes) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.editing = false
			return m, nil
		case "enter":
			return m.savePalette()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Ajustes) savePalette() (tea.Model, tea.Cmd) {
	overrides := make(map[theme.Role]string, len(theme.Roles))
	for i, role := range theme.Roles {
		value := m.form.Value(i)
		if value == "" {
			continue
		}
		if !hexColorRe.MatchString(value) {
			m.alert = components.NewErrorAlert("Color inválido para " + paletteLabel(role) + ": usá #RRGGBB.")
			return m, nil
		}
		overrides[role] = value
	}

	m.ctx.Theme.UpdateCustom(overrides)
	m.editing = false
	m.cursor = len(themeNames) - 1
	m.alert = components.NewSuccessAlert("Paleta personalizada guardada.")
	return m, nil
}

func (m Ajustes) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Ajustes de Tema"), ""}

	if m.editing {
		sections = append(sections, m.form.View(styles))
		if alert := m.alert.View(styles); alert != "" {
			sections = append(sections, alert)
		}
		sections = append(sections, styles.Help.Render("enter: guardar paleta • esc: cancelar"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	active := m.ctx.Theme.ActiveName()
	for i, name := range themeNames {
		line := themeLabel(name)
		if name == active {
			line += " (actual)"
		}
		if i == m.cursor {
			line = styles.Selected.Render("> " + line)
		} else {
			line = styles.Text.Render("  " + line)
		}
		sections = append(sections, line)
	}

	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, "", alert)
	}
	sections = append(sections, styles.Help.Render("enter: aplicar • e: editar paleta personalizada • esc: volver"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
