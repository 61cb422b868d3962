package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/tui/components"
)

type usuariosLoadedMsg struct {
	usuarios []model.Usuario
	err      error
}

// Usuarios is the admin user management list.
type Usuarios struct {
	ctx      *app.Context
	usuarios []model.Usuario
	cursor   int
	spinner  spinner.Model
	loading  bool
	alert    components.Alert
}

// NewUsuarios builds the admin user list.
func NewUsuarios(ctx *app.Context) Usuarios {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Usuarios{ctx: ctx, spinner: s, loading: true}
}

func (m Usuarios) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadUsuariosCmd(m.ctx))
}

func loadUsuariosCmd(ctx *app.Context) tea.Cmd {
	return func() tea.Msg {
		usuarios, err := ctx.API.ListUsuarios(context.Background())
		return usuariosLoadedMsg{usuarios: usuarios, err: err}
	}
}

func (m Usuarios) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, Pop()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.usuarios)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.usuarios) > 0 {
				return m, Push(NewUsuarioManage(m.ctx, m.usuarios[m.cursor]))
			}
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadUsuariosCmd(m.ctx))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case usuariosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.usuarios = msg.usuarios
		if m.cursor >= len(m.usuarios) {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

func (m Usuarios) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Gestión de Usuarios"), ""}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando usuarios..."))
	case len(m.usuarios) == 0:
		sections = append(sections, styles.Muted.Render("No hay usuarios registrados."))
	default:
		for i, u := range m.usuarios {
			role := ""
			if u.EsAdmin {
				role = styles.Accent.Render(" [admin]")
			}
			line := fmt.Sprintf("%s — %s", u.DNI, u.FullName())
			if i == m.cursor {
				sections = append(sections, styles.Selected.Render("> "+line)+role)
			} else {
				sections = append(sections, styles.Text.Render("  "+line)+role)
			}
		}
	}

	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, "", alert)
	}
	sections = append(sections, styles.Help.Render("enter: administrar • r: recargar • esc: volver"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
