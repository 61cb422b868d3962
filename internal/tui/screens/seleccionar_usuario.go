package screens

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/tui/components"
)

// SeleccionarUsuario picks the usuario whose attendance an admin manages.
type SeleccionarUsuario struct {
	ctx      *app.Context
	usuarios []model.Usuario
	cursor   int
	spinner  spinner.Model
	loading  bool
	alert    components.Alert
}

// NewSeleccionarUsuarioAsistencia builds the picker that leads into a
// usuario's editable attendance list.
func NewSeleccionarUsuarioAsistencia(ctx *app.Context) SeleccionarUsuario {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return SeleccionarUsuario{ctx: ctx, spinner: s, loading: true}
}

func (m SeleccionarUsuario) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadUsuariosCmd(m.ctx))
}

func (m SeleccionarUsuario) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
				return m, Push(NewAsistencias(m.ctx, m.usuarios[m.cursor].DNI, true))
			}
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
		return m, nil
	}

	return m, nil
}

func (m SeleccionarUsuario) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Administrar Asistencia"), ""}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando usuarios..."))
	case len(m.usuarios) == 0:
		sections = append(sections, styles.Muted.Render("No hay usuarios registrados."))
	default:
		for i, u := range m.usuarios {
			line := u.FullName() + " (" + u.DNI + ")"
			if i == m.cursor {
				line = styles.Selected.Render("> " + line)
			} else {
				line = styles.Text.Render("  " + line)
			}
			sections = append(sections, line)
		}
	}

	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, "", alert)
	}
	sections = append(sections, styles.Help.Render("enter: ver asistencias • esc: volver"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
