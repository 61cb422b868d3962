package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/tui/components"
)

type asignarStep int

const (
	asignarPickUsuario asignarStep = iota
	asignarPickObra
	asignarPickRol
)

type asignarDataMsg struct {
	usuarios []model.Usuario
	obras    []model.Obra
	err      error
}

type asignacionCreatedMsg struct {
	err error
}

// Asignar walks an admin through linking a usuario to an obra with a role.
type Asignar struct {
	ctx      *app.Context
	step     asignarStep
	usuarios []model.Usuario
	obras    []model.Obra
	cursor   int
	usuario  model.Usuario
	obra     model.Obra
	rol      textinput.Model
	spinner  spinner.Model
	loading  bool
	alert    components.Alert
}

// NewAsignar builds the assignment wizard.
func NewAsignar(ctx *app.Context) Asignar {
	s := spinner.New()
	s.Spinner = spinner.Dot

	rol := textinput.New()
	rol.Placeholder = "Oficial albañil"

	return Asignar{ctx: ctx, rol: rol, spinner: s, loading: true}
}

func (m Asignar) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		usuarios, err := m.ctx.API.ListUsuarios(context.Background())
		if err != nil {
			return asignarDataMsg{err: err}
		}
		obras, err := m.ctx.API.ListObras(context.Background())
		if err != nil {
			return asignarDataMsg{err: err}
		}
		return asignarDataMsg{usuarios: usuarios, obras: obras}
	})
}

func (m Asignar) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case asignarDataMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.usuarios = msg.usuarios
		m.obras = msg.obras
		return m, nil

	case asignacionCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		return m, Pop()
	}

	return m, nil
}

func (m Asignar) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	if msg.String() == "esc" {
		return m, Pop()
	}

	if m.step == asignarPickRol {
		if msg.String() == "enter" {
			return m.submit()
		}
		var cmd tea.Cmd
		m.rol, cmd = m.rol.Update(msg)
		return m, cmd
	}

	limit := len(m.usuarios)
	if m.step == asignarPickObra {
		limit = len(m.obras)
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < limit-1 {
			m.cursor++
		}
	case "enter":
		if limit == 0 {
			return m, nil
		}
		if m.step == asignarPickUsuario {
			m.usuario = m.usuarios[m.cursor]
			m.step = asignarPickObra
			m.cursor = 0
			return m, nil
		}
		m.obra = m.obras[m.cursor]
		m.step = asignarPickRol
		m.rol.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Asignar) submit() (tea.Model, tea.Cmd) {
	rol := m.rol.Value()
	if rol == "" {
		m.alert = components.NewErrorAlert("Indicá el rol del empleado en la obra.")
		return m, nil
	}

	m.loading = true
	m.alert.Clear()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		_, err := m.ctx.API.CreateAsignacion(context.Background(), m.usuario.DNI, m.obra.ID, rol)
		return asignacionCreatedMsg{err: err}
	})
}

func (m Asignar) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Asignar Obras"), ""}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando..."))

	case m.step == asignarPickUsuario:
		sections = append(sections, styles.Text.Render("1/3 — Elegí un usuario:"), "")
		for i, u := range m.usuarios {
			line := fmt.Sprintf("%s — %s", u.DNI, u.FullName())
			if i == m.cursor {
				line = styles.Selected.Render("> " + line)
			} else {
				line = styles.Text.Render("  " + line)
			}
			sections = append(sections, line)
		}

	case m.step == asignarPickObra:
		sections = append(sections,
			styles.Text.Render("2/3 — Elegí una obra para "+m.usuario.FullName()+":"), "")
		for i, o := range m.obras {
			line := fmt.Sprintf("%s %s", o.Estado.Icon(), o.Nombre)
			if i == m.cursor {
				line = styles.Selected.Render("> " + line)
			} else {
				line = styles.Text.Render("  " + line)
			}
			sections = append(sections, line)
		}

	default:
		sections = append(sections,
			styles.Text.Render(fmt.Sprintf("3/3 — Rol de %s en %q:", m.usuario.FullName(), m.obra.Nombre)),
			"",
			m.rol.View(),
		)
	}

	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, "", alert)
	}
	sections = append(sections, styles.Help.Render("enter: continuar • esc: cancelar"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
