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

// TomarAsistencia lets an admin pick an obra whose asignaciones get marked.
type TomarAsistencia struct {
	ctx     *app.Context
	obras   []model.Obra
	cursor  int
	spinner spinner.Model
	loading bool
	alert   components.Alert
}

// NewTomarAsistencia builds the obra picker for attendance taking.
func NewTomarAsistencia(ctx *app.Context) TomarAsistencia {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return TomarAsistencia{ctx: ctx, spinner: s, loading: true}
}

func (m TomarAsistencia) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadObrasCmd(m.ctx, true))
}

func (m TomarAsistencia) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.obras)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.obras) > 0 {
				return m, Push(NewObraAsignaciones(m.ctx, m.obras[m.cursor]))
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case obrasLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.obras = msg.obras
		return m, nil
	}

	return m, nil
}

func (m TomarAsistencia) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Tomar Asistencia"), ""}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando obras..."))
	case len(m.obras) == 0:
		sections = append(sections, styles.Muted.Render("No hay obras activas."))
	default:
		for i, o := range m.obras {
			line := fmt.Sprintf("%s %s — %s", o.Estado.Icon(), o.Nombre, o.Direccion)
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
	sections = append(sections, styles.Help.Render("enter: ver asignaciones • esc: volver"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type asignacionesLoadedMsg struct {
	asignaciones []model.Asignacion
	err          error
}

type asistenciaMarcadaMsg struct {
	estado model.AsistenciaEstado
	err    error
}

// ObraAsignaciones lists the asignaciones of one obra and marks attendance.
type ObraAsignaciones struct {
	ctx          *app.Context
	obra         model.Obra
	asignaciones []model.Asignacion
	cursor       int
	spinner      spinner.Model
	loading      bool
	alert        components.Alert
}

// NewObraAsignaciones builds the marking screen for one obra.
func NewObraAsignaciones(ctx *app.Context, obra model.Obra) ObraAsignaciones {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return ObraAsignaciones{ctx: ctx, obra: obra, spinner: s, loading: true}
}

func (m ObraAsignaciones) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadAsignacionesCmd(m.ctx, m.obra.ID))
}

// loadAsignacionesCmd fetches every asignacion and keeps the ones belonging
// to the obra. The backend offers no per-obra filter.
func loadAsignacionesCmd(ctx *app.Context, idObra int) tea.Cmd {
	return func() tea.Msg {
		all, err := ctx.API.ListAsignaciones(context.Background())
		if err != nil {
			return asignacionesLoadedMsg{err: err}
		}

		var filtered []model.Asignacion
		for _, a := range all {
			if a.IDObra == idObra {
				filtered = append(filtered, a)
			}
		}
		return asignacionesLoadedMsg{asignaciones: filtered}
	}
}

func marcarCmd(ctx *app.Context, a model.Asignacion, estado model.AsistenciaEstado) tea.Cmd {
	return func() tea.Msg {
		err := ctx.API.TomarAsistencia(context.Background(), a.DNIUsuario, a.ID, estado)
		return asistenciaMarcadaMsg{estado: estado, err: err}
	}
}

func (m ObraAsignaciones) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.asignaciones)-1 {
				m.cursor++
			}
		case "p":
			return m.marcar(model.AsistenciaPresente)
		case "a":
			return m.marcar(model.AsistenciaAusente)
		case "f":
			return m.marcar(model.AsistenciaJustificado)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case asignacionesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.asignaciones = msg.asignaciones
		return m, nil

	case asistenciaMarcadaMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.alert = components.NewSuccessAlert("Asistencia marcada como " + string(msg.estado) + ".")
		return m, nil
	}

	return m, nil
}

func (m ObraAsignaciones) marcar(estado model.AsistenciaEstado) (tea.Model, tea.Cmd) {
	if len(m.asignaciones) == 0 {
		return m, nil
	}
	m.loading = true
	m.alert.Clear()
	return m, tea.Batch(m.spinner.Tick, marcarCmd(m.ctx, m.asignaciones[m.cursor], estado))
}

func (m ObraAsignaciones) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{
		styles.Title.Render("Asignaciones — " + m.obra.Nombre),
		"",
	}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando..."))
	case len(m.asignaciones) == 0:
		sections = append(sections, styles.Muted.Render("Esta obra no tiene asignaciones."))
	default:
		for i, a := range m.asignaciones {
			line := fmt.Sprintf("%s — %s", a.DNIUsuario, a.RolEmpleado)
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
	sections = append(sections, styles.Help.Render("p: presente • a: ausente • f: justificado • esc: volver"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
