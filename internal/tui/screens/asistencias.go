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

type asistenciasLoadedMsg struct {
	asistencias []model.Asistencia
	err         error
}

type asistenciaDeletedMsg struct {
	err error
}

// Asistencias lists attendance records for one usuario. Standard users see
// their own history read-only; admins can edit and delete records.
type Asistencias struct {
	ctx         *app.Context
	dni         string
	admin       bool
	asistencias []model.Asistencia
	cursor      int
	confirming  bool
	spinner     spinner.Model
	loading     bool
	alert       components.Alert
}

// NewAsistencias builds the attendance list for the usuario with the given
// DNI. With admin set, records can be edited and deleted.
func NewAsistencias(ctx *app.Context, dni string, admin bool) Asistencias {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Asistencias{ctx: ctx, dni: dni, admin: admin, spinner: s, loading: true}
}

func (m Asistencias) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadAsistenciasCmd(m.ctx, m.dni))
}

// loadAsistenciasCmd fetches every asistencia and keeps the usuario's rows.
// The backend offers no per-usuario filter.
func loadAsistenciasCmd(ctx *app.Context, dni string) tea.Cmd {
	return func() tea.Msg {
		all, err := ctx.API.ListAsistencias(context.Background())
		if err != nil {
			return asistenciasLoadedMsg{err: err}
		}

		var filtered []model.Asistencia
		for _, a := range all {
			if a.DNIUsuario == dni {
				filtered = append(filtered, a)
			}
		}
		return asistenciasLoadedMsg{asistencias: filtered}
	}
}

func deleteAsistenciaCmd(ctx *app.Context, id int) tea.Cmd {
	return func() tea.Msg {
		return asistenciaDeletedMsg{err: ctx.API.DeleteAsistencia(context.Background(), id)}
	}
}

func (m Asistencias) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.confirming {
			switch msg.String() {
			case "s":
				m.confirming = false
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, deleteAsistenciaCmd(m.ctx, m.asistencias[m.cursor].ID))
			case "n", "esc":
				m.confirming = false
			}
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
			if m.cursor < len(m.asistencias)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			m.alert.Clear()
			return m, tea.Batch(m.spinner.Tick, loadAsistenciasCmd(m.ctx, m.dni))
		case "enter":
			if m.admin && len(m.asistencias) > 0 {
				return m, Push(NewAsistenciaEdit(m.ctx, m.asistencias[m.cursor]))
			}
		case "d":
			if m.admin && len(m.asistencias) > 0 {
				m.confirming = true
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case asistenciasLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.asistencias = msg.asistencias
		if m.cursor >= len(m.asistencias) {
			m.cursor = 0
		}
		return m, nil

	case asistenciaDeletedMsg:
		if msg.err != nil {
			m.loading = false
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.alert = components.NewSuccessAlert("Asistencia eliminada.")
		return m, loadAsistenciasCmd(m.ctx, m.dni)
	}

	return m, nil
}

func (m Asistencias) View() string {
	styles := m.ctx.Theme.Styles()

	title := "Mis Asistencias"
	if m.admin {
		title = "Asistencias — " + m.dni
	}
	sections := []string{styles.Title.Render(title), ""}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando..."))
	case len(m.asistencias) == 0:
		sections = append(sections, styles.Muted.Render("No hay asistencias registradas."))
	default:
		for i, a := range m.asistencias {
			line := fmt.Sprintf("%s %s  %s", a.Estado.Icon(), a.Fecha, a.Estado)
			if a.HoraEntrada != "" || a.HoraSalida != "" {
				line += fmt.Sprintf("  (%s - %s)", orDash(a.HoraEntrada), orDash(a.HoraSalida))
			}
			if i == m.cursor {
				line = styles.Selected.Render("> " + line)
			} else {
				line = styles.Text.Render("  " + line)
			}
			sections = append(sections, line)
		}
	}

	if m.confirming {
		sections = append(sections, "", styles.Error.Render("¿Eliminar esta asistencia? (s/n)"))
	}
	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, "", alert)
	}

	help := "r: recargar • esc: volver"
	if m.admin {
		help = "enter: editar • d: eliminar • " + help
	}
	sections = append(sections, styles.Help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func orDash(s string) string {
	if s == "" {
		return "--:--"
	}
	return s
}
