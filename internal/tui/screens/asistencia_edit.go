package screens

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/tui/components"
)

type asistenciaSavedMsg struct {
	err error
}

var asistenciaEstados = []model.AsistenciaEstado{
	model.AsistenciaPresente,
	model.AsistenciaAusente,
	model.AsistenciaJustificado,
}

// AsistenciaEdit lets an admin correct one attendance record.
type AsistenciaEdit struct {
	ctx        *app.Context
	asistencia model.Asistencia
	form       components.Form
	estado     int
	spinner    spinner.Model
	loading    bool
	alert      components.Alert
}

// NewAsistenciaEdit builds the edit form prefilled from the record.
func NewAsistenciaEdit(ctx *app.Context, a model.Asistencia) AsistenciaEdit {
	s := spinner.New()
	s.Spinner = spinner.Dot

	fields := []components.Field{
		{Label: "Fecha (YYYY-MM-DD)", Value: a.Fecha},
		{Label: "Hora entrada (HH:MM)", Value: a.HoraEntrada, CharLimit: 5},
		{Label: "Hora salida (HH:MM)", Value: a.HoraSalida, CharLimit: 5},
	}
	estado := 0
	for i, e := range asistenciaEstados {
		if e == a.Estado {
			estado = i
		}
	}

	return AsistenciaEdit{
		ctx:        ctx,
		asistencia: a,
		form:       components.NewForm(fields),
		estado:     estado,
		spinner:    s,
	}
}

func (m AsistenciaEdit) Init() tea.Cmd {
	return nil
}

func (m AsistenciaEdit) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, Pop()
		case "enter":
			return m.submit()
		case "left", "right":
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.estado = (m.estado + delta + len(asistenciaEstados)) % len(asistenciaEstados)
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case asistenciaSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		return m, Pop()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m AsistenciaEdit) submit() (tea.Model, tea.Cmd) {
	updated := m.asistencia
	updated.Fecha = m.form.Value(0)
	updated.HoraEntrada = m.form.Value(1)
	updated.HoraSalida = m.form.Value(2)
	updated.Estado = asistenciaEstados[m.estado]

	if updated.Fecha == "" {
		m.alert = components.NewErrorAlert("La fecha es obligatoria.")
		return m, nil
	}

	m.loading = true
	m.alert.Clear()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return asistenciaSavedMsg{err: m.ctx.API.UpdateAsistencia(context.Background(), updated)}
	})
}

func (m AsistenciaEdit) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Editar Asistencia"), ""}
	sections = append(sections, m.form.View(styles))
	sections = append(sections,
		styles.Text.Render("Estado: ")+styles.Accent.Render(string(asistenciaEstados[m.estado]))+
			styles.Muted.Render("  (←/→ para cambiar)"))

	if m.loading {
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Guardando..."))
	}
	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, alert)
	}
	sections = append(sections, styles.Help.Render("enter: guardar • esc: cancelar"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
