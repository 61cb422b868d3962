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

type obraSavedMsg struct {
	err error
}

var obraEstados = []model.ObraEstado{model.ObraActiva, model.ObraPausada, model.ObraFinalizada}

// ObraForm creates a new obra or edits an existing one.
type ObraForm struct {
	ctx     *app.Context
	editing *model.Obra
	form    components.Form
	estado  int
	spinner spinner.Model
	loading bool
	alert   components.Alert
}

// NewObraForm builds the form. A nil obra means "create".
func NewObraForm(ctx *app.Context, obra *model.Obra) ObraForm {
	s := spinner.New()
	s.Spinner = spinner.Dot

	fields := []components.Field{
		{Label: "Nombre"},
		{Label: "Dirección"},
		{Label: "Descripción"},
		{Label: "Fecha inicio (YYYY-MM-DD)"},
		{Label: "Fecha fin (YYYY-MM-DD)"},
	}
	estado := 0
	if obra != nil {
		fields[0].Value = obra.Nombre
		fields[1].Value = obra.Direccion
		fields[2].Value = obra.Descripcion
		fields[3].Value = obra.FechaInicio
		fields[4].Value = obra.FechaFin
		for i, e := range obraEstados {
			if e == obra.Estado {
				estado = i
			}
		}
	}

	return ObraForm{
		ctx:     ctx,
		editing: obra,
		form:    components.NewForm(fields),
		estado:  estado,
		spinner: s,
	}
}

func (m ObraForm) Init() tea.Cmd {
	return nil
}

func (m ObraForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			// Estado cycles instead of being typed free-form.
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.estado = (m.estado + delta + len(obraEstados)) % len(obraEstados)
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case obraSavedMsg:
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

func (m ObraForm) submit() (tea.Model, tea.Cmd) {
	obra := model.Obra{
		Nombre:      m.form.Value(0),
		Direccion:   m.form.Value(1),
		Descripcion: m.form.Value(2),
		FechaInicio: m.form.Value(3),
		FechaFin:    m.form.Value(4),
		Estado:      obraEstados[m.estado],
	}

	if obra.Nombre == "" || obra.Direccion == "" {
		m.alert = components.NewErrorAlert("Nombre y dirección son obligatorios.")
		return m, nil
	}

	m.loading = true
	m.alert.Clear()

	if m.editing != nil {
		id := m.editing.ID
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			_, err := m.ctx.API.UpdateObra(context.Background(), id, obra)
			return obraSavedMsg{err: err}
		})
	}

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		_, err := m.ctx.API.CreateObra(context.Background(), obra)
		return obraSavedMsg{err: err}
	})
}

func (m ObraForm) View() string {
	styles := m.ctx.Theme.Styles()

	title := "Nueva Obra"
	if m.editing != nil {
		title = "Editar Obra"
	}

	sections := []string{styles.Title.Render(title), ""}
	sections = append(sections, m.form.View(styles))
	sections = append(sections,
		styles.Text.Render("Estado: ")+styles.Accent.Render(string(obraEstados[m.estado]))+
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
