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

type obraLoadedMsg struct {
	obra *model.Obra
	err  error
}

// ObraDetail shows one obra. Admins can jump into the edit form.
type ObraDetail struct {
	ctx     *app.Context
	id      int
	admin   bool
	obra    *model.Obra
	spinner spinner.Model
	loading bool
	alert   components.Alert
}

// NewObraDetail builds the detail screen for the obra with the given id.
func NewObraDetail(ctx *app.Context, id int, admin bool) ObraDetail {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return ObraDetail{ctx: ctx, id: id, admin: admin, spinner: s, loading: true}
}

func (m ObraDetail) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadObraCmd(m.ctx, m.id))
}

func loadObraCmd(ctx *app.Context, id int) tea.Cmd {
	return func() tea.Msg {
		obra, err := ctx.API.GetObra(context.Background(), id)
		return obraLoadedMsg{obra: obra, err: err}
	}
}

func (m ObraDetail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, Pop()
		case "e":
			if m.admin && m.obra != nil {
				return m, Push(NewObraForm(m.ctx, m.obra))
			}
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadObraCmd(m.ctx, m.id))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case obraLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.obra = msg.obra
		return m, nil
	}

	return m, nil
}

func (m ObraDetail) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Detalle de Obra"), ""}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando obra..."))
	case m.obra != nil:
		o := m.obra
		card := []string{
			fmt.Sprintf("%s %s", o.Estado.Icon(), o.Nombre),
			"Dirección: " + o.Direccion,
		}
		if o.Descripcion != "" {
			card = append(card, "Descripción: "+o.Descripcion)
		}
		if o.FechaInicio != "" {
			card = append(card, "Inicio: "+o.FechaInicio)
		}
		if o.FechaFin != "" {
			card = append(card, "Fin: "+o.FechaFin)
		}
		card = append(card, "Estado: "+string(o.Estado))
		sections = append(sections, styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, card...)))
	}

	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, "", alert)
	}

	help := "r: recargar • esc: volver"
	if m.admin {
		help = "e: editar • r: recargar • esc: volver"
	}
	sections = append(sections, styles.Help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
