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

type obrasLoadedMsg struct {
	obras []model.Obra
	err   error
}

type obraDeletedMsg struct {
	err error
}

// Obras lists obras. Standard users see only their assigned obras; admins see
// every obra and can create, edit, and delete them.
type Obras struct {
	ctx     *app.Context
	admin   bool
	obras   []model.Obra
	cursor  int
	spinner spinner.Model
	loading bool
	confirm bool
	alert   components.Alert
}

// NewObras builds the obra list for one of the two roles.
func NewObras(ctx *app.Context, admin bool) Obras {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Obras{ctx: ctx, admin: admin, spinner: s, loading: true}
}

func (m Obras) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadObrasCmd(m.ctx, m.admin))
}

func loadObrasCmd(ctx *app.Context, admin bool) tea.Cmd {
	return func() tea.Msg {
		var (
			obras []model.Obra
			err   error
		)
		if admin {
			obras, err = ctx.API.ListObras(context.Background())
		} else {
			obras, err = ctx.API.MyObras(context.Background())
		}
		return obrasLoadedMsg{obras: obras, err: err}
	}
}

func deleteObraCmd(ctx *app.Context, id int) tea.Cmd {
	return func() tea.Msg {
		return obraDeletedMsg{err: ctx.API.DeleteObra(context.Background(), id)}
	}
}

func (m Obras) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

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
		if m.cursor >= len(m.obras) {
			m.cursor = 0
		}
		return m, nil

	case obraDeletedMsg:
		if msg.err != nil {
			m.loading = false
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.alert = components.NewSuccessAlert("Obra eliminada.")
		return m, loadObrasCmd(m.ctx, m.admin)
	}

	return m, nil
}

func (m Obras) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	if m.confirm {
		switch msg.String() {
		case "y", "s":
			m.confirm = false
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, deleteObraCmd(m.ctx, m.obras[m.cursor].ID))
		default:
			m.confirm = false
			return m, nil
		}
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
			return m, Push(NewObraDetail(m.ctx, m.obras[m.cursor].ID, m.admin))
		}
	case "n":
		if m.admin {
			return m, Push(NewObraForm(m.ctx, nil))
		}
	case "d":
		if m.admin && len(m.obras) > 0 {
			m.confirm = true
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadObrasCmd(m.ctx, m.admin))
	}
	return m, nil
}

func (m Obras) View() string {
	styles := m.ctx.Theme.Styles()

	title := "Mis Obras"
	if m.admin {
		title = "Gestión de Obras"
	}
	sections := []string{styles.Title.Render(title), ""}

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando obras..."))
	case len(m.obras) == 0:
		sections = append(sections, styles.Muted.Render("No hay obras para mostrar."))
	default:
		for i, obra := range m.obras {
			line := fmt.Sprintf("%s %s — %s", obra.Estado.Icon(), obra.Nombre, obra.Direccion)
			if i == m.cursor {
				line = styles.Selected.Render("> " + line)
			} else {
				line = styles.Text.Render("  " + line)
			}
			sections = append(sections, line)
		}
	}

	if m.confirm {
		sections = append(sections, "", styles.Error.Render(
			fmt.Sprintf("¿Eliminar la obra %q? (s/n)", m.obras[m.cursor].Nombre)))
	}
	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, "", alert)
	}

	help := "enter: detalle • r: recargar • esc: volver"
	if m.admin {
		help = "enter: detalle • n: nueva • d: eliminar • r: recargar • esc: volver"
	}
	sections = append(sections, styles.Help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
