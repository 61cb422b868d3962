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

type perfilLoadedMsg struct {
	usuario *model.Usuario
	err     error
}

type perfilSavedMsg struct {
	usuario *model.Usuario
	err     error
}

// Perfil shows and edits the authenticated user's contact fields. Identity
// fields (DNI, nombre, apellido, rol) are read-only here.
type Perfil struct {
	ctx     *app.Context
	usuario *model.Usuario
	form    components.Form
	spinner spinner.Model
	loading bool
	alert   components.Alert
}

// NewPerfil builds the profile screen.
func NewPerfil(ctx *app.Context) Perfil {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Perfil{ctx: ctx, spinner: s, loading: true}
}

func (m Perfil) Init() tea.Cmd {
	// Always re-fetch: a degraded session has a token but no cached profile.
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		usuario, err := m.ctx.API.Me(context.Background())
		return perfilLoadedMsg{usuario: usuario, err: err}
	})
}

func (m Perfil) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case perfilLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.usuario = msg.usuario
		m.form = components.NewForm([]components.Field{
			{Label: "Teléfono", Value: msg.usuario.Telefono},
			{Label: "Email", Value: msg.usuario.Email},
			{Label: "Dirección", Value: msg.usuario.Direccion},
		})
		return m, nil

	case perfilSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.usuario = msg.usuario
		m.alert = components.NewSuccessAlert("Perfil actualizado.")
		return m, nil
	}

	if m.usuario != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Perfil) submit() (tea.Model, tea.Cmd) {
	if m.usuario == nil {
		return m, nil
	}

	updated := *m.usuario
	updated.Telefono = m.form.Value(0)
	updated.Email = m.form.Value(1)
	updated.Direccion = m.form.Value(2)

	m.loading = true
	m.alert.Clear()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		saved, err := m.ctx.API.UpdateUsuario(context.Background(), updated.DNI, updated)
		return perfilSavedMsg{usuario: saved, err: err}
	})
}

func (m Perfil) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Mi Perfil"), ""}

	switch {
	case m.loading && m.usuario == nil:
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Cargando perfil..."))
	case m.usuario != nil:
		rol := "Empleado"
		if m.usuario.EsAdmin {
			rol = "Administrador"
		}
		sections = append(sections,
			styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
				m.usuario.FullName(),
				"DNI: "+m.usuario.DNI,
				"Rol: "+rol,
			)),
			"",
			m.form.View(styles),
		)
		if m.loading {
			sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Guardando..."))
		}
	}

	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, alert)
	}
	sections = append(sections, styles.Help.Render("enter: guardar • esc: volver"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
