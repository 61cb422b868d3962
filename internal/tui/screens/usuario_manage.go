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

type usuarioSavedMsg struct {
	err error
}

type usuarioDeletedMsg struct {
	err error
}

// UsuarioManage edits one usuario: contact fields, the admin flag, and
// deletion. The DNI is immutable.
type UsuarioManage struct {
	ctx     *app.Context
	usuario model.Usuario
	form    components.Form
	esAdmin bool
	confirm bool
	spinner spinner.Model
	loading bool
	alert   components.Alert
}

// NewUsuarioManage builds the management screen for one usuario.
func NewUsuarioManage(ctx *app.Context, u model.Usuario) UsuarioManage {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return UsuarioManage{
		ctx:     ctx,
		usuario: u,
		esAdmin: u.EsAdmin,
		form: components.NewForm([]components.Field{
			{Label: "Nombre", Value: u.Nombre},
			{Label: "Apellido", Value: u.Apellido},
			{Label: "Teléfono", Value: u.Telefono},
			{Label: "Email", Value: u.Email},
			{Label: "Dirección", Value: u.Direccion},
		}),
		spinner: s,
	}
}

func (m UsuarioManage) Init() tea.Cmd {
	return nil
}

func (m UsuarioManage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.confirm {
			switch msg.String() {
			case "y", "s":
				m.confirm = false
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, deleteUsuarioCmd(m.ctx, m.usuario.DNI))
			default:
				m.confirm = false
				return m, nil
			}
		}
		switch msg.String() {
		case "esc":
			return m, Pop()
		case "enter":
			return m.submit()
		case "ctrl+a":
			m.esAdmin = !m.esAdmin
			return m, nil
		case "ctrl+d":
			m.confirm = true
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case usuarioSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.alert = components.NewSuccessAlert("Usuario actualizado.")
		return m, nil

	case usuarioDeletedMsg:
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

func (m UsuarioManage) submit() (tea.Model, tea.Cmd) {
	updated := model.Usuario{
		DNI:       m.usuario.DNI,
		Nombre:    m.form.Value(0),
		Apellido:  m.form.Value(1),
		Telefono:  m.form.Value(2),
		Email:     m.form.Value(3),
		Direccion: m.form.Value(4),
		EsAdmin:   m.esAdmin,
	}

	if updated.Nombre == "" || updated.Apellido == "" {
		m.alert = components.NewErrorAlert("Nombre y apellido son obligatorios.")
		return m, nil
	}

	m.loading = true
	m.alert.Clear()
	return m, tea.Batch(m.spinner.Tick, saveUsuarioCmd(m.ctx, updated))
}

func saveUsuarioCmd(ctx *app.Context, u model.Usuario) tea.Cmd {
	return func() tea.Msg {
		_, err := ctx.API.UpdateUsuario(context.Background(), u.DNI, u)
		return usuarioSavedMsg{err: err}
	}
}

func deleteUsuarioCmd(ctx *app.Context, dni string) tea.Cmd {
	return func() tea.Msg {
		return usuarioDeletedMsg{err: ctx.API.DeleteUsuario(context.Background(), dni)}
	}
}

func (m UsuarioManage) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{
		styles.Title.Render("Administrar Usuario"),
		styles.Muted.Render("DNI: " + m.usuario.DNI),
		"",
		m.form.View(styles),
	}

	admin := "no"
	if m.esAdmin {
		admin = "sí"
	}
	sections = append(sections, styles.Text.Render("Administrador: ")+styles.Accent.Render(admin))

	if m.loading {
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Guardando..."))
	}
	if m.confirm {
		sections = append(sections, "", styles.Error.Render("¿Eliminar este usuario? (s/n)"))
	}
	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, alert)
	}
	sections = append(sections, styles.Help.Render("enter: guardar • ctrl+a: admin sí/no • ctrl+d: eliminar • esc: volver"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
