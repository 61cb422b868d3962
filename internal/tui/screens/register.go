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

type registerDoneMsg struct {
	err error
}

// Register creates a new usuario from the unauthenticated tree.
type Register struct {
	ctx     *app.Context
	form    components.Form
	spinner spinner.Model
	loading bool
	done    bool
	alert   components.Alert
}

// NewRegister builds the registration screen.
func NewRegister(ctx *app.Context) Register {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Register{
		ctx: ctx,
		form: components.NewForm([]components.Field{
			{Label: "DNI", CharLimit: 16},
			{Label: "Nombre"},
			{Label: "Apellido"},
			{Label: "Teléfono"},
			{Label: "Email"},
			{Label: "Dirección"},
		}),
		spinner: s,
	}
}

func (m Register) Init() tea.Cmd {
	return nil
}

func (m Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, Pop()
		case "enter":
			if m.done {
				return m, Pop()
			}
			return m.submit()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case registerDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
			return m, nil
		}
		m.done = true
		m.alert = components.NewSuccessAlert("Usuario registrado correctamente.")
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Register) submit() (tea.Model, tea.Cmd) {
	u := model.Usuario{
		DNI:       m.form.Value(0),
		Nombre:    m.form.Value(1),
		Apellido:  m.form.Value(2),
		Telefono:  m.form.Value(3),
		Email:     m.form.Value(4),
		Direccion: m.form.Value(5),
	}

	if u.DNI == "" || u.Nombre == "" || u.Apellido == "" {
		m.alert = components.NewErrorAlert("DNI, nombre y apellido son obligatorios.")
		return m, nil
	}

	m.loading = true
	m.alert.Clear()
	return m, tea.Batch(m.spinner.Tick, registerCmd(m.ctx, u))
}

func registerCmd(ctx *app.Context, u model.Usuario) tea.Cmd {
	return func() tea.Msg {
		_, err := ctx.API.CreateUsuario(context.Background(), u)
		return registerDoneMsg{err: err}
	}
}

func (m Register) View() string {
	styles := m.ctx.Theme.Styles()

	sections := []string{styles.Title.Render("Registro"), ""}
	sections = append(sections, m.form.View(styles))

	if m.loading {
		sections = append(sections, m.spinner.View()+" "+styles.Muted.Render("Registrando..."))
	}
	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, alert)
	}

	help := "enter: registrar • esc: volver"
	if m.done {
		help = "enter/esc: volver al login"
	}
	sections = append(sections, styles.Help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
