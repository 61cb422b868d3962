package screens

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/tui/components"
)

// loginDoneMsg reports the outcome of a login attempt.
type loginDoneMsg struct {
	err error
}

// Login is the entry screen of the unauthenticated tree.
type Login struct {
	ctx     *app.Context
	form    components.Form
	spinner spinner.Model
	loading bool
	alert   components.Alert
}

// NewLogin builds the login screen.
func NewLogin(ctx *app.Context) Login {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Login{
		ctx: ctx,
		form: components.NewForm([]components.Field{
			{Label: "DNI", Placeholder: "30111222", CharLimit: 16},
			{Label: "Nombre", Placeholder: "Ana"},
		}),
		spinner: s,
	}
}

func (m Login) Init() tea.Cmd {
	return nil
}

func (m Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "ctrl+r":
			return m, Push(NewRegister(m.ctx))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.alert = components.NewErrorAlert(api.Classify(msg.err).UserMessage())
		}
		// On success the session change swaps the tree; nothing to do here.
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Login) submit() (tea.Model, tea.Cmd) {
	dni, nombre := m.form.Value(0), m.form.Value(1)
	if dni == "" || nombre == "" {
		m.alert = components.NewErrorAlert("Completá DNI y Nombre para continuar.")
		return m, nil
	}

	m.loading = true
	m.alert.Clear()
	return m, tea.Batch(m.spinner.Tick, loginCmd(m.ctx, dni, nombre))
}

// loginCmd exchanges credentials for a token, then hands the token to the
// session store. Profile fetch failures inside Login are deliberately not
// surfaced here; only the token exchange reports errors.
func loginCmd(ctx *app.Context, dni, nombre string) tea.Cmd {
	return func() tea.Msg {
		token, err := ctx.API.Login(context.Background(), dni, nombre)
		if err != nil {
			return loginDoneMsg{err: err}
		}

		ctx.Session.Login(context.Background(), token)
		return loginDoneMsg{}
	}
}

func (m Login) View() string {
	styles := m.ctx.Theme.Styles()

	title := styles.Title.Render("PROYECTO SEFY")
	subtitle := styles.Text.Render("Iniciar Sesión")

	body := m.form.View(styles)
	if m.loading {
		body += m.spinner.View() + " " + styles.Muted.Render("Ingresando...")
	}

	sections := []string{title, subtitle, "", body}
	if alert := m.alert.View(styles); alert != "" {
		sections = append(sections, alert)
	}
	sections = append(sections, styles.Help.Render("enter: ingresar • ctrl+r: registrarse • ctrl+c: salir"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
