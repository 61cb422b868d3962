package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/tui/components"
)

// Home is the landing menu of both role trees; the entries differ by role.
type Home struct {
	ctx   *app.Context
	admin bool
	title string
	menu  components.Menu
}

// NewUserHome builds the standard-user landing screen.
func NewUserHome(ctx *app.Context) Home {
	return Home{
		ctx:   ctx,
		title: "Inicio",
		menu: components.NewMenu([]components.MenuItem{
			{Title: "Mis Obras", Desc: "obras asignadas a vos"},
			{Title: "Mis Asistencias", Desc: "tu historial de asistencia"},
			{Title: "Mi Perfil", Desc: "datos de contacto"},
			{Title: "Ajustes de tema"},
			{Title: "Cerrar sesión"},
		}),
	}
}

// NewAdminHome builds the administrator landing screen.
func NewAdminHome(ctx *app.Context) Home {
	return Home{
		ctx:   ctx,
		admin: true,
		title: "Panel de Administrador",
		menu: components.NewMenu([]components.MenuItem{
			{Title: "Tomar Asistencia", Desc: "marcar asistencia por obra"},
			{Title: "Gestión de Obras"},
			{Title: "Gestión de Usuarios"},
			{Title: "Asignar Obras", Desc: "vincular usuarios a obras"},
			{Title: "Administrar Asistencia", Desc: "revisar y corregir registros"},
			{Title: "Mi Perfil"},
			{Title: "Ajustes de tema"},
			{Title: "Cerrar sesión"},
		}),
	}
}

func (m Home) Init() tea.Cmd {
	return nil
}

func (m Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.String() == "enter" {
		return m.open()
	}

	m.menu = m.menu.Update(msg)
	return m, nil
}

func (m Home) open() (tea.Model, tea.Cmd) {
	switch m.menu.Selected().Title {
	case "Mis Obras":
		return m, Push(NewObras(m.ctx, false))
	case "Mis Asistencias":
		dni := ""
		if user := m.ctx.Session.Snapshot().User; user != nil {
			dni = user.DNI
		}
		return m, Push(NewAsistencias(m.ctx, dni, false))
	case "Tomar Asistencia":
		return m, Push(NewTomarAsistencia(m.ctx))
	case "Gestión de Obras":
		return m, Push(NewObras(m.ctx, true))
	case "Gestión de Usuarios":
		return m, Push(NewUsuarios(m.ctx))
	case "Asignar Obras":
		return m, Push(NewAsignar(m.ctx))
	case "Administrar Asistencia":
		return m, Push(NewSeleccionarUsuarioAsistencia(m.ctx))
	case "Mi Perfil":
		return m, Push(NewPerfil(m.ctx))
	case "Ajustes de tema":
		return m, Push(NewAjustes(m.ctx))
	case "Cerrar sesión":
		return m, func() tea.Msg { return LogoutRequestedMsg{} }
	}
	return m, nil
}

func (m Home) View() string {
	styles := m.ctx.Theme.Styles()

	greeting := ""
	if user := m.ctx.Session.Snapshot().User; user != nil {
		greeting = styles.Text.Render("Hola, " + user.FullName())
	}

	sections := []string{styles.Title.Render(m.title)}
	if greeting != "" {
		sections = append(sections, greeting)
	}
	sections = append(sections, "", m.menu.View(styles))
	sections = append(sections, styles.Help.Render("↑/↓: mover • enter: abrir • ctrl+c: salir"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
