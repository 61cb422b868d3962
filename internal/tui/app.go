// Package tui owns the root bubbletea model: it restores the session on
// startup, maps session snapshots to navigation trees, and manages the
// per-tree screen stack.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/router"
	"github.com/sefyapp/sefy/internal/session"
	"github.com/sefyapp/sefy/internal/tui/screens"
)

// SessionChangedMsg carries a fresh session snapshot into the update loop.
// The session store publishes one on every login, logout, and restore step.
type SessionChangedMsg struct {
	Snapshot session.Snapshot
}

type restoreDoneMsg struct{}

// Model is the root TUI model.
type Model struct {
	ctx     *app.Context
	tree    router.Tree
	stack   []tea.Model
	spinner spinner.Model
	width   int
	height  int
}

// NewModel builds the root model in the loading tree.
func NewModel(ctx *app.Context) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{ctx: ctx, tree: router.TreeLoading, spinner: s}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		m.ctx.Session.Restore(context.Background())
		return restoreDoneMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case restoreDoneMsg:
		return m, nil

	case SessionChangedMsg:
		return m.route(msg.Snapshot)

	case screens.PushMsg:
		m.stack = append(m.stack, msg.Screen)
		return m, msg.Screen.Init()

	case screens.PopMsg:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		// Re-init so the revealed screen reloads whatever the popped
		// screen may have changed.
		return m, m.top().Init()

	case screens.LogoutRequestedMsg:
		return m, func() tea.Msg {
			m.ctx.Session.Logout()
			return nil
		}

	case spinner.TickMsg:
		if m.tree == router.TreeLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m.forward(msg)
}

// route swaps the screen stack when the session snapshot selects a different
// navigation tree. Within the same tree the stack is left alone.
func (m Model) route(snap session.Snapshot) (tea.Model, tea.Cmd) {
	tree := router.Route(snap)
	if tree == m.tree && len(m.stack) > 0 {
		return m, nil
	}

	m.ctx.Log.WithFields(map[string]any{"tree": tree.String()}).Debug("switching navigation tree")
	m.tree = tree

	var root tea.Model
	switch tree {
	case router.TreeAuth:
		root = screens.NewLogin(m.ctx)
	case router.TreeAdmin:
		root = screens.NewAdminHome(m.ctx)
	case router.TreeUser:
		root = screens.NewUserHome(m.ctx)
	default:
		m.stack = nil
		return m, m.spinner.Tick
	}

	m.stack = []tea.Model{root}
	return m, root.Init()
}

// forward delivers a message to the screen on top of the stack.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.stack) == 0 {
		return m, nil
	}

	top, cmd := m.top().Update(msg)
	m.stack[len(m.stack)-1] = top
	return m, cmd
}

func (m Model) top() tea.Model {
	return m.stack[len(m.stack)-1]
}

func (m Model) View() string {
	styles := m.ctx.Theme.Styles()

	if m.tree == router.TreeLoading || len(m.stack) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			"  "+m.spinner.View()+" "+styles.Muted.Render("Cargando..."),
		)
	}
	return m.top().View()
}

// Run starts the interactive application and blocks until it exits.
func Run(ctx *app.Context) error {
	ctx.Theme.Restore()

	p := tea.NewProgram(NewModel(ctx), tea.WithAltScreen())
	ctx.Session.Subscribe(func(snap session.Snapshot) {
		p.Send(SessionChangedMsg{Snapshot: snap})
	})

	_, err := p.Run()
	return err
}
