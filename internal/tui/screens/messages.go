// Package screens contains one bubbletea model per application screen. The
// root TUI model owns a navigation stack; screens request navigation by
// emitting PushMsg / PopMsg and never reference each other's state.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PushMsg asks the root model to push a screen onto the navigation stack.
type PushMsg struct {
	Screen tea.Model
}

// PopMsg asks the root model to pop the current screen.
type PopMsg struct{}

// Push wraps a screen into a navigation command.
func Push(screen tea.Model) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: screen} }
}

// Pop returns to the previous screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopMsg{} }
}

// LogoutRequestedMsg asks the root model to clear the session. Emitted by the
// home screens; the session change then swaps the whole tree.
type LogoutRequestedMsg struct{}
