package app

import (
	"strings"

	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/model"
)

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return m.loc.Sprintf(i18n.KeyLoading)
	}

	header := m.layout.RenderHeader(m.loc.Sprintf(i18n.KeyAppTitle), m.sessionLabel())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
// A visible alert replaces the content until it is dismissed.
func (m Model) renderContent() string {
	if m.alerts.Active() {
		return m.layout.Center(m.alerts.View())
	}

	switch m.currentView {
	case ViewStartup:
		return m.layout.Center(m.spinner.View() + " " + m.loc.Sprintf(i18n.KeyLoading))
	case ViewAuth:
		return m.authView.View()
	case ViewTodos:
		return m.todoView.View()
	case ViewAddTodo:
		return m.layout.Center(m.addView.View())
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// sessionLabel describes who is logged in.
func (m Model) sessionLabel() string {
	if id, ok := model.UserIDOf(m.auth.Snapshot().Identity); ok {
		return m.loc.Sprintf(i18n.KeyLoggedInAs, id)
	}
	return m.loc.Sprintf(i18n.KeyNotLoggedIn)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.alerts.Active() {
		return "enter ok | esc close"
	}

	switch m.currentView {
	case ViewAuth:
		return "tab next | ←/→ login or register | enter submit | ctrl+c quit"
	case ViewAddTodo:
		return "enter submit | esc close"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | enter execute | esc back"
	case ViewTodos:
		var hints []string
		for _, b := range m.keys.ShortHelp() {
			hints = append(hints, b.Help().Key+" "+b.Help().Desc)
		}
		return strings.Join(hints, " | ")
	default:
		return "ctrl+c quit"
	}
}
