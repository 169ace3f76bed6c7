package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolist/internal/apperr"
	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/keys"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/state"
	"github.com/nhle/todolist/internal/store"
	"github.com/nhle/todolist/internal/theme"
	"github.com/nhle/todolist/internal/ui"
	"github.com/nhle/todolist/internal/ui/addtodo"
	"github.com/nhle/todolist/internal/ui/alert"
	"github.com/nhle/todolist/internal/ui/authscreen"
	"github.com/nhle/todolist/internal/ui/command"
	helpview "github.com/nhle/todolist/internal/ui/help"
	"github.com/nhle/todolist/internal/ui/todoscreen"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewStartup ViewState = iota
	ViewAuth
	ViewTodos
	ViewAddTodo
	ViewHelp
	ViewCommand
)

// deleteTag identifies the delete confirmation in alert messages.
const deleteTag = "delete-todo"

// SessionStore persists the logged-in user id between runs.
type SessionStore interface {
	LoadUserID() (int64, bool, error)
	SaveUserID(id int64) error
	ClearUserID() error
}

// Deps are the collaborators of the root model.
type Deps struct {
	Store     store.Store
	Session   SessionStore
	Localizer i18n.Localizer
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and the state containers.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	ready        bool
	keys         *keys.KeyMap
	loc          i18n.Localizer

	auth    *state.Auth
	todos   *state.Todos
	session SessionStore
	scope   *requestScope

	spinner     spinner.Model
	authView    authscreen.Model
	todoView    todoscreen.Model
	addView     addtodo.Model
	helpView    helpview.Model
	commandView command.Model
	alerts      alert.Model

	pendingDelete int64
}

// New creates a new root application model.
func New(deps Deps) Model {
	loc := deps.Localizer
	if loc == nil {
		loc = i18n.NewPrinter("en")
	}
	k := keys.DefaultKeyMap()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		currentView: ViewStartup,
		keys:        k,
		loc:         loc,
		auth:        state.NewAuth(deps.Store, loc),
		todos:       state.NewTodos(deps.Store, loc),
		session:     deps.Session,
		scope:       newRequestScope(),
		spinner:     s,
		authView:    authscreen.New(loc, 80, 24),
		todoView:    todoscreen.New(k, loc, 80, 24),
		addView:     addtodo.New(loc, 80, 24),
		helpView:    helpview.New(k, loc, 80, 24),
		commandView: command.New(loc, 80, 24),
		alerts:      alert.New(loc.Sprintf(i18n.KeyOKButton)),
	}
}

// Init shows the startup spinner and reads the persisted session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSession())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.authView.SetSize(w, h)
		m.todoView.SetSize(w, h)
		m.addView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.alerts.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if m.currentView == ViewStartup {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.authView, cmd = m.authView.Update(msg)
		cmds = append(cmds, cmd)
		m.todoView, cmd = m.todoView.Update(msg)
		cmds = append(cmds, cmd)
		if m.currentView == ViewAddTodo || m.addView.Saving() {
			m.addView, cmd = m.addView.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case sessionLoadedMsg:
		if !msg.ok {
			m.currentView = ViewAuth
			return m, m.authView.Init()
		}
		m.auth.Restore(msg.userID)
		m.currentView = ViewTodos
		cmd := tea.Batch(m.todoView.SetLoading(true), m.fetchTodos())
		return m, cmd

	case authscreen.InvalidMsg:
		cmd := m.warn(string(apperr.CodeFieldsRequired))
		return m, cmd

	case authscreen.SubmitMsg:
		cmd := tea.Batch(
			m.authView.SetLoading(true),
			m.authenticate(msg.Action, msg.Username, msg.Password),
		)
		return m, cmd

	case authResultMsg:
		return m.handleAuthResult(msg)

	case todoscreen.AddRequestMsg:
		cmd := m.openAddTodo()
		return m, cmd

	case todoscreen.ToggleRequestMsg:
		cmd := m.toggleTodo(msg.ID, msg.Done)
		return m, cmd

	case todoscreen.DeleteRequestMsg:
		m.pendingDelete = msg.ID
		cmd := m.alerts.Push(alert.Alert{
			Level:       alert.LevelConfirm,
			Title:       m.loc.Sprintf(i18n.KeyConfirmTitle),
			Body:        m.loc.Sprintf(i18n.KeyDeleteTodoBody),
			Tag:         deleteTag,
			Affirmative: m.loc.Sprintf(i18n.KeyDelete),
			Negative:    m.loc.Sprintf(i18n.KeyCancel),
		})
		return m, cmd

	case todoscreen.RefreshRequestMsg:
		cmd := tea.Batch(m.todoView.SetLoading(true), m.fetchTodos())
		return m, cmd

	case todoscreen.LogoutRequestMsg:
		cmd := m.logout()
		return m, cmd

	case alert.ConfirmedMsg:
		if msg.Tag == deleteTag {
			id := m.pendingDelete
			m.pendingDelete = 0
			cmd := m.deleteTodo(id)
			return m, cmd
		}
		return m, nil

	case alert.DismissedMsg:
		if msg.Tag == deleteTag {
			m.pendingDelete = 0
		}
		return m, nil

	case addtodo.SubmitMsg:
		cmd := tea.Batch(m.addView.SetSaving(true), m.addTodo(msg.Description))
		return m, cmd

	case addtodo.InvalidMsg:
		cmd := m.warn(string(apperr.CodeDescriptionRequired))
		return m, cmd

	case addtodo.CancelMsg:
		m.currentView = ViewTodos
		return m, nil

	case todosFetchedMsg:
		cmd := m.afterTodoOp(msg.err)
		return m, cmd

	case todoAddedMsg:
		if errors.Is(msg.err, state.ErrBusy) {
			return m, nil
		}
		m.addView.SetSaving(false)
		if m.currentView == ViewAddTodo {
			m.currentView = ViewTodos
		}
		cmd := m.afterTodoOp(msg.err)
		return m, cmd

	case todoToggledMsg:
		cmd := m.afterTodoOp(msg.err)
		return m, cmd

	case todoDeletedMsg:
		cmd := m.afterTodoOp(msg.err)
		return m, cmd

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.scope.cancel()
			return m, tea.Quit
		}
		// Alerts are blocking: they see every key until dismissed.
		if m.alerts.Active() {
			var cmd tea.Cmd
			m.alerts, cmd = m.alerts.Update(msg)
			return m, cmd
		}
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}

	default:
		if m.alerts.Active() {
			var cmd tea.Cmd
			m.alerts, cmd = m.alerts.Update(msg)
			next, viewCmd := m.updateActiveView(msg)
			return next, tea.Batch(cmd, viewCmd)
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work above the active view.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch m.currentView {
	case ViewTodos:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.scope.cancel()
			return true, m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return true, m, nil
		case key.Matches(msg, m.keys.Command):
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return true, m, cmd
		}

	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.currentView = m.previousView
			return true, m, nil
		}
	}
	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewTodos:
		m.todoView, cmd = m.todoView.Update(msg)
	case ViewAddTodo:
		m.addView, cmd = m.addView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	loading := m.authView.SetLoading(false)
	if errors.Is(msg.err, context.Canceled) {
		return m, loading
	}
	if msg.err != nil {
		cmd := tea.Batch(loading, m.reportStatus(m.auth.Snapshot().Status, m.auth.SetError))
		return m, cmd
	}

	if msg.action == authscreen.ActionRegister {
		cmd := tea.Batch(
			loading,
			m.authView.Reset(true),
			m.alerts.Push(alert.Alert{
				Level: alert.LevelInfo,
				Title: m.loc.Sprintf(i18n.KeyRegisterSuccessTitle),
				Body:  m.loc.Sprintf(i18n.KeyRegisterSuccessBody, msg.username),
			}),
		)
		return m, cmd
	}

	m.currentView = ViewTodos
	cmd := tea.Batch(
		loading,
		m.authView.Reset(true),
		m.todoView.SetLoading(true),
		m.fetchTodos(),
		m.alerts.Push(alert.Alert{
			Level: alert.LevelInfo,
			Title: m.loc.Sprintf(i18n.KeyLoginSuccessTitle),
			Body:  m.loc.Sprintf(i18n.KeyLoginSuccessBody, msg.username),
		}),
	)
	return m, cmd
}

// afterTodoOp mirrors the todo container into the list view and shows a
// failure once.
func (m *Model) afterTodoOp(err error) tea.Cmd {
	if state.IsDiscarded(err) {
		return nil
	}
	snap := m.todos.Snapshot()
	cmds := []tea.Cmd{
		m.todoView.SetTodos(snap.Todos),
		m.todoView.SetLoading(snap.Loading),
		m.reportStatus(snap.Status, m.todos.SetError),
	}
	return tea.Batch(cmds...)
}

// reportStatus shows a Failed status as an error alert and acknowledges it
// through clear so it is shown only once.
func (m *Model) reportStatus(status model.Status, clear func(string)) tea.Cmd {
	f, ok := model.FailureOf(status)
	if !ok {
		return nil
	}
	clear("")
	return m.alerts.Push(alert.Alert{
		Level: alert.LevelError,
		Title: m.loc.Sprintf(i18n.KeyErrorTitle),
		Body:  f.Message,
	})
}

// warn shows a validation warning for the given message key.
func (m *Model) warn(key string) tea.Cmd {
	return m.alerts.Push(alert.Alert{
		Level: alert.LevelWarning,
		Title: m.loc.Sprintf(i18n.KeyWarningTitle),
		Body:  m.loc.Sprintf(key),
	})
}

func (m *Model) openAddTodo() tea.Cmd {
	m.currentView = ViewAddTodo
	return m.addView.Start()
}

// logout drops all session state, cancels in-flight requests and returns
// to the authentication screen.
func (m *Model) logout() tea.Cmd {
	m.scope.cancel()
	m.scope = newRequestScope()

	m.todos.Clear()
	m.auth.Logout()
	m.pendingDelete = 0
	m.addView.SetSaving(false)
	m.todoView.SetTodos(nil)
	m.todoView.SetLoading(false)
	m.currentView = ViewAuth

	return tea.Batch(m.clearSession(), m.authView.Reset(true))
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case command.Logout:
		return m.logout()
	case command.Refresh:
		return tea.Batch(m.todoView.SetLoading(true), m.fetchTodos())
	case command.Add:
		return m.openAddTodo()
	case command.Help:
		m.previousView = ViewTodos
		m.currentView = ViewHelp
		return nil
	case command.Quit:
		m.scope.cancel()
		return tea.Quit
	default:
		return nil
	}
}
