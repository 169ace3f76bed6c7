package app

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/session"
	"github.com/nhle/todolist/internal/ui/authscreen"
)

// sessionLoadedMsg reports the outcome of reading the persisted session.
type sessionLoadedMsg struct {
	userID int64
	ok     bool
}

// authResultMsg is sent after a login or registration attempt.
type authResultMsg struct {
	action   authscreen.Action
	username string
	userID   int64
	err      error
}

// todosFetchedMsg is sent after the todo list was reloaded.
type todosFetchedMsg struct{ err error }

// todoAddedMsg is sent after a todo was created.
type todoAddedMsg struct{ err error }

// todoToggledMsg is sent after a todo's completion flag was updated.
type todoToggledMsg struct{ err error }

// todoDeletedMsg is sent after a todo was deleted.
type todoDeletedMsg struct{ err error }

// requestScope owns the context of every backend call made for the current
// session. Logout cancels it and starts a new one.
type requestScope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newRequestScope() *requestScope {
	ctx, cancel := context.WithCancel(context.Background())
	return &requestScope{ctx: ctx, cancel: cancel}
}

// loadSession reads the persisted user id. A corrupt value is deleted.
func (m *Model) loadSession() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		id, ok, err := sess.LoadUserID()
		if errors.Is(err, session.ErrCorrupt) {
			log.Printf("session: discarding stored value: %v", err)
			if err := sess.ClearUserID(); err != nil {
				log.Printf("session: clearing corrupt value: %v", err)
			}
			return sessionLoadedMsg{}
		}
		if err != nil {
			log.Printf("session: reading: %v", err)
			return sessionLoadedMsg{}
		}
		if ok {
			log.Printf("session: restored user %d", id)
		}
		return sessionLoadedMsg{userID: id, ok: ok}
	}
}

// clearSession removes the persisted user id.
func (m *Model) clearSession() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		if err := sess.ClearUserID(); err != nil {
			log.Printf("session: clearing: %v", err)
		}
		return nil
	}
}

// authenticate runs a login or registration. A successful login is
// persisted before the result is reported.
func (m *Model) authenticate(action authscreen.Action, username, password string) tea.Cmd {
	auth, sess, ctx := m.auth, m.session, m.scope.ctx
	return func() tea.Msg {
		if action == authscreen.ActionRegister {
			err := auth.Register(ctx, username, password)
			return authResultMsg{action: action, username: username, err: err}
		}

		id, err := auth.Login(ctx, username, password)
		if err == nil {
			if serr := sess.SaveUserID(id); serr != nil {
				log.Printf("session: saving user %d: %v", id, serr)
			}
		}
		return authResultMsg{action: action, username: username, userID: id, err: err}
	}
}

// currentUserID returns the authenticated user, if any.
func (m *Model) currentUserID() (int64, bool) {
	return model.UserIDOf(m.auth.Snapshot().Identity)
}

// fetchTodos reloads the list of the current user.
func (m *Model) fetchTodos() tea.Cmd {
	userID, ok := m.currentUserID()
	if !ok {
		return nil
	}
	todos, ctx := m.todos, m.scope.ctx
	return func() tea.Msg {
		return todosFetchedMsg{err: todos.FetchTodos(ctx, userID)}
	}
}

// addTodo creates a todo for the current user.
func (m *Model) addTodo(description string) tea.Cmd {
	userID, ok := m.currentUserID()
	if !ok {
		return nil
	}
	todos, ctx := m.todos, m.scope.ctx
	return func() tea.Msg {
		return todoAddedMsg{err: todos.AddTodo(ctx, userID, description)}
	}
}

// toggleTodo sets the completion flag of id.
func (m *Model) toggleTodo(id int64, done bool) tea.Cmd {
	todos, ctx := m.todos, m.scope.ctx
	return func() tea.Msg {
		return todoToggledMsg{err: todos.ToggleTodo(ctx, id, done)}
	}
}

// deleteTodo removes id.
func (m *Model) deleteTodo(id int64) tea.Cmd {
	todos, ctx := m.todos, m.scope.ctx
	return func() tea.Msg {
		return todoDeletedMsg{err: todos.DeleteTodo(ctx, id)}
	}
}
