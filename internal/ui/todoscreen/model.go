// Package todoscreen renders the todo list of the logged-in user.
package todoscreen

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/keys"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/theme"
)

// AddRequestMsg asks the app to open the add-todo modal.
type AddRequestMsg struct{}

// ToggleRequestMsg asks the app to set the completion flag of a todo.
type ToggleRequestMsg struct {
	ID   int64
	Done bool
}

// DeleteRequestMsg asks the app to confirm and delete a todo.
type DeleteRequestMsg struct {
	ID int64
}

// RefreshRequestMsg asks the app to refetch the list.
type RefreshRequestMsg struct{}

// LogoutRequestMsg asks the app to end the session.
type LogoutRequestMsg struct{}

// Model is the todo list view component.
type Model struct {
	list    list.Model
	keys    *keys.KeyMap
	spinner spinner.Model
	loading bool
	loc     i18n.Localizer
	width   int
	height  int
}

// New creates a new todo list model.
func New(k *keys.KeyMap, loc i18n.Localizer, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = loc.Sprintf(i18n.KeyTodosTitle)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle
	// Quitting and help are owned by the app.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		list:    l,
		keys:    k,
		spinner: s,
		loc:     loc,
		width:   width,
		height:  height,
	}
}

// SetTodos replaces the rendered items, keeping the cursor in range.
func (m *Model) SetTodos(todos []model.Todo) tea.Cmd {
	items := make([]list.Item, len(todos))
	for i, todo := range todos {
		items[i] = TodoItem{Todo: todo}
	}
	cmd := m.list.SetItems(items)
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
	return cmd
}

// Todos returns the rendered todos in display order.
func (m Model) Todos() []model.Todo {
	items := m.list.Items()
	out := make([]model.Todo, 0, len(items))
	for _, it := range items {
		if ti, ok := it.(TodoItem); ok {
			out = append(out, ti.Todo)
		}
	}
	return out
}

// SetLoading shows or hides the spinner.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	wasLoading := m.loading
	m.loading = loading
	if loading && !wasLoading {
		return m.spinner.Tick
	}
	return nil
}

// Selected returns the todo under the cursor.
func (m Model) Selected() (model.Todo, bool) {
	ti, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return ti.Todo, true
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		return m, emit(AddRequestMsg{})

	case key.Matches(msg, m.keys.Toggle):
		todo, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, emit(ToggleRequestMsg{ID: todo.ID, Done: !todo.IsDone})

	case key.Matches(msg, m.keys.Delete):
		todo, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, emit(DeleteRequestMsg{ID: todo.ID})

	case key.Matches(msg, m.keys.Refresh):
		return m, emit(RefreshRequestMsg{})

	case key.Matches(msg, m.keys.Logout):
		return m, emit(LogoutRequestMsg{})
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the todo list view.
func (m Model) View() string {
	var status string
	if m.loading {
		status = m.spinner.View() + " " + m.loc.Sprintf(i18n.KeyLoading)
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			theme.HeaderStyle.Render(m.list.Title),
			status,
			m.renderEmptyState(),
		)
	}

	if status == "" {
		return m.list.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.list.View())
}

// renderEmptyState shows the placeholder when the user has no todos.
func (m Model) renderEmptyState() string {
	return theme.EmptyStyle.
		Width(m.width).
		Height(max(m.height-2, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(m.loc.Sprintf(i18n.KeyTodosEmpty))
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-1)
}
