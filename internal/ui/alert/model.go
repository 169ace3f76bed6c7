// Package alert implements blocking modal notices and confirmations. While
// an alert is shown it receives every key; other views see nothing until it
// is dismissed.
package alert

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolist/internal/theme"
)

// Level selects the frame and behavior of an alert.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelConfirm Level = "confirm"
)

// Alert is a single modal. Tag identifies a confirmation in ConfirmedMsg.
type Alert struct {
	Level       Level
	Title       string
	Body        string
	Tag         string
	Affirmative string
	Negative    string
}

// ConfirmedMsg is emitted when the user accepts a confirmation.
type ConfirmedMsg struct {
	Tag string
}

// DismissedMsg is emitted when an alert closes without confirmation.
type DismissedMsg struct {
	Tag string
}

// formBindings holds the confirm value on the heap so that huh's Value()
// pointer remains valid across Bubble Tea model copies.
type formBindings struct {
	confirm bool
}

// Model is a FIFO queue of alerts; the head is the one shown.
type Model struct {
	queue  []Alert
	form   *huh.Form
	fb     *formBindings
	okText string
	width  int
}

// New creates an empty alert queue. okText labels the dismiss hint.
func New(okText string) Model {
	return Model{fb: &formBindings{}, okText: okText, width: 60}
}

// Active reports whether an alert is being shown.
func (m Model) Active() bool {
	return len(m.queue) > 0
}

// Current returns the alert being shown.
func (m Model) Current() (Alert, bool) {
	if len(m.queue) == 0 {
		return Alert{}, false
	}
	return m.queue[0], true
}

// Len returns the number of queued alerts, including the one shown.
func (m Model) Len() int {
	return len(m.queue)
}

// Push queues a. The returned command initializes a confirmation form when
// a becomes the visible alert.
func (m *Model) Push(a Alert) tea.Cmd {
	m.queue = append(m.queue, a)
	if len(m.queue) == 1 {
		return m.activate()
	}
	return nil
}

func (m *Model) activate() tea.Cmd {
	m.form = nil
	head, ok := m.Current()
	if !ok || head.Level != LevelConfirm {
		return nil
	}
	m.fb.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(head.Title).
				Description(head.Body).
				Affirmative(head.Affirmative).
				Negative(head.Negative).
				Value(&m.fb.confirm),
		),
	).WithShowHelp(false).WithWidth(m.formWidth())
	return m.form.Init()
}

// pop removes the head and emits the result message for it.
func (m Model) pop(confirmed bool) (Model, tea.Cmd) {
	head := m.queue[0]
	m.queue = m.queue[1:]
	next := m.activate()

	result := func() tea.Msg {
		if confirmed {
			return ConfirmedMsg{Tag: head.Tag}
		}
		return DismissedMsg{Tag: head.Tag}
	}
	return m, tea.Batch(result, next)
}

// Update handles keys for the visible alert.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	head, ok := m.Current()
	if !ok {
		return m, nil
	}

	if head.Level != LevelConfirm {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "enter", "esc", " ":
				return m.pop(false)
			}
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m.pop(false)
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m.pop(m.fb.confirm)
	case huh.StateAborted:
		return m.pop(false)
	}
	return m, cmd
}

// View renders the visible alert, or nothing.
func (m Model) View() string {
	head, ok := m.Current()
	if !ok {
		return ""
	}

	level := string(head.Level)
	if head.Level == LevelConfirm && m.form != nil {
		return theme.AlertStyle(level).Render(m.form.View())
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.AlertTitleStyle(level).Render(head.Title),
		lipgloss.NewStyle().Width(m.formWidth()).Render(head.Body),
		"",
		theme.HelpStyle.Render("enter "+m.okText),
	)
	return theme.AlertStyle(level).Render(content)
}

// SetSize updates the modal width.
func (m *Model) SetSize(width, height int) {
	m.width = width
}

func (m Model) formWidth() int {
	w := m.width / 2
	if w < 30 {
		w = 30
	}
	if w > 60 {
		w = 60
	}
	return w
}
