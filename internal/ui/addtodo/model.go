// Package addtodo implements the modal used to create a todo.
package addtodo

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/theme"
)

// SubmitMsg is dispatched when the user confirms a non-empty description.
type SubmitMsg struct {
	Description string
}

// InvalidMsg is dispatched when the description is empty. The modal stays
// open.
type InvalidMsg struct{}

// CancelMsg is dispatched when the user closes the modal.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	description string
	confirm     bool
}

// Model is the Bubble Tea model for the add-todo modal.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model
	saving  bool
	loc     i18n.Localizer
	width   int
	height  int
}

// New creates a new add-todo modal.
func New(loc i18n.Localizer, width, height int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		fb:      &formBindings{confirm: true},
		spinner: s,
		loc:     loc,
		width:   width,
		height:  height,
	}
}

// Start clears the description and opens the form.
func (m *Model) Start() tea.Cmd {
	m.fb.description = ""
	m.saving = false
	return m.rebuild()
}

func (m *Model) rebuild() tea.Cmd {
	m.fb.confirm = true
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSaving shows a spinner while the add request runs.
func (m *Model) SetSaving(saving bool) tea.Cmd {
	m.saving = saving
	if saving {
		return m.spinner.Tick
	}
	return nil
}

// Saving reports whether an add request is running.
func (m Model) Saving() bool {
	return m.saving
}

// Update handles messages for the add-todo modal. A finished form is
// dropped once its result is emitted so later messages cannot resubmit it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.saving {
		if _, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.form == nil {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		result := m.submission()
		if _, invalid := result.(InvalidMsg); invalid {
			return m, tea.Batch(m.rebuild(), func() tea.Msg { return result })
		}
		m.form = nil
		return m, func() tea.Msg { return result }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, cmd
}

// Open reports whether the form is accepting input.
func (m Model) Open() bool {
	return m.form != nil
}

// submission returns the message for the bound values.
func (m Model) submission() tea.Msg {
	if !m.fb.confirm {
		return CancelMsg{}
	}
	desc := strings.TrimSpace(m.fb.description)
	if desc == "" {
		return InvalidMsg{}
	}
	return SubmitMsg{Description: desc}
}

// View renders the modal.
func (m Model) View() string {
	var body string
	switch {
	case m.saving:
		body = m.spinner.View() + " " + m.loc.Sprintf(i18n.KeySaving)
	case m.form != nil:
		body = m.form.View()
	default:
		return ""
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.TitleStyle.Render(m.loc.Sprintf(i18n.KeyAddTodoTitle)),
		body,
	)
	return theme.PanelStyle.Render(content)
}

// SetSize updates the modal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(m.loc.Sprintf(i18n.KeyDescription)).
				Value(&m.fb.description),
			huh.NewConfirm().
				Affirmative(m.loc.Sprintf(i18n.KeyConfirm)).
				Negative(m.loc.Sprintf(i18n.KeyClose)).
				Value(&m.fb.confirm),
		),
	).WithShowHelp(false).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 30 {
		w = 30
	}
	if w > 60 {
		w = 60
	}
	return w
}
