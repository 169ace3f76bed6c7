// Package authscreen renders the login and registration form.
package authscreen

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/theme"
)

// Action is what the user asked for when submitting the form.
type Action int

const (
	ActionLogin Action = iota
	ActionRegister
)

// SubmitMsg carries validated credentials. Username is trimmed; Password is
// passed through as typed.
type SubmitMsg struct {
	Action   Action
	Username string
	Password string
}

// InvalidMsg is dispatched when the form is submitted with an empty field.
type InvalidMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	password string
	login    bool
}

// Model is the Bubble Tea model of the authentication screen.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model
	loading bool
	loc     i18n.Localizer
	width   int
	height  int
}

// New creates the authentication screen.
func New(loc i18n.Localizer, width, height int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	m := Model{
		fb:      &formBindings{login: true},
		spinner: s,
		loc:     loc,
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Reset rebuilds the form. The username is kept; the password is cleared
// when clearPassword is set.
func (m *Model) Reset(clearPassword bool) tea.Cmd {
	if clearPassword {
		m.fb.password = ""
	}
	m.fb.login = true
	m.form = m.buildForm()
	return m.form.Init()
}

// SetLoading disables input and shows a spinner while a request is running.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// Loading reports whether input is disabled.
func (m Model) Loading() bool {
	return m.loading
}

// Update handles messages for the authentication screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.loading {
		if _, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		// Controls are disabled while a request is in flight.
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, nil
		}
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, m.Reset(false)
	}
	return m, cmd
}

func (m *Model) handleSubmit() tea.Cmd {
	result := m.submission()
	return tea.Batch(m.Reset(false), func() tea.Msg { return result })
}

// submission validates the bound values and returns the message to emit.
func (m Model) submission() tea.Msg {
	username := strings.TrimSpace(m.fb.username)
	password := m.fb.password
	if username == "" || strings.TrimSpace(password) == "" {
		return InvalidMsg{}
	}
	action := ActionRegister
	if m.fb.login {
		action = ActionLogin
	}
	return SubmitMsg{Action: action, Username: username, Password: password}
}

// View renders the authentication screen.
func (m Model) View() string {
	title := theme.TitleStyle.Render(m.loc.Sprintf(i18n.KeyAppTitle))

	var body string
	if m.loading {
		body = m.spinner.View() + " " + m.loc.Sprintf(i18n.KeyLoading)
	} else {
		body = m.form.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		theme.PanelStyle.Width(m.formWidth()+4).Render(content),
	)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(m.loc.Sprintf(i18n.KeyUsername)).
				Value(&m.fb.username),
			huh.NewInput().
				Title(m.loc.Sprintf(i18n.KeyPassword)).
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
			huh.NewConfirm().
				Affirmative(m.loc.Sprintf(i18n.KeyLogin)).
				Negative(m.loc.Sprintf(i18n.KeyRegister)).
				Value(&m.fb.login),
		),
	).WithShowHelp(false).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 30 {
		w = 30
	}
	if w > 50 {
		w = 50
	}
	return w
}
