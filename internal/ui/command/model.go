package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/theme"
)

// Commands understood by the palette.
const (
	Logout  = "logout"
	Refresh = "refresh"
	Add     = "add"
	Help    = "help"
	Quit    = "quit"
)

// Commands lists every palette command in suggestion order.
var Commands = []string{Add, Refresh, Logout, Help, Quit}

// aliases maps shorthand input to a command.
var aliases = map[string]string{
	"q":       Quit,
	"exit":    Quit,
	"new":     Add,
	"sync":    Refresh,
	"signout": Logout,
	"?":       Help,
}

// CommandMsg is emitted when the user executes a known command.
type CommandMsg string

// CancelMsg is emitted when the palette is dismissed with esc.
type CancelMsg struct{}

// Resolve maps raw input to a command name. ok is false for unknown input.
func Resolve(input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if cmd, ok := aliases[input]; ok {
		return cmd, true
	}
	for _, cmd := range Commands {
		if cmd == input {
			return cmd, true
		}
	}
	return "", false
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	title  string
	width  int
	height int
}

// New creates a new command palette model.
func New(loc i18n.Localizer, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = strings.Join(Commands, " | ")
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Commands)
	ti.Width = width - 6

	return Model{
		input:  ti,
		title:  loc.Sprintf(i18n.KeyPaletteTitle),
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			raw := m.input.Value()
			m.input.Reset()
			if cmd, ok := Resolve(raw); ok {
				return m, func() tea.Msg { return CommandMsg(cmd) }
			}
			return m, nil
		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.TitleStyle.Render(m.title),
		m.input.View(),
	)

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
