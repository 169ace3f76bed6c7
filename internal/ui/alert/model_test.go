package alert

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestInfoAlertDismissedByEnter(t *testing.T) {
	m := New("OK")
	m.Push(Alert{Level: LevelInfo, Title: "Login successful", Body: "Welcome alice"})

	if !m.Active() {
		t.Fatal("alert not active after Push")
	}
	if view := m.View(); !strings.Contains(view, "Welcome alice") {
		t.Fatalf("view missing body: %q", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if !m.Active() {
		t.Fatal("unrelated key dismissed the alert")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Active() {
		t.Fatal("alert still active after enter")
	}
	var dismissed bool
	for _, msg := range collect(cmd) {
		if _, ok := msg.(DismissedMsg); ok {
			dismissed = true
		}
	}
	if !dismissed {
		t.Fatal("enter did not emit DismissedMsg")
	}
}

func TestAlertsQueueInOrder(t *testing.T) {
	m := New("OK")
	m.Push(Alert{Level: LevelWarning, Title: "first"})
	m.Push(Alert{Level: LevelError, Title: "second"})

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if head, _ := m.Current(); head.Title != "first" {
		t.Fatalf("head = %q, want first", head.Title)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if head, _ := m.Current(); head.Title != "second" {
		t.Fatalf("head after dismiss = %q, want second", head.Title)
	}
}

func TestConfirmEscIsDismissal(t *testing.T) {
	m := New("OK")
	m.Push(Alert{
		Level:       LevelConfirm,
		Title:       "Confirm",
		Body:        "Delete this todo?",
		Tag:         "delete:7",
		Affirmative: "Delete",
		Negative:    "Cancel",
	})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Active() {
		t.Fatal("confirm still active after esc")
	}
	for _, msg := range collect(cmd) {
		if _, ok := msg.(ConfirmedMsg); ok {
			t.Fatal("esc must not confirm")
		}
		if d, ok := msg.(DismissedMsg); ok && d.Tag != "delete:7" {
			t.Fatalf("dismissed tag = %q", d.Tag)
		}
	}
}

func TestPopEmitsConfirmedWithTag(t *testing.T) {
	m := New("OK")
	m.Push(Alert{Level: LevelConfirm, Title: "Confirm", Tag: "delete:3", Affirmative: "Delete", Negative: "Cancel"})

	m, cmd := m.pop(true)
	if m.Active() {
		t.Fatal("queue not empty after pop")
	}
	var got string
	for _, msg := range collect(cmd) {
		if c, ok := msg.(ConfirmedMsg); ok {
			got = c.Tag
		}
	}
	if got != "delete:3" {
		t.Fatalf("confirmed tag = %q, want delete:3", got)
	}
}
