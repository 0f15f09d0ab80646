package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	gwlog "github.com/msto63/gwent/internal/core/log"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(Options{Logger: gwlog.Discard(), HistorySize: 3})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

// submit evaluates input and feeds the result back into the model
func submit(t *testing.T, m Model, input string) Model {
	t.Helper()
	m.remember(input)
	msg := m.evaluate(input)()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestSubmissionsShareScope(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "int a = 40;")
	m = submit(t, m, "a + 2;")

	if len(m.entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(m.entries))
	}
	last := m.entries[1]
	if last.Failed() {
		t.Fatalf("Expected success, got %v", last.Diagnostics)
	}
	if last.Value != "42" {
		t.Errorf("Expected value 42, got %q", last.Value)
	}
}

func TestOutputAndDiagnostics(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "Console.WriteLine(\"hi\");")
	m = submit(t, m, "int x = 1 / 0;")

	if m.entries[0].Output != "hi\n" || m.entries[0].Value != "" {
		t.Errorf("Expected only output for a print call, got %+v", m.entries[0])
	}
	if !m.entries[1].Failed() || !strings.Contains(m.entries[1].Diagnostics[0].String(), "EVAL_DIVISION_BY_ZERO") {
		t.Errorf("Expected division by zero diagnostic, got %v", m.entries[1].Diagnostics)
	}

	content := m.renderContent()
	if !strings.Contains(content, "hi") || !strings.Contains(content, "EVAL_DIVISION_BY_ZERO") {
		t.Errorf("Expected transcript to show output and diagnostic, got:\n%s", content)
	}
}

func TestViewsSwitchWithTab(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "int x = 1;")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.view != ViewTokens || !strings.Contains(m.renderContent(), "EOF") {
		t.Errorf("Expected token view, got view %d", m.view)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.view != ViewAST || !strings.Contains(m.renderContent(), "int x = 1;") {
		t.Errorf("Expected AST view, got view %d", m.view)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if updated.(Model).view != ViewTranscript {
		t.Error("Expected tab to wrap around")
	}
}

func TestHistory(t *testing.T) {
	m := newTestModel(t)
	for _, in := range []string{"a;", "b;", "b;", "c;", "d;"} {
		m.remember(in)
	}
	if len(m.history) != 3 || m.history[0] != "b;" {
		t.Fatalf("Expected capped history [b; c; d;], got %v", m.history)
	}

	m.recall(-1)
	if m.textarea.Value() != "d;" {
		t.Errorf("Expected most recent entry, got %q", m.textarea.Value())
	}
	m.recall(-1)
	m.recall(-1)
	m.recall(-1)
	if m.textarea.Value() != "b;" {
		t.Errorf("Expected oldest entry, got %q", m.textarea.Value())
	}
	m.recall(1)
	m.recall(1)
	m.recall(1)
	if m.textarea.Value() != "" {
		t.Errorf("Expected fresh line after history end, got %q", m.textarea.Value())
	}
}

func TestEnterStartsEvaluation(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("int x = 1;")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.loading || cmd == nil {
		t.Error("Expected enter to start an evaluation")
	}
	if m.textarea.Value() != "" {
		t.Errorf("Expected input to be cleared, got %q", m.textarea.Value())
	}
	if len(m.history) != 1 {
		t.Errorf("Expected input in history, got %v", m.history)
	}
}

func TestViewBeforeReady(t *testing.T) {
	m := NewModel(Options{Logger: gwlog.Discard()})
	if m.View() != "Loading..." {
		t.Errorf("Expected loading text, got %q", m.View())
	}
}
