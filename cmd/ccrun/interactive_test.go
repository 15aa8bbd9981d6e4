package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func submit(m *interactiveModel, expr string) tea.Cmd {
	m.input.SetValue(expr)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestInteractive_OneEvaluationInFlight(t *testing.T) {
	m := newInteractiveModel(nil)

	if cmd := submit(m, "1 + 1"); cmd == nil {
		t.Fatal("first submission should start an evaluation")
	}
	if !m.compiling {
		t.Fatal("model not marked compiling after submission")
	}

	// The guard admits one session; a submission while an evaluation is in
	// flight must not start a second one.
	if cmd := submit(m, "2 + 2"); cmd != nil {
		t.Fatal("submission during evaluation started a second session")
	}

	m.Update(evalResultMsg{expr: "1 + 1", result: 2})
	if m.compiling {
		t.Fatal("result did not clear the in-flight state")
	}
	if cmd := submit(m, "2 + 2"); cmd == nil {
		t.Fatal("submission after the result should start an evaluation")
	}
}

func TestInteractive_EmptySubmissionIgnored(t *testing.T) {
	m := newInteractiveModel(nil)

	if cmd := submit(m, "   "); cmd != nil {
		t.Fatal("blank submission started an evaluation")
	}
	if m.compiling {
		t.Fatal("blank submission marked the model compiling")
	}
}
