package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	vaultgate "github.com/MrEthical07/vaultgate"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	orch, err := vaultgate.New().
		WithCapabilityProbe(vaultgate.StaticProbe{}).
		Build()
	if err != nil {
		t.Fatalf("build orchestrator: %v", err)
	}
	t.Cleanup(orch.Close)
	return New(orch, "test-device")
}

// drive runs one key press and then delivers whatever op message the
// resulting command produces, the way a running program would.
func drive(t *testing.T, m Model, key string) Model {
	t.Helper()
	next, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	m = next
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if inner := c(); inner != nil {
				m = deliver(t, m, inner)
			}
		}
		return m
	}
	return deliver(t, m, msg)
}

func deliver(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	switch msg.(type) {
	case opDoneMsg, enrollmentMsg:
		updated, _ := m.Update(msg)
		return updated.(Model)
	default:
		return m
	}
}

func pressEnter(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if inner := c(); inner != nil {
				m = deliver(t, m, inner)
			}
		}
		return m
	}
	return deliver(t, m, msg)
}

func TestUnlockWithoutBiometricReachesSetup(t *testing.T) {
	m := newTestModel(t)

	m = pressEnter(t, m)

	if got := m.orch.Screen(); got != vaultgate.ScreenSetup {
		t.Fatalf("screen after unlock = %v, want setup", got)
	}
	if m.errText != "" {
		t.Fatalf("unexpected error text: %q", m.errText)
	}
}

func TestPinPromptEnablesMethod(t *testing.T) {
	m := newTestModel(t)
	m = pressEnter(t, m)

	m = drive(t, m, "p")
	if m.focus != focusSecret {
		t.Fatalf("focus after p = %v, want secret input", m.focus)
	}

	m.secret.SetValue("1234")
	m = pressEnter(t, m)
	if m.focus != focusConfirm {
		t.Fatalf("focus after first enter = %v, want confirm input", m.focus)
	}

	m.confirm.SetValue("1234")
	m = pressEnter(t, m)

	if m.errText != "" {
		t.Fatalf("unexpected error text: %q", m.errText)
	}
	snap := m.orch.Snapshot()
	for _, state := range snap.Methods {
		if state.Kind == vaultgate.MethodPin && !state.Enabled {
			t.Fatal("pin should be enabled after prompt submit")
		}
	}
}

func TestMismatchedConfirmationSurfacesError(t *testing.T) {
	m := newTestModel(t)
	m = pressEnter(t, m)

	m = drive(t, m, "p")
	m.secret.SetValue("1234")
	m = pressEnter(t, m)
	m.confirm.SetValue("9999")
	m = pressEnter(t, m)

	if m.errText == "" {
		t.Fatal("expected error text for mismatched confirmation")
	}
	if !strings.Contains(m.errText, "enable pin") {
		t.Fatalf("error text should name the operation, got %q", m.errText)
	}
}

func TestEscapeCancelsAuthentication(t *testing.T) {
	m := newTestModel(t)
	m = pressEnter(t, m)

	m = drive(t, m, "p")
	m.secret.SetValue("1234")
	m = pressEnter(t, m)
	m.confirm.SetValue("1234")
	m = pressEnter(t, m)

	// Enter begins authentication from setup.
	m = pressEnter(t, m)
	if got := m.orch.Screen(); got != vaultgate.ScreenAuth {
		t.Fatalf("screen = %v, want auth", got)
	}

	next, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = next
	if cmd == nil {
		t.Fatal("esc on auth should produce a command")
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if inner := c(); inner != nil {
				m = deliver(t, m, inner)
			}
		}
	}

	if got := m.orch.Screen(); got != vaultgate.ScreenSetup {
		t.Fatalf("screen after esc = %v, want setup", got)
	}
}

func TestMethodLineShowsProgressOnAuth(t *testing.T) {
	line := methodLine(2, vaultgate.MethodState{
		Kind:       vaultgate.MethodPin,
		Enabled:    true,
		Completed:  false,
		Configured: true,
		Supported:  true,
	}, vaultgate.ScreenAuth)

	if !strings.Contains(line, "pin") {
		t.Fatalf("line should name the method, got %q", line)
	}
	if !strings.Contains(line, "pending") {
		t.Fatalf("line should mark incomplete methods pending, got %q", line)
	}
}

func TestViewRendersWithoutPanicOnEveryScreen(t *testing.T) {
	m := newTestModel(t)
	if out := m.View(); !strings.Contains(out, "LOCK") {
		t.Fatalf("lock view missing title, got:\n%s", out)
	}

	m = pressEnter(t, m)
	if out := m.View(); !strings.Contains(out, "SETUP") {
		t.Fatalf("setup view missing title, got:\n%s", out)
	}
}
