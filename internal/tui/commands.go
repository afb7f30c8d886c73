package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	vaultgate "github.com/MrEthical07/vaultgate"
)

// A message to signal that an orchestrator operation finished.
type opDoneMsg struct {
	label string
	err   error
}

// A message carrying the result of staging a TOTP enrollment.
type enrollmentMsg struct {
	enrollment *vaultgate.TOTPEnrollment
	err        error
}

func (m Model) opCtx() context.Context {
	ctx := vaultgate.WithDeviceLabel(context.Background(), m.deviceLabel)
	return vaultgate.WithPresentationID(ctx, "tui")
}

// runOp wraps an orchestrator call in a command so Update stays non-blocking.
func (m Model) runOp(label string, fn func(context.Context) error) tea.Cmd {
	ctx := m.opCtx()
	return func() tea.Msg {
		return opDoneMsg{label: label, err: fn(ctx)}
	}
}

func (m Model) beginEnrollment() tea.Cmd {
	ctx := m.opCtx()
	orch := m.orch
	return func() tea.Msg {
		enrollment, err := orch.BeginTOTPEnrollment(ctx)
		return enrollmentMsg{enrollment: enrollment, err: err}
	}
}

// toggleMethod disables an enabled method and re-enables a disabled one.
func (m Model) toggleMethod(state vaultgate.MethodState) tea.Cmd {
	kind := state.Kind
	orch := m.orch
	if state.Enabled {
		return m.runOp("disable "+kind.String(), func(ctx context.Context) error {
			return orch.DisableMethod(ctx, kind)
		})
	}
	return m.runOp("re-enable "+kind.String(), func(ctx context.Context) error {
		return orch.ReenableMethod(ctx, kind)
	})
}
