package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	vaultgate "github.com/MrEthical07/vaultgate"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)

func (m Model) View() string {
	snap := m.orch.Snapshot()

	var sections []string
	sections = append(sections, titleStyle.Render("vaultgate · "+strings.ToUpper(snap.Screen.String())))
	sections = append(sections, "")
	sections = append(sections, m.methodsView(snap))

	if m.enrollment != nil && snap.Screen == vaultgate.ScreenSetup {
		sections = append(sections, "", enrollmentView(m.enrollment))
	}

	if m.focus != focusMenu {
		sections = append(sections, "", m.secret.View())
		if m.needsConfirm() {
			sections = append(sections, m.confirm.View())
		}
	}

	if m.busy {
		sections = append(sections, "", m.spin.View()+" working")
	}
	if m.status != "" {
		sections = append(sections, "", statusStyle.Render(m.status))
	}
	if m.errText != "" {
		sections = append(sections, "", errorStyle.Render(m.errText))
	}

	sections = append(sections, "", helpStyle.Render(helpFor(snap.Screen)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) methodsView(snap vaultgate.Snapshot) string {
	if snap.Screen == vaultgate.ScreenLock {
		return "system locked, a biometric check guards the demo itself"
	}
	if snap.Screen == vaultgate.ScreenVault {
		report := m.orch.PostureReport()
		return vaultView(report)
	}

	lines := make([]string, 0, len(snap.Methods))
	for i, state := range snap.Methods {
		lines = append(lines, methodLine(i+1, state, snap.Screen))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func methodLine(index int, state vaultgate.MethodState, screen vaultgate.Screen) string {
	mark := "[ ]"
	if state.Enabled {
		mark = "[x]"
	}
	line := fmt.Sprintf("%d. %s %-17s", index, mark, state.Kind.String())

	var notes []string
	if !state.Supported {
		notes = append(notes, "unsupported")
	}
	if state.Configured {
		notes = append(notes, "configured")
	}
	if screen == vaultgate.ScreenAuth && state.Enabled {
		if state.Completed {
			notes = append(notes, "done")
		} else {
			notes = append(notes, "pending")
		}
	}
	if len(notes) > 0 {
		line += " " + helpStyle.Render(strings.Join(notes, ", "))
	}
	return line
}

func vaultView(report vaultgate.PostureReport) string {
	enabled := make([]string, 0, len(report.EnabledMethods))
	for _, kind := range report.EnabledMethods {
		enabled = append(enabled, kind.String())
	}
	if len(enabled) == 0 {
		enabled = []string{"none"}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render("vault open"),
		"required methods: "+strings.Join(enabled, ", "),
		helpStyle.Render("credentials stay in plaintext process memory for this demo"),
	)
}

func enrollmentView(e *vaultgate.TOTPEnrollment) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"totp secret: "+e.SecretBase32,
		helpStyle.Render(e.ProvisionURI),
	)
}

func helpFor(screen vaultgate.Screen) string {
	switch screen {
	case vaultgate.ScreenLock:
		return "(enter to unlock, q to quit)"
	case vaultgate.ScreenSetup:
		return "(p pin, w password, f face, t totp, c confirm totp, 1-5 toggle, enter to authenticate, q to quit)"
	case vaultgate.ScreenAuth:
		return "(1 biometric, 2 pin, 3 password, 4 face, 5 totp, esc to cancel)"
	default:
		return "(enter to lock the vault, q to quit)"
	}
}
