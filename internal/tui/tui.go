package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	vaultgate "github.com/MrEthical07/vaultgate"
)

type focusArea int

const (
	focusMenu focusArea = iota
	focusSecret
	focusConfirm
)

type pendingAction int

const (
	actionNone pendingAction = iota
	actionEnablePin
	actionEnablePassword
	actionAttemptPin
	actionAttemptPassword
	actionConfirmTOTP
	actionAttemptTOTP
)

// Model drives the four-screen demo journey against one orchestrator.
type Model struct {
	orch        *vaultgate.Orchestrator
	deviceLabel string

	secret  textinput.Model
	confirm textinput.Model
	spin    spinner.Model

	focus  focusArea
	action pendingAction
	busy   bool

	status  string
	errText string

	enrollment *vaultgate.TOTPEnrollment

	width int
}

// New builds the demo model. deviceLabel is stamped into every audit event
// the journey emits.
func New(orch *vaultgate.Orchestrator, deviceLabel string) Model {
	secret := textinput.New()
	secret.CharLimit = 64
	secret.Width = 32
	secret.Cursor.Style = focusedStyle

	confirm := textinput.New()
	confirm.CharLimit = 64
	confirm.Width = 32
	confirm.Cursor.Style = focusedStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusedStyle

	return Model{
		orch:        orch,
		deviceLabel: deviceLabel,
		secret:      secret,
		confirm:     confirm,
		spin:        sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case opDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = ""
			m.errText = msg.label + ": " + msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.status = msg.label + " ok"
		if msg.label == "totp confirm" {
			m.enrollment = nil
		}
		return m, nil

	case enrollmentMsg:
		m.busy = false
		if msg.err != nil {
			m.status = ""
			m.errText = "totp enrollment: " + msg.err.Error()
			return m, nil
		}
		m.enrollment = msg.enrollment
		m.errText = ""
		m.status = "enrollment staged, press c and enter the current code"
		return m, nil

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}
	if m.focus != focusMenu {
		return m.handleInputKey(msg)
	}

	switch m.orch.Screen() {
	case vaultgate.ScreenLock:
		return m.handleLockKey(msg)
	case vaultgate.ScreenSetup:
		return m.handleSetupKey(msg)
	case vaultgate.ScreenAuth:
		return m.handleAuthKey(msg)
	default:
		return m.handleVaultKey(msg)
	}
}

func (m Model) handleLockKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "u":
		return m.startOp(m.runOp("unlock", func(ctx context.Context) error {
			return m.orch.UnlockSystem(ctx)
		}))
	}
	return m, nil
}

func (m Model) handleSetupKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "q":
		return m, tea.Quit
	case "p":
		return m.promptInput(actionEnablePin, "pin", textinput.EchoPassword)
	case "w":
		return m.promptInput(actionEnablePassword, "password", textinput.EchoPassword)
	case "f":
		return m.startOp(m.runOp("enable face", func(ctx context.Context) error {
			return m.orch.EnableFace(ctx)
		}))
	case "t":
		return m.startOp(m.beginEnrollment())
	case "c":
		if m.enrollment == nil {
			m.errText = "no totp enrollment staged"
			return m, nil
		}
		return m.promptInput(actionConfirmTOTP, "totp code", textinput.EchoNormal)
	case "a", "enter":
		return m.startOp(m.runOp("begin authentication", func(ctx context.Context) error {
			return m.orch.BeginAuthentication(ctx)
		}))
	case "1", "2", "3", "4", "5":
		methods := m.orch.Snapshot().Methods
		idx := int(s[0] - '1')
		if idx >= len(methods) {
			return m, nil
		}
		return m.startOp(m.toggleMethod(methods[idx]))
	}
	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.startOp(m.runOp("cancel authentication", func(ctx context.Context) error {
			return m.orch.CancelAuthentication(ctx)
		}))
	case "1":
		return m.startOp(m.runOp("biometric attempt", func(ctx context.Context) error {
			return m.orch.AttemptBiometric(ctx)
		}))
	case "2":
		return m.promptInput(actionAttemptPin, "pin", textinput.EchoPassword)
	case "3":
		return m.promptInput(actionAttemptPassword, "password", textinput.EchoPassword)
	case "4":
		return m.startOp(m.runOp("face attempt", func(ctx context.Context) error {
			return m.orch.AttemptFace(ctx)
		}))
	case "5":
		return m.promptInput(actionAttemptTOTP, "totp code", textinput.EchoNormal)
	}
	return m, nil
}

func (m Model) handleVaultKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "l":
		return m.startOp(m.runOp("lock vault", func(ctx context.Context) error {
			return m.orch.LockVault(ctx)
		}))
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.resetInputs(), nil
	case "enter":
		return m.submitInput()
	case "tab", "shift+tab":
		if !m.needsConfirm() {
			return m, nil
		}
		if m.focus == focusSecret {
			m.focus = focusConfirm
			m.secret.Blur()
			return m, m.confirm.Focus()
		}
		m.focus = focusSecret
		m.confirm.Blur()
		return m, m.secret.Focus()
	}

	var cmd tea.Cmd
	if m.focus == focusConfirm {
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	m.secret, cmd = m.secret.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (Model, tea.Cmd) {
	// Two-field prompts advance from secret to confirmation first.
	if m.needsConfirm() && m.focus == focusSecret {
		m.focus = focusConfirm
		m.secret.Blur()
		return m, m.confirm.Focus()
	}

	secret := m.secret.Value()
	confirm := m.confirm.Value()
	action := m.action
	orch := m.orch

	next := m.resetInputs()

	switch action {
	case actionEnablePin:
		return next.startOp(next.runOp("enable pin", func(ctx context.Context) error {
			return orch.EnablePin(ctx, secret, confirm)
		}))
	case actionEnablePassword:
		return next.startOp(next.runOp("enable password", func(ctx context.Context) error {
			return orch.EnablePassword(ctx, secret, confirm)
		}))
	case actionAttemptPin:
		return next.startOp(next.runOp("pin attempt", func(ctx context.Context) error {
			return orch.AttemptPin(ctx, secret)
		}))
	case actionAttemptPassword:
		return next.startOp(next.runOp("password attempt", func(ctx context.Context) error {
			return orch.AttemptPassword(ctx, secret)
		}))
	case actionConfirmTOTP:
		return next.startOp(next.runOp("totp confirm", func(ctx context.Context) error {
			return orch.ConfirmTOTPEnrollment(ctx, secret)
		}))
	case actionAttemptTOTP:
		return next.startOp(next.runOp("totp attempt", func(ctx context.Context) error {
			return orch.AttemptTOTP(ctx, secret)
		}))
	}
	return next, nil
}

func (m Model) startOp(cmd tea.Cmd) (Model, tea.Cmd) {
	m.busy = true
	m.status = ""
	m.errText = ""
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m Model) promptInput(action pendingAction, label string, echo textinput.EchoMode) (Model, tea.Cmd) {
	m.action = action
	m.status = ""
	m.errText = ""
	m.secret.Reset()
	m.confirm.Reset()
	m.secret.Prompt = label + ": "
	m.secret.EchoMode = echo
	m.secret.EchoCharacter = '•'
	m.confirm.Prompt = "confirm: "
	m.confirm.EchoMode = echo
	m.confirm.EchoCharacter = '•'
	m.confirm.Blur()
	m.focus = focusSecret
	return m, m.secret.Focus()
}

func (m Model) resetInputs() Model {
	m.focus = focusMenu
	m.action = actionNone
	m.secret.Reset()
	m.confirm.Reset()
	m.secret.Blur()
	m.confirm.Blur()
	return m
}

func (m Model) needsConfirm() bool {
	return m.action == actionEnablePin || m.action == actionEnablePassword
}
