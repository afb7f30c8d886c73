package vaultgate

import "context"

// Screen defines a public type used by vaultgate APIs.
//
// Screen identifies the single active screen of the orchestration state
// machine. Transitions happen only inside Orchestrator operations; there is
// no way to force a screen from the outside.
type Screen uint8

// Screen states for the orchestration state machine.
const (
	// ScreenLock is an exported constant or variable used by the authentication engine.
	ScreenLock Screen = iota
	// ScreenSetup is an exported constant or variable used by the authentication engine.
	ScreenSetup
	// ScreenAuth is an exported constant or variable used by the authentication engine.
	ScreenAuth
	// ScreenVault is an exported constant or variable used by the authentication engine.
	ScreenVault
)

// String describes the string operation and its observable behavior.
func (s Screen) String() string {
	switch s {
	case ScreenLock:
		return "lock"
	case ScreenSetup:
		return "setup"
	case ScreenAuth:
		return "auth"
	case ScreenVault:
		return "vault"
	default:
		return "unknown"
	}
}

// MethodKind defines a public type used by vaultgate APIs.
//
// MethodKind enumerates the authentication methods the orchestrator can
// track. SystemBiometric is enabled automatically when the device reports
// the capability; the remaining kinds are enabled explicitly during Setup.
type MethodKind uint8

// Method kinds tracked by the orchestrator.
const (
	// MethodSystemBiometric is an exported constant or variable used by the authentication engine.
	MethodSystemBiometric MethodKind = iota
	// MethodPin is an exported constant or variable used by the authentication engine.
	MethodPin
	// MethodPassword is an exported constant or variable used by the authentication engine.
	MethodPassword
	// MethodFace is an exported constant or variable used by the authentication engine.
	MethodFace
	// MethodTOTP is an exported constant or variable used by the authentication engine.
	MethodTOTP

	methodKindCount
)

// methodKinds fixes the iteration order for snapshots and reports.
var methodKinds = [...]MethodKind{
	MethodSystemBiometric,
	MethodPin,
	MethodPassword,
	MethodFace,
	MethodTOTP,
}

// String describes the string operation and its observable behavior.
func (k MethodKind) String() string {
	switch k {
	case MethodSystemBiometric:
		return "system_biometric"
	case MethodPin:
		return "pin"
	case MethodPassword:
		return "password"
	case MethodFace:
		return "face"
	case MethodTOTP:
		return "totp"
	default:
		return "unknown"
	}
}

func validMethodKind(k MethodKind) bool {
	return k < methodKindCount
}

// ChallengeOutcome defines a public type used by vaultgate APIs.
//
// ChallengeOutcome is the tri-state result of a system biometric prompt.
// Failure and Cancelled are both non-fatal: the orchestrator stays on the
// current screen and the caller may retry.
type ChallengeOutcome uint8

// Challenge outcomes reported by a BiometricChallenger.
const (
	// ChallengeSuccess is an exported constant or variable used by the authentication engine.
	ChallengeSuccess ChallengeOutcome = iota
	// ChallengeFailure is an exported constant or variable used by the authentication engine.
	ChallengeFailure
	// ChallengeCancelled is an exported constant or variable used by the authentication engine.
	ChallengeCancelled
)

// Capabilities defines a public type used by vaultgate APIs.
//
// Capabilities instances are intended to be configured during initialization
// and then treated as immutable unless documented otherwise.
type Capabilities struct {
	SystemBiometric bool
	Camera          bool
}

// CapabilityProbe reports what the host device can do. Implementations must
// be side-effect free; the orchestrator caches the answers at build time and
// re-asks only on RefreshCapabilities.
type CapabilityProbe interface {
	SupportsSystemBiometric() bool
	SupportsCamera() bool
}

// BiometricChallenger presents the platform biometric prompt and reports how
// it resolved. A non-nil error is treated as a failed challenge unless ctx
// was cancelled, in which case the operation rolls back as a cancellation.
// The orchestrator blocks on Challenge; implementations must not call back
// into the orchestrator.
type BiometricChallenger interface {
	Challenge(ctx context.Context) (ChallengeOutcome, error)
}

// Camera grants scoped access to the device camera. Open acquires the
// device, Capture reads one frame, and Close releases the device. The
// orchestrator closes every stream it opens, on success, failure, and
// cancellation alike.
type Camera interface {
	Open(ctx context.Context) (CameraStream, error)
}

// CameraStream defines a public type used by vaultgate APIs.
type CameraStream interface {
	Capture(ctx context.Context) ([]byte, error)
	Close() error
}

// FaceMatcher decides whether a captured face sample matches the stored
// reference. Implementations should return nil on a match and an error
// wrapping ErrCredentialMismatch otherwise; any other error is mapped to a
// mismatch by the orchestrator. The default is PresenceMatcher.
type FaceMatcher interface {
	Match(ctx context.Context, captured, reference []byte) error
}

// MethodState defines a public type used by vaultgate APIs.
//
// MethodState instances are intended to be configured during initialization
// and then treated as immutable unless documented otherwise.
type MethodState struct {
	Kind       MethodKind
	Enabled    bool
	Completed  bool
	Configured bool
	Supported  bool
}

// Snapshot is a read-only view of the orchestrator for presentation layers.
// It carries copies only; mutating a Snapshot never touches live state.
type Snapshot struct {
	Screen  Screen
	Methods []MethodState
}

// TOTPEnrollment defines a public type used by vaultgate APIs.
//
// TOTPEnrollment instances are intended to be configured during
// initialization and then treated as immutable unless documented otherwise.
type TOTPEnrollment struct {
	SecretBase32 string
	ProvisionURI string
}
