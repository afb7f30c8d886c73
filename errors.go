package vaultgate

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by an Orchestrator operation wraps
// exactly one of these four sentinels, so callers can classify with
// errors.Is without matching on the more specific variants below.
var (
	// ErrValidation is an exported constant or variable used by the authentication engine.
	ErrValidation = errors.New("validation failed")
	// ErrCredentialMismatch is an exported constant or variable used by the authentication engine.
	ErrCredentialMismatch = errors.New("credential mismatch")
	// ErrCapabilityDenied is an exported constant or variable used by the authentication engine.
	ErrCapabilityDenied = errors.New("capability denied")
	// ErrCancelled is an exported constant or variable used by the authentication engine.
	ErrCancelled = errors.New("operation cancelled")
)

// Validation variants.
var (
	// ErrPinTooShort is an exported constant or variable used by the authentication engine.
	ErrPinTooShort = fmt.Errorf("%w: pin shorter than configured minimum", ErrValidation)
	// ErrPinNotNumeric is an exported constant or variable used by the authentication engine.
	ErrPinNotNumeric = fmt.Errorf("%w: pin must contain digits only", ErrValidation)
	// ErrPasswordTooShort is an exported constant or variable used by the authentication engine.
	ErrPasswordTooShort = fmt.Errorf("%w: password shorter than configured minimum", ErrValidation)
	// ErrConfirmationMismatch is an exported constant or variable used by the authentication engine.
	ErrConfirmationMismatch = fmt.Errorf("%w: secret and confirmation differ", ErrValidation)
	// ErrSampleTooLarge is an exported constant or variable used by the authentication engine.
	ErrSampleTooLarge = fmt.Errorf("%w: face sample exceeds configured limit", ErrValidation)
)

// Capability variants.
var (
	// ErrBiometricUnavailable is an exported constant or variable used by the authentication engine.
	ErrBiometricUnavailable = fmt.Errorf("%w: system biometric not available on this device", ErrCapabilityDenied)
	// ErrCameraUnavailable is an exported constant or variable used by the authentication engine.
	ErrCameraUnavailable = fmt.Errorf("%w: camera not available on this device", ErrCapabilityDenied)
)

// Credential variants.
var (
	// ErrChallengeFailed is an exported constant or variable used by the authentication engine.
	ErrChallengeFailed = fmt.Errorf("%w: system biometric challenge failed", ErrCredentialMismatch)
	// ErrFaceRejected is an exported constant or variable used by the authentication engine.
	ErrFaceRejected = fmt.Errorf("%w: face sample rejected", ErrCredentialMismatch)
	// ErrTOTPCodeInvalid is an exported constant or variable used by the authentication engine.
	ErrTOTPCodeInvalid = fmt.Errorf("%w: totp code rejected", ErrCredentialMismatch)
)

// Cancellation variants.
var (
	// ErrChallengeDismissed is an exported constant or variable used by the authentication engine.
	ErrChallengeDismissed = fmt.Errorf("%w: system biometric challenge dismissed", ErrCancelled)
)

// Orchestration errors. These do not wrap an error kind; they signal
// misuse of the state machine rather than a failed authentication step.
var (
	// ErrOrchestratorNotReady is an exported constant or variable used by the authentication engine.
	ErrOrchestratorNotReady = errors.New("orchestrator not initialized")
	// ErrScreenMismatch is an exported constant or variable used by the authentication engine.
	ErrScreenMismatch = errors.New("operation not valid on current screen")
	// ErrMethodNotEnabled is an exported constant or variable used by the authentication engine.
	ErrMethodNotEnabled = errors.New("method not enabled")
	// ErrMethodCompleted is an exported constant or variable used by the authentication engine.
	ErrMethodCompleted = errors.New("method already completed for this attempt")
	// ErrMethodNotConfigured is an exported constant or variable used by the authentication engine.
	ErrMethodNotConfigured = errors.New("method has no stored credential")
	// ErrMethodUnknown is an exported constant or variable used by the authentication engine.
	ErrMethodUnknown = errors.New("unknown method kind")
	// ErrCaptureFailed is an exported constant or variable used by the authentication engine.
	ErrCaptureFailed = errors.New("camera capture failed")
	// ErrTOTPDisabled is an exported constant or variable used by the authentication engine.
	ErrTOTPDisabled = errors.New("totp factor disabled by configuration")
	// ErrTOTPUnavailable is an exported constant or variable used by the authentication engine.
	ErrTOTPUnavailable = errors.New("totp subsystem unavailable")
	// ErrEnrollmentNotStaged is an exported constant or variable used by the authentication engine.
	ErrEnrollmentNotStaged = errors.New("totp enrollment not started")
)
