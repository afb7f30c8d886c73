package internaldefs

import (
	vaultgate "github.com/MrEthical07/vaultgate"
)

// CounterDef defines a public type used by vaultgate APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   vaultgate.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by vaultgate APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   vaultgate.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication orchestrator.
var CounterDefs = []CounterDef{
	{ID: vaultgate.MetricUnlockSuccess, Name: "vaultgate_unlock_success_total", Help: "Successful system unlock challenges."},
	{ID: vaultgate.MetricUnlockImplicit, Name: "vaultgate_unlock_implicit_total", Help: "Implicit unlocks on devices without a system biometric."},
	{ID: vaultgate.MetricUnlockFailure, Name: "vaultgate_unlock_failure_total", Help: "Failed system unlock challenges."},
	{ID: vaultgate.MetricSetupFailure, Name: "vaultgate_setup_failure_total", Help: "Failed method setup operations."},
	{ID: vaultgate.MetricMethodEnabled, Name: "vaultgate_method_enabled_total", Help: "Method enable operations."},
	{ID: vaultgate.MetricMethodDisabled, Name: "vaultgate_method_disabled_total", Help: "Method disable operations."},
	{ID: vaultgate.MetricMethodReenabled, Name: "vaultgate_method_reenabled_total", Help: "Methods re-enabled from retained credentials."},
	{ID: vaultgate.MetricAuthStarted, Name: "vaultgate_auth_started_total", Help: "Authentication attempts started."},
	{ID: vaultgate.MetricAuthCancelled, Name: "vaultgate_auth_cancelled_total", Help: "Authentication attempts cancelled."},
	{ID: vaultgate.MetricAttemptSuccess, Name: "vaultgate_attempt_success_total", Help: "Successful method attempts."},
	{ID: vaultgate.MetricAttemptFailure, Name: "vaultgate_attempt_failure_total", Help: "Failed method attempts."},
	{ID: vaultgate.MetricAttemptRejected, Name: "vaultgate_attempt_rejected_total", Help: "Method attempts rejected before any credential check."},
	{ID: vaultgate.MetricVaultUnlocked, Name: "vaultgate_vault_unlocked_total", Help: "Completion gate passes into the vault."},
	{ID: vaultgate.MetricVaultLocked, Name: "vaultgate_vault_locked_total", Help: "Vault lock operations."},
	{ID: vaultgate.MetricCameraAcquired, Name: "vaultgate_camera_acquired_total", Help: "Camera streams opened."},
	{ID: vaultgate.MetricCameraReleased, Name: "vaultgate_camera_released_total", Help: "Camera streams closed."},
	{ID: vaultgate.MetricTOTPEnrollmentStarted, Name: "vaultgate_totp_enrollment_started_total", Help: "TOTP enrollments staged."},
	{ID: vaultgate.MetricTOTPEnrollmentConfirmed, Name: "vaultgate_totp_enrollment_confirmed_total", Help: "TOTP enrollments confirmed and committed."},
}

// HistogramDefs is an exported constant or variable used by the authentication orchestrator.
var HistogramDefs = []HistogramDef{
	{ID: vaultgate.MetricCollaboratorLatency, Name: "vaultgate_collaborator_latency_seconds", Help: "Collaborator call latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication orchestrator.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication orchestrator.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
