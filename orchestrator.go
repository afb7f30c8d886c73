package vaultgate

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MrEthical07/vaultgate/internal"
)

// Orchestrator defines a public type used by vaultgate APIs.
//
// Orchestrator instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// Operations serialize on an internal mutex, so the orchestrator behaves as
// a single logical thread: one operation runs to completion, including the
// collaborator call it blocks on, before the next begins. State is never
// mutated before the collaborator resolves. Collaborators are invoked with
// the mutex held and must not call back into the orchestrator.
type Orchestrator struct {
	mu sync.Mutex

	config      Config
	probe       CapabilityProbe
	challenger  BiometricChallenger
	camera      Camera
	faceMatcher FaceMatcher
	totp        *totpManager
	registry    *methodRegistry
	credentials *credentialStore
	audit       *auditDispatcher
	metrics     *Metrics

	screen       Screen
	caps         Capabilities
	attemptID    string
	stagedSecret string
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) Close() {
	if o == nil {
		return
	}
	if o.audit != nil {
		o.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) AuditDropped() uint64 {
	if o == nil || o.audit == nil {
		return 0
	}
	return o.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) MetricsSnapshot() MetricsSnapshot {
	if o == nil || o.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return o.metrics.Snapshot()
}

func (o *Orchestrator) metricInc(id MetricID) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.Inc(id)
}

func (o *Orchestrator) metricObserve(id MetricID, d time.Duration) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.Observe(id, d)
}

// Screen describes the screen operation and its observable behavior.
//
// Screen may return an error when input validation, dependency calls, or security checks fail.
// Screen does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) Screen() Screen {
	if o == nil || o.registry == nil {
		return ScreenLock
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.screen
}

// Capabilities describes the capabilities operation and its observable behavior.
//
// Capabilities may return an error when input validation, dependency calls, or security checks fail.
// Capabilities does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) Capabilities() Capabilities {
	if o == nil || o.registry == nil {
		return Capabilities{}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.caps
}

// RefreshCapabilities re-asks the probe and replaces the cached capability
// answers. Enabled methods are left alone: a method that lost its backing
// capability stays enabled until it is explicitly disabled, and attempts on
// it fail with a capability error instead of silently vanishing.
func (o *Orchestrator) RefreshCapabilities(ctx context.Context) Capabilities {
	if o == nil || o.registry == nil {
		return Capabilities{}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.caps = probeCapabilities(o.probe)
	o.emitAudit(ctx, auditEventCapabilitiesRefreshed, true, "", nil, func() map[string]string {
		return map[string]string{
			"system_biometric": strconv.FormatBool(o.caps.SystemBiometric),
			"camera":           strconv.FormatBool(o.caps.Camera),
		}
	})
	return o.caps
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot may return an error when input validation, dependency calls, or security checks fail.
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) Snapshot() Snapshot {
	if o == nil || o.registry == nil {
		return Snapshot{}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	methods := make([]MethodState, 0, len(methodKinds))
	for _, kind := range methodKinds {
		methods = append(methods, MethodState{
			Kind:       kind,
			Enabled:    o.registry.isEnabled(kind),
			Completed:  o.registry.isCompleted(kind),
			Configured: o.credentials.configured(kind),
			Supported:  o.kindSupported(kind),
		})
	}
	return Snapshot{
		Screen:  o.screen,
		Methods: methods,
	}
}

func (o *Orchestrator) kindSupported(kind MethodKind) bool {
	switch kind {
	case MethodSystemBiometric:
		return o.caps.SystemBiometric
	case MethodFace:
		return o.caps.Camera
	case MethodTOTP:
		return o.config.TOTP.Enabled
	default:
		return true
	}
}

// UnlockSystem describes the unlocksystem operation and its observable behavior.
//
// UnlockSystem may return an error when input validation, dependency calls, or security checks fail.
// UnlockSystem does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) UnlockSystem(ctx context.Context) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenLock {
		return ErrScreenMismatch
	}

	if !o.caps.SystemBiometric {
		// Devices without a system biometric pass the gate implicitly.
		// The challenger is never consulted on this path.
		o.screen = ScreenSetup
		o.metricInc(MetricUnlockImplicit)
		o.emitAudit(ctx, auditEventUnlockImplicit, true, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "no_biometric_capability",
			}
		})
		return nil
	}

	if o.challenger == nil {
		return ErrOrchestratorNotReady
	}

	switch o.runChallenge(ctx) {
	case ChallengeSuccess:
		o.screen = ScreenSetup
		o.metricInc(MetricUnlockSuccess)
		o.emitAudit(ctx, auditEventUnlockSuccess, true, MethodSystemBiometric.String(), nil, nil)
		return nil
	case ChallengeCancelled:
		o.emitAudit(ctx, auditEventUnlockFailure, false, MethodSystemBiometric.String(), ErrChallengeDismissed, func() map[string]string {
			return map[string]string{
				"reason": "challenge_dismissed",
			}
		})
		return ErrChallengeDismissed
	default:
		o.metricInc(MetricUnlockFailure)
		o.emitAudit(ctx, auditEventUnlockFailure, false, MethodSystemBiometric.String(), ErrChallengeFailed, func() map[string]string {
			return map[string]string{
				"reason": "challenge_failed",
			}
		})
		return ErrChallengeFailed
	}
}

// BeginAuthentication describes the beginauthentication operation and its observable behavior.
//
// BeginAuthentication may return an error when input validation, dependency calls, or security checks fail.
// BeginAuthentication does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) BeginAuthentication(ctx context.Context) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return ErrScreenMismatch
	}

	id, err := internal.NewAttemptID()
	if err != nil {
		return err
	}

	o.registry.resetProgress()
	o.attemptID = id
	o.screen = ScreenAuth
	o.metricInc(MetricAuthStarted)
	o.emitAudit(ctx, auditEventAuthStarted, true, "", nil, func() map[string]string {
		return map[string]string{
			"required": joinKinds(o.registry.enabledKinds()),
		}
	})

	// An empty enabled set satisfies the completion gate vacuously, so the
	// attempt can resolve to Vault without a single method attempt.
	o.evaluateGateLocked(ctx)
	return nil
}

// CancelAuthentication describes the cancelauthentication operation and its observable behavior.
//
// CancelAuthentication may return an error when input validation, dependency calls, or security checks fail.
// CancelAuthentication does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) CancelAuthentication(ctx context.Context) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenAuth {
		return ErrScreenMismatch
	}

	o.registry.resetProgress()
	o.screen = ScreenSetup
	o.metricInc(MetricAuthCancelled)
	o.emitAudit(ctx, auditEventAuthCancelled, true, "", nil, nil)
	o.attemptID = ""
	return nil
}

// LockVault describes the lockvault operation and its observable behavior.
//
// LockVault may return an error when input validation, dependency calls, or security checks fail.
// LockVault does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) LockVault(ctx context.Context) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenVault {
		return ErrScreenMismatch
	}

	o.registry.resetProgress()
	o.screen = ScreenLock
	o.metricInc(MetricVaultLocked)
	o.emitAudit(ctx, auditEventVaultLocked, true, "", nil, nil)
	o.attemptID = ""
	return nil
}

// evaluateGateLocked recomputes the completion gate from scratch. It never
// counts incrementally: the containment check runs over the full enabled set
// every time, so completion order cannot influence the outcome.
func (o *Orchestrator) evaluateGateLocked(ctx context.Context) {
	if o.screen != ScreenAuth {
		return
	}
	if !o.registry.allEnabledCompleted() {
		return
	}

	o.screen = ScreenVault
	o.metricInc(MetricVaultUnlocked)
	o.emitAudit(ctx, auditEventVaultUnlocked, true, "", nil, nil)
}

// runChallenge invokes the biometric prompt and folds its result into a
// single outcome. A collaborator error counts as a failed challenge unless
// ctx was cancelled.
func (o *Orchestrator) runChallenge(ctx context.Context) ChallengeOutcome {
	start := time.Now()
	outcome, err := o.challenger.Challenge(ctx)
	o.metricObserve(MetricCollaboratorLatency, time.Since(start))
	if err != nil {
		if ctx != nil && ctx.Err() != nil {
			return ChallengeCancelled
		}
		return ChallengeFailure
	}
	return outcome
}

func joinKinds(kinds []MethodKind) string {
	if len(kinds) == 0 {
		return "none"
	}
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}
	return strings.Join(names, ",")
}
