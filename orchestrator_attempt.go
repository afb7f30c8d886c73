package vaultgate

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AttemptPin describes the attemptpin operation and its observable behavior.
//
// AttemptPin may return an error when input validation, dependency calls, or security checks fail.
// AttemptPin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) AttemptPin(ctx context.Context, pin string) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.beginAttemptLocked(MethodPin); err != nil {
		return err
	}

	stored, ok := o.credentials.pinValue()
	if !ok {
		o.metricInc(MetricAttemptRejected)
		return ErrMethodNotConfigured
	}

	// Byte-exact comparison against the stored value. No normalization,
	// no hashing, no timing mitigation.
	if pin != stored {
		o.metricInc(MetricAttemptFailure)
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodPin.String(), ErrCredentialMismatch, func() map[string]string {
			return map[string]string{
				"reason": "pin_mismatch",
			}
		})
		return ErrCredentialMismatch
	}

	o.completeAttemptLocked(ctx, MethodPin)
	return nil
}

// AttemptPassword describes the attemptpassword operation and its observable behavior.
//
// AttemptPassword may return an error when input validation, dependency calls, or security checks fail.
// AttemptPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) AttemptPassword(ctx context.Context, password string) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.beginAttemptLocked(MethodPassword); err != nil {
		return err
	}

	stored, ok := o.credentials.passwordValue()
	if !ok {
		o.metricInc(MetricAttemptRejected)
		return ErrMethodNotConfigured
	}

	if password != stored {
		o.metricInc(MetricAttemptFailure)
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodPassword.String(), ErrCredentialMismatch, func() map[string]string {
			return map[string]string{
				"reason": "password_mismatch",
			}
		})
		return ErrCredentialMismatch
	}

	o.completeAttemptLocked(ctx, MethodPassword)
	return nil
}

// AttemptBiometric describes the attemptbiometric operation and its observable behavior.
//
// AttemptBiometric may return an error when input validation, dependency calls, or security checks fail.
// AttemptBiometric does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) AttemptBiometric(ctx context.Context) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.beginAttemptLocked(MethodSystemBiometric); err != nil {
		return err
	}

	if !o.caps.SystemBiometric {
		o.metricInc(MetricAttemptFailure)
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodSystemBiometric.String(), ErrBiometricUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "biometric_unavailable",
			}
		})
		return ErrBiometricUnavailable
	}
	if o.challenger == nil {
		return ErrOrchestratorNotReady
	}

	switch o.runChallenge(ctx) {
	case ChallengeSuccess:
		o.completeAttemptLocked(ctx, MethodSystemBiometric)
		return nil
	case ChallengeCancelled:
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodSystemBiometric.String(), ErrChallengeDismissed, func() map[string]string {
			return map[string]string{
				"reason": "challenge_dismissed",
			}
		})
		return ErrChallengeDismissed
	default:
		o.metricInc(MetricAttemptFailure)
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodSystemBiometric.String(), ErrChallengeFailed, func() map[string]string {
			return map[string]string{
				"reason": "challenge_failed",
			}
		})
		return ErrChallengeFailed
	}
}

// AttemptFace describes the attemptface operation and its observable behavior.
//
// AttemptFace may return an error when input validation, dependency calls, or security checks fail.
// AttemptFace does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) AttemptFace(ctx context.Context) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.beginAttemptLocked(MethodFace); err != nil {
		return err
	}

	reference, ok := o.credentials.faceSampleValue()
	if !ok {
		o.metricInc(MetricAttemptRejected)
		return ErrMethodNotConfigured
	}

	if !o.caps.Camera {
		o.metricInc(MetricAttemptFailure)
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodFace.String(), ErrCameraUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "camera_unavailable",
			}
		})
		return ErrCameraUnavailable
	}
	if o.faceMatcher == nil {
		return ErrOrchestratorNotReady
	}

	frame, err := o.captureFrame(ctx)
	if err != nil {
		if !errors.Is(err, ErrCancelled) {
			o.metricInc(MetricAttemptFailure)
		}
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodFace.String(), err, nil)
		return err
	}

	if err := o.matchFace(ctx, frame, reference); err != nil {
		if !errors.Is(err, ErrCancelled) {
			o.metricInc(MetricAttemptFailure)
		}
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodFace.String(), err, nil)
		return err
	}

	o.completeAttemptLocked(ctx, MethodFace)
	return nil
}

// matchFace runs the configured matcher and normalizes its error to a
// credential mismatch unless the matcher already classified it, or ctx was
// cancelled.
func (o *Orchestrator) matchFace(ctx context.Context, captured, reference []byte) error {
	start := time.Now()
	err := o.faceMatcher.Match(ctx, captured, reference)
	o.metricObserve(MetricCollaboratorLatency, time.Since(start))
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCredentialMismatch) || errors.Is(err, ErrCancelled) {
		return err
	}
	if ctx != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return fmt.Errorf("%w: %v", ErrFaceRejected, err)
}

// beginAttemptLocked rejects attempts that are out of place: wrong screen,
// method not part of the active requirement set, or already satisfied in
// this attempt.
func (o *Orchestrator) beginAttemptLocked(kind MethodKind) error {
	if o.screen != ScreenAuth {
		o.metricInc(MetricAttemptRejected)
		return ErrScreenMismatch
	}
	if !o.registry.isEnabled(kind) {
		o.metricInc(MetricAttemptRejected)
		return ErrMethodNotEnabled
	}
	if o.registry.isCompleted(kind) {
		o.metricInc(MetricAttemptRejected)
		return ErrMethodCompleted
	}
	return nil
}

func (o *Orchestrator) completeAttemptLocked(ctx context.Context, kind MethodKind) {
	o.registry.markCompleted(kind)
	o.metricInc(MetricAttemptSuccess)
	o.emitAudit(ctx, auditEventAttemptSuccess, true, kind.String(), nil, nil)
	o.evaluateGateLocked(ctx)
}
