package vaultgate

import (
	"context"
	"strconv"
)

// EnablePin describes the enablepin operation and its observable behavior.
//
// EnablePin may return an error when input validation, dependency calls, or security checks fail.
// EnablePin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) EnablePin(ctx context.Context, pin, confirmation string) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return ErrScreenMismatch
	}

	if err := o.validatePin(pin, confirmation); err != nil {
		o.metricInc(MetricSetupFailure)
		o.emitAudit(ctx, auditEventMethodSetupFailed, false, MethodPin.String(), err, nil)
		return err
	}

	o.credentials.setPin(pin)
	o.registry.setEnabled(MethodPin, true)
	o.metricInc(MetricMethodEnabled)
	o.emitAudit(ctx, auditEventMethodEnabled, true, MethodPin.String(), nil, nil)
	return nil
}

// EnablePassword describes the enablepassword operation and its observable behavior.
//
// EnablePassword may return an error when input validation, dependency calls, or security checks fail.
// EnablePassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) EnablePassword(ctx context.Context, password, confirmation string) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return ErrScreenMismatch
	}

	if err := o.validatePassword(password, confirmation); err != nil {
		o.metricInc(MetricSetupFailure)
		o.emitAudit(ctx, auditEventMethodSetupFailed, false, MethodPassword.String(), err, nil)
		return err
	}

	o.credentials.setPassword(password)
	o.registry.setEnabled(MethodPassword, true)
	o.metricInc(MetricMethodEnabled)
	o.emitAudit(ctx, auditEventMethodEnabled, true, MethodPassword.String(), nil, nil)
	return nil
}

// EnableFace describes the enableface operation and its observable behavior.
//
// EnableFace may return an error when input validation, dependency calls, or security checks fail.
// EnableFace does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) EnableFace(ctx context.Context) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return ErrScreenMismatch
	}

	if !o.caps.Camera {
		o.metricInc(MetricSetupFailure)
		o.emitAudit(ctx, auditEventMethodSetupFailed, false, MethodFace.String(), ErrCameraUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "camera_unavailable",
			}
		})
		return ErrCameraUnavailable
	}

	frame, err := o.captureFrame(ctx)
	if err != nil {
		// Capture failed or the user dismissed the camera. Nothing was
		// stored and nothing was enabled.
		o.metricInc(MetricSetupFailure)
		o.emitAudit(ctx, auditEventMethodSetupFailed, false, MethodFace.String(), err, nil)
		return err
	}

	o.credentials.setFaceSample(frame)
	o.registry.setEnabled(MethodFace, true)
	o.metricInc(MetricMethodEnabled)
	o.emitAudit(ctx, auditEventMethodEnabled, true, MethodFace.String(), nil, func() map[string]string {
		return map[string]string{
			"sample_bytes": strconv.Itoa(len(frame)),
		}
	})
	return nil
}

// DisableMethod describes the disablemethod operation and its observable behavior.
//
// DisableMethod may return an error when input validation, dependency calls, or security checks fail.
// DisableMethod does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) DisableMethod(ctx context.Context, kind MethodKind) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return ErrScreenMismatch
	}
	if !validMethodKind(kind) {
		return ErrMethodUnknown
	}
	if !o.registry.isEnabled(kind) {
		return nil
	}

	// Disable removes the requirement, not the secret. The stored
	// credential survives so a later re-enable resumes with the old
	// material.
	o.registry.setEnabled(kind, false)
	o.metricInc(MetricMethodDisabled)
	o.emitAudit(ctx, auditEventMethodDisabled, true, kind.String(), nil, nil)
	return nil
}

// ReenableMethod describes the reenablemethod operation and its observable behavior.
//
// ReenableMethod may return an error when input validation, dependency calls, or security checks fail.
// ReenableMethod does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) ReenableMethod(ctx context.Context, kind MethodKind) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return ErrScreenMismatch
	}
	if !validMethodKind(kind) {
		return ErrMethodUnknown
	}
	if o.registry.isEnabled(kind) {
		return nil
	}

	switch kind {
	case MethodSystemBiometric:
		if !o.caps.SystemBiometric {
			o.metricInc(MetricSetupFailure)
			o.emitAudit(ctx, auditEventMethodSetupFailed, false, kind.String(), ErrBiometricUnavailable, func() map[string]string {
				return map[string]string{
					"reason": "biometric_unavailable",
				}
			})
			return ErrBiometricUnavailable
		}
	case MethodTOTP:
		if !o.config.TOTP.Enabled {
			o.metricInc(MetricSetupFailure)
			o.emitAudit(ctx, auditEventMethodSetupFailed, false, kind.String(), ErrTOTPDisabled, func() map[string]string {
				return map[string]string{
					"reason": "totp_disabled",
				}
			})
			return ErrTOTPDisabled
		}
		if !o.credentials.configured(kind) {
			o.metricInc(MetricSetupFailure)
			o.emitAudit(ctx, auditEventMethodSetupFailed, false, kind.String(), ErrMethodNotConfigured, func() map[string]string {
				return map[string]string{
					"reason": "not_configured",
				}
			})
			return ErrMethodNotConfigured
		}
	default:
		if !o.credentials.configured(kind) {
			o.metricInc(MetricSetupFailure)
			o.emitAudit(ctx, auditEventMethodSetupFailed, false, kind.String(), ErrMethodNotConfigured, func() map[string]string {
				return map[string]string{
					"reason": "not_configured",
				}
			})
			return ErrMethodNotConfigured
		}
	}

	o.registry.setEnabled(kind, true)
	o.metricInc(MetricMethodReenabled)
	o.emitAudit(ctx, auditEventMethodReenabled, true, kind.String(), nil, nil)
	return nil
}

func (o *Orchestrator) validatePin(pin, confirmation string) error {
	if len(pin) < o.config.Pin.MinLength {
		return ErrPinTooShort
	}
	if !isNumericString(pin) {
		return ErrPinNotNumeric
	}
	if pin != confirmation {
		return ErrConfirmationMismatch
	}
	return nil
}

func (o *Orchestrator) validatePassword(password, confirmation string) error {
	if len(password) < o.config.Password.MinLength {
		return ErrPasswordTooShort
	}
	if password != confirmation {
		return ErrConfirmationMismatch
	}
	return nil
}
