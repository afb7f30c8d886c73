package vaultgate

import (
	"context"
	"fmt"
	"time"
)

// BeginTOTPEnrollment describes the begintotpenrollment operation and its observable behavior.
//
// BeginTOTPEnrollment may return an error when input validation, dependency calls, or security checks fail.
// BeginTOTPEnrollment does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) BeginTOTPEnrollment(ctx context.Context) (*TOTPEnrollment, error) {
	if o == nil || o.registry == nil {
		return nil, ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return nil, ErrScreenMismatch
	}
	if !o.config.TOTP.Enabled {
		return nil, ErrTOTPDisabled
	}
	if o.totp == nil {
		return nil, ErrOrchestratorNotReady
	}

	secret, uri, err := o.totp.generateEnrollment()
	if err != nil {
		o.metricInc(MetricSetupFailure)
		o.emitAudit(ctx, auditEventMethodSetupFailed, false, MethodTOTP.String(), ErrTOTPUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "generator_failure",
			}
		})
		return nil, fmt.Errorf("%w: %v", ErrTOTPUnavailable, err)
	}

	// Beginning again replaces any previously staged secret. A live secret
	// stays untouched until a confirmation succeeds.
	o.stagedSecret = secret
	o.metricInc(MetricTOTPEnrollmentStarted)
	o.emitAudit(ctx, auditEventTOTPEnrollmentStarted, true, MethodTOTP.String(), nil, nil)
	return &TOTPEnrollment{
		SecretBase32: secret,
		ProvisionURI: uri,
	}, nil
}

// ConfirmTOTPEnrollment describes the confirmtotpenrollment operation and its observable behavior.
//
// ConfirmTOTPEnrollment may return an error when input validation, dependency calls, or security checks fail.
// ConfirmTOTPEnrollment does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) ConfirmTOTPEnrollment(ctx context.Context, code string) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.screen != ScreenSetup {
		return ErrScreenMismatch
	}
	if o.stagedSecret == "" {
		return ErrEnrollmentNotStaged
	}
	if o.totp == nil {
		return ErrOrchestratorNotReady
	}

	ok, err := o.totp.verifyCode(o.stagedSecret, code, time.Now())
	if err != nil {
		o.metricInc(MetricSetupFailure)
		o.emitAudit(ctx, auditEventMethodSetupFailed, false, MethodTOTP.String(), ErrTOTPUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "verifier_failure",
			}
		})
		return fmt.Errorf("%w: %v", ErrTOTPUnavailable, err)
	}
	if !ok {
		// The staged secret survives a wrong code so the operator can
		// retry against the same authenticator entry.
		o.metricInc(MetricSetupFailure)
		o.emitAudit(ctx, auditEventMethodSetupFailed, false, MethodTOTP.String(), ErrTOTPCodeInvalid, func() map[string]string {
			return map[string]string{
				"reason": "code_rejected",
			}
		})
		return ErrTOTPCodeInvalid
	}

	o.credentials.setTOTPSecret(o.stagedSecret)
	o.stagedSecret = ""
	o.registry.setEnabled(MethodTOTP, true)
	o.metricInc(MetricTOTPEnrollmentConfirmed)
	o.metricInc(MetricMethodEnabled)
	o.emitAudit(ctx, auditEventTOTPEnrollmentConfirmed, true, MethodTOTP.String(), nil, nil)
	return nil
}

// AttemptTOTP describes the attempttotp operation and its observable behavior.
//
// AttemptTOTP may return an error when input validation, dependency calls, or security checks fail.
// AttemptTOTP does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o *Orchestrator) AttemptTOTP(ctx context.Context, code string) error {
	if o == nil || o.registry == nil {
		return ErrOrchestratorNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.beginAttemptLocked(MethodTOTP); err != nil {
		return err
	}

	secret, ok := o.credentials.totpSecretValue()
	if !ok {
		o.metricInc(MetricAttemptRejected)
		return ErrMethodNotConfigured
	}
	if o.totp == nil {
		return ErrOrchestratorNotReady
	}

	valid, err := o.totp.verifyCode(secret, code, time.Now())
	if err != nil {
		o.metricInc(MetricAttemptFailure)
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodTOTP.String(), ErrTOTPUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "verifier_failure",
			}
		})
		return fmt.Errorf("%w: %v", ErrTOTPUnavailable, err)
	}
	if !valid {
		o.metricInc(MetricAttemptFailure)
		o.emitAudit(ctx, auditEventAttemptFailure, false, MethodTOTP.String(), ErrTOTPCodeInvalid, func() map[string]string {
			return map[string]string{
				"reason": "code_rejected",
			}
		})
		return ErrTOTPCodeInvalid
	}

	o.completeAttemptLocked(ctx, MethodTOTP)
	return nil
}
