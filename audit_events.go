package vaultgate

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventUnlockSuccess           = "unlock_success"
	auditEventUnlockImplicit          = "unlock_implicit"
	auditEventUnlockFailure           = "unlock_failure"
	auditEventMethodEnabled           = "method_enabled"
	auditEventMethodSetupFailed       = "method_setup_failed"
	auditEventMethodDisabled          = "method_disabled"
	auditEventMethodReenabled         = "method_reenabled"
	auditEventAuthStarted             = "auth_started"
	auditEventAuthCancelled           = "auth_cancelled"
	auditEventAttemptSuccess          = "attempt_success"
	auditEventAttemptFailure          = "attempt_failure"
	auditEventVaultUnlocked           = "vault_unlocked"
	auditEventVaultLocked             = "vault_locked"
	auditEventTOTPEnrollmentStarted   = "totp_enrollment_started"
	auditEventTOTPEnrollmentConfirmed = "totp_enrollment_confirmed"
	auditEventCapabilitiesRefreshed   = "capabilities_refreshed"
)

// AuditErrorCode defines a public type used by vaultgate APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrPinPolicy        AuditErrorCode = "pin_policy"
	auditErrPasswordPolicy   AuditErrorCode = "password_policy"
	auditErrConfirmMismatch  AuditErrorCode = "confirmation_mismatch"
	auditErrValidation       AuditErrorCode = "validation_failed"
	auditErrChallengeFailed  AuditErrorCode = "challenge_failed"
	auditErrFaceRejected     AuditErrorCode = "face_rejected"
	auditErrTOTPInvalid      AuditErrorCode = "totp_invalid"
	auditErrMismatch         AuditErrorCode = "credential_mismatch"
	auditErrCapabilityDenied AuditErrorCode = "capability_denied"
	auditErrCancelled        AuditErrorCode = "cancelled"
	auditErrScreenMismatch   AuditErrorCode = "screen_mismatch"
	auditErrNotEnabled       AuditErrorCode = "method_not_enabled"
	auditErrCompleted        AuditErrorCode = "method_already_completed"
	auditErrNotConfigured    AuditErrorCode = "method_not_configured"
	auditErrUnknownMethod    AuditErrorCode = "unknown_method"
	auditErrCaptureFailed    AuditErrorCode = "capture_failed"
	auditErrTOTPDisabled     AuditErrorCode = "totp_disabled"
	auditErrTOTPUnavailable  AuditErrorCode = "totp_unavailable"
	auditErrNotStaged        AuditErrorCode = "enrollment_not_staged"
	auditErrInternal         AuditErrorCode = "internal_error"
)

// emitAudit is called with the orchestrator lock held, so the screen and
// attempt identifier recorded on the event reflect the state at emit time.
func (o *Orchestrator) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	method string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if o == nil || o.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp:      time.Now().UTC(),
		EventType:      eventType,
		Screen:         o.screen.String(),
		Method:         method,
		AttemptID:      o.attemptID,
		DeviceLabel:    deviceLabelFromContext(ctx),
		PresentationID: presentationIDFromContext(ctx),
		Success:        success,
		Metadata:       metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	o.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrPinTooShort),
		errors.Is(err, ErrPinNotNumeric):
		return auditErrPinPolicy
	case errors.Is(err, ErrPasswordTooShort):
		return auditErrPasswordPolicy
	case errors.Is(err, ErrConfirmationMismatch):
		return auditErrConfirmMismatch
	case errors.Is(err, ErrChallengeFailed):
		return auditErrChallengeFailed
	case errors.Is(err, ErrFaceRejected):
		return auditErrFaceRejected
	case errors.Is(err, ErrTOTPCodeInvalid):
		return auditErrTOTPInvalid
	case errors.Is(err, ErrValidation):
		return auditErrValidation
	case errors.Is(err, ErrCredentialMismatch):
		return auditErrMismatch
	case errors.Is(err, ErrCapabilityDenied):
		return auditErrCapabilityDenied
	case errors.Is(err, ErrCancelled):
		return auditErrCancelled
	case errors.Is(err, ErrScreenMismatch):
		return auditErrScreenMismatch
	case errors.Is(err, ErrMethodNotEnabled):
		return auditErrNotEnabled
	case errors.Is(err, ErrMethodCompleted):
		return auditErrCompleted
	case errors.Is(err, ErrMethodNotConfigured):
		return auditErrNotConfigured
	case errors.Is(err, ErrMethodUnknown):
		return auditErrUnknownMethod
	case errors.Is(err, ErrCaptureFailed):
		return auditErrCaptureFailed
	case errors.Is(err, ErrTOTPDisabled):
		return auditErrTOTPDisabled
	case errors.Is(err, ErrTOTPUnavailable):
		return auditErrTOTPUnavailable
	case errors.Is(err, ErrEnrollmentNotStaged):
		return auditErrNotStaged
	default:
		return auditErrInternal
	}
}
