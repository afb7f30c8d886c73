package vaultgate

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindClassification(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrPinTooShort, ErrValidation},
		{ErrPinNotNumeric, ErrValidation},
		{ErrPasswordTooShort, ErrValidation},
		{ErrConfirmationMismatch, ErrValidation},
		{ErrSampleTooLarge, ErrValidation},
		{ErrChallengeFailed, ErrCredentialMismatch},
		{ErrFaceRejected, ErrCredentialMismatch},
		{ErrTOTPCodeInvalid, ErrCredentialMismatch},
		{ErrBiometricUnavailable, ErrCapabilityDenied},
		{ErrCameraUnavailable, ErrCapabilityDenied},
		{ErrChallengeDismissed, ErrCancelled},
	}

	kinds := []error{ErrValidation, ErrCredentialMismatch, ErrCapabilityDenied, ErrCancelled}

	for _, tc := range tests {
		for _, kind := range kinds {
			got := errors.Is(tc.err, kind)
			want := kind == tc.kind
			if got != want {
				t.Fatalf("errors.Is(%v, %v) = %v, want %v", tc.err, kind, got, want)
			}
		}
	}
}

func TestOrchestrationErrorsCarryNoKind(t *testing.T) {
	plain := []error{
		ErrOrchestratorNotReady,
		ErrScreenMismatch,
		ErrMethodNotEnabled,
		ErrMethodCompleted,
		ErrMethodNotConfigured,
		ErrMethodUnknown,
		ErrCaptureFailed,
		ErrTOTPDisabled,
		ErrTOTPUnavailable,
		ErrEnrollmentNotStaged,
	}

	kinds := []error{ErrValidation, ErrCredentialMismatch, ErrCapabilityDenied, ErrCancelled}

	for _, err := range plain {
		for _, kind := range kinds {
			if errors.Is(err, kind) {
				t.Fatalf("%v unexpectedly matches kind %v", err, kind)
			}
		}
	}
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("attempt 3: %w", ErrFaceRejected)

	if !errors.Is(wrapped, ErrCredentialMismatch) {
		t.Fatal("wrapping must preserve the credential mismatch kind")
	}
	if !errors.Is(wrapped, ErrFaceRejected) {
		t.Fatal("wrapping must preserve the variant identity")
	}
	if errors.Is(wrapped, ErrCancelled) {
		t.Fatal("wrapping must not invent a cancellation kind")
	}
}

func TestErrorMessagesNameTheFailure(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrPinTooShort, "pin"},
		{ErrPasswordTooShort, "password"},
		{ErrCameraUnavailable, "camera"},
		{ErrTOTPDisabled, "totp"},
	}

	for _, tc := range tests {
		if !stringContains(tc.err.Error(), tc.want) {
			t.Fatalf("expected %q in error %q", tc.want, tc.err.Error())
		}
	}
}
