package vaultgate

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestEnablePinValidation(t *testing.T) {
	tests := []struct {
		name         string
		pin          string
		confirmation string
		wantErr      error
	}{
		{name: "too short", pin: "123", confirmation: "123", wantErr: ErrPinTooShort},
		{name: "not numeric", pin: "12a4", confirmation: "12a4", wantErr: ErrPinNotNumeric},
		{name: "confirmation differs", pin: "1234", confirmation: "4321", wantErr: ErrConfirmationMismatch},
		{name: "minimum length", pin: "1234", confirmation: "1234"},
		{name: "longer than minimum", pin: "123456789", confirmation: "123456789"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orch, done := setupOrchestrator(t, nil)
			defer done()

			err := orch.EnablePin(context.Background(), tc.pin, tc.confirmation)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				state := methodState(t, orch, MethodPin)
				if !state.Enabled || !state.Configured {
					t.Fatalf("pin state = %+v, want enabled and configured", state)
				}
				return
			}

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("policy failures must classify as validation, got %v", err)
			}
			state := methodState(t, orch, MethodPin)
			if state.Enabled || state.Configured {
				t.Fatalf("pin state = %+v, want untouched after rejection", state)
			}
			if got := orch.Screen(); got != ScreenSetup {
				t.Fatalf("screen = %v, want setup", got)
			}
		})
	}
}

func TestEnablePasswordValidation(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		confirmation string
		wantErr      error
	}{
		{name: "too short", password: "abc", confirmation: "abc", wantErr: ErrPasswordTooShort},
		{name: "confirmation differs", password: "abcdef", confirmation: "fedcba", wantErr: ErrConfirmationMismatch},
		{name: "minimum length", password: "abcdef", confirmation: "abcdef"},
		{name: "symbols allowed", password: "pa ss-w0rd!", confirmation: "pa ss-w0rd!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orch, done := setupOrchestrator(t, nil)
			defer done()

			err := orch.EnablePassword(context.Background(), tc.password, tc.confirmation)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if methodState(t, orch, MethodPassword).Enabled {
				t.Fatal("password must stay disabled after rejection")
			}
		})
	}
}

func TestEnablePinOverwritesPrevious(t *testing.T) {
	orch, done := setupOrchestrator(t, nil)
	defer done()

	ctx := context.Background()
	if err := orch.EnablePin(ctx, "1111", "1111"); err != nil {
		t.Fatalf("first enable: %v", err)
	}
	if err := orch.EnablePin(ctx, "2222", "2222"); err != nil {
		t.Fatalf("second enable: %v", err)
	}
	if err := orch.BeginAuthentication(ctx); err != nil {
		t.Fatalf("begin auth: %v", err)
	}

	if err := orch.AttemptPin(ctx, "1111"); !errors.Is(err, ErrCredentialMismatch) {
		t.Fatalf("old pin should mismatch, got %v", err)
	}
	if err := orch.AttemptPin(ctx, "2222"); err != nil {
		t.Fatalf("new pin rejected: %v", err)
	}
}

func TestSetupFailureMetrics(t *testing.T) {
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithMetricsEnabled(true)
	})
	defer done()

	if err := orch.EnablePin(context.Background(), "12", "12"); err == nil {
		t.Fatal("expected validation error")
	}

	if got := counterValue(orch, MetricSetupFailure); got != 1 {
		t.Fatalf("MetricSetupFailure = %d, want 1", got)
	}
	if got := counterValue(orch, MetricMethodEnabled); got != 0 {
		t.Fatalf("MetricMethodEnabled = %d, want 0", got)
	}
}

func TestEnableFaceStoresFrameVerbatim(t *testing.T) {
	frame := []byte{0x00, 0xff, 0x10, 0x20, 0x00, 0x7f}
	cam := &countingCamera{frame: frame}
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithCapabilityProbe(StaticProbe{CameraOK: true}).
			WithCamera(cam).
			WithMetricsEnabled(true)
	})
	defer done()

	if err := orch.EnableFace(context.Background()); err != nil {
		t.Fatalf("enable face: %v", err)
	}

	state := methodState(t, orch, MethodFace)
	if !state.Enabled || !state.Configured {
		t.Fatalf("face state = %+v, want enabled and configured", state)
	}

	stored, ok := orch.credentials.faceSampleValue()
	if !ok {
		t.Fatal("no face sample stored")
	}
	if !bytes.Equal(stored, frame) {
		t.Fatalf("stored sample = %x, want captured frame %x", stored, frame)
	}

	if cam.opens != 1 || cam.closes != 1 {
		t.Fatalf("camera opens=%d closes=%d, want 1/1", cam.opens, cam.closes)
	}
	if got := counterValue(orch, MetricCameraAcquired); got != 1 {
		t.Fatalf("MetricCameraAcquired = %d, want 1", got)
	}
	if got := counterValue(orch, MetricCameraReleased); got != 1 {
		t.Fatalf("MetricCameraReleased = %d, want 1", got)
	}
}

func TestEnableFaceWithoutCameraCapability(t *testing.T) {
	cam := &countingCamera{frame: []byte("frame")}
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithCamera(cam)
	})
	defer done()

	err := orch.EnableFace(context.Background())
	if !errors.Is(err, ErrCameraUnavailable) {
		t.Fatalf("expected ErrCameraUnavailable, got %v", err)
	}
	if !errors.Is(err, ErrCapabilityDenied) {
		t.Fatalf("missing camera should classify as capability denial, got %v", err)
	}
	if cam.opens != 0 {
		t.Fatalf("camera opened %d times despite missing capability", cam.opens)
	}
}

func TestEnableFaceCaptureFailureReleasesCamera(t *testing.T) {
	cam := &countingCamera{captureErr: errors.New("sensor fault")}
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithCapabilityProbe(StaticProbe{CameraOK: true}).WithCamera(cam)
	})
	defer done()

	err := orch.EnableFace(context.Background())
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}
	if cam.closes != cam.opens {
		t.Fatalf("camera opens=%d closes=%d, want balanced", cam.opens, cam.closes)
	}
	state := methodState(t, orch, MethodFace)
	if state.Enabled || state.Configured {
		t.Fatalf("face state = %+v, want untouched after failed capture", state)
	}
}

func TestEnableFaceEmptyFrameRejected(t *testing.T) {
	cam := &countingCamera{}
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithCapabilityProbe(StaticProbe{CameraOK: true}).WithCamera(cam)
	})
	defer done()

	err := orch.EnableFace(context.Background())
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed for empty frame, got %v", err)
	}
	if cam.closes != 1 {
		t.Fatalf("camera closes = %d, want 1", cam.closes)
	}
}

func TestEnableFaceOversizedSampleRejected(t *testing.T) {
	cfg := defaultConfig()
	cfg.Face.MaxSampleBytes = 4

	cam := &countingCamera{frame: []byte("12345")}
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithConfig(cfg).
			WithCapabilityProbe(StaticProbe{CameraOK: true}).
			WithCamera(cam)
	})
	defer done()

	err := orch.EnableFace(context.Background())
	if !errors.Is(err, ErrSampleTooLarge) {
		t.Fatalf("expected ErrSampleTooLarge, got %v", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("oversized sample should classify as validation, got %v", err)
	}
	if cam.closes != 1 {
		t.Fatalf("camera closes = %d, want 1", cam.closes)
	}
	if methodState(t, orch, MethodFace).Configured {
		t.Fatal("nothing may be stored for a rejected sample")
	}
}

func TestEnableFaceCancelledContextReleasesCamera(t *testing.T) {
	cam := &countingCamera{frame: []byte("frame")}
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithCapabilityProbe(StaticProbe{CameraOK: true}).WithCamera(cam)
	})
	defer done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := orch.EnableFace(ctx)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if cam.closes != cam.opens {
		t.Fatalf("camera opens=%d closes=%d, want balanced", cam.opens, cam.closes)
	}
	if methodState(t, orch, MethodFace).Enabled {
		t.Fatal("cancelled enrollment must not enable the method")
	}
}

func TestDisableRetainsCredential(t *testing.T) {
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithMetricsEnabled(true)
	})
	defer done()

	ctx := context.Background()
	if err := orch.EnablePin(ctx, "2468", "2468"); err != nil {
		t.Fatalf("enable pin: %v", err)
	}
	if err := orch.DisableMethod(ctx, MethodPin); err != nil {
		t.Fatalf("disable pin: %v", err)
	}

	state := methodState(t, orch, MethodPin)
	if state.Enabled {
		t.Fatal("pin should be disabled")
	}
	if !state.Configured {
		t.Fatal("disable must retain the stored credential")
	}

	if err := orch.ReenableMethod(ctx, MethodPin); err != nil {
		t.Fatalf("reenable pin: %v", err)
	}
	if !methodState(t, orch, MethodPin).Enabled {
		t.Fatal("pin should be enabled again")
	}

	// The original secret still opens the gate; nothing was resupplied.
	if err := orch.BeginAuthentication(ctx); err != nil {
		t.Fatalf("begin auth: %v", err)
	}
	if err := orch.AttemptPin(ctx, "2468"); err != nil {
		t.Fatalf("attempt with retained pin: %v", err)
	}

	if got := counterValue(orch, MetricMethodDisabled); got != 1 {
		t.Fatalf("MetricMethodDisabled = %d, want 1", got)
	}
	if got := counterValue(orch, MetricMethodReenabled); got != 1 {
		t.Fatalf("MetricMethodReenabled = %d, want 1", got)
	}
}

func TestDisableMethodIdempotent(t *testing.T) {
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithMetricsEnabled(true)
	})
	defer done()

	if err := orch.DisableMethod(context.Background(), MethodPassword); err != nil {
		t.Fatalf("disable of never-enabled method should be a no-op, got %v", err)
	}
	if got := counterValue(orch, MetricMethodDisabled); got != 0 {
		t.Fatalf("MetricMethodDisabled = %d, want 0", got)
	}
}

func TestDisableUnknownKindRejected(t *testing.T) {
	orch, done := setupOrchestrator(t, nil)
	defer done()

	if err := orch.DisableMethod(context.Background(), MethodKind(42)); !errors.Is(err, ErrMethodUnknown) {
		t.Fatalf("expected ErrMethodUnknown, got %v", err)
	}
	if err := orch.ReenableMethod(context.Background(), MethodKind(42)); !errors.Is(err, ErrMethodUnknown) {
		t.Fatalf("expected ErrMethodUnknown, got %v", err)
	}
}

func TestReenableGuards(t *testing.T) {
	tests := []struct {
		name    string
		kind    MethodKind
		wantErr error
	}{
		{name: "pin without credential", kind: MethodPin, wantErr: ErrMethodNotConfigured},
		{name: "password without credential", kind: MethodPassword, wantErr: ErrMethodNotConfigured},
		{name: "face without sample", kind: MethodFace, wantErr: ErrMethodNotConfigured},
		{name: "biometric without capability", kind: MethodSystemBiometric, wantErr: ErrBiometricUnavailable},
		{name: "totp disabled by config", kind: MethodTOTP, wantErr: ErrTOTPDisabled},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orch, done := setupOrchestrator(t, nil)
			defer done()

			err := orch.ReenableMethod(context.Background(), tc.kind)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if methodState(t, orch, tc.kind).Enabled {
				t.Fatalf("%v must stay disabled after rejected reenable", tc.kind)
			}
		})
	}
}

func TestReenableBiometricAfterDisable(t *testing.T) {
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithCapabilityProbe(StaticProbe{Biometric: true}).
			WithBiometricChallenger(&stubChallenger{})
	})
	defer done()

	ctx := context.Background()
	if err := orch.DisableMethod(ctx, MethodSystemBiometric); err != nil {
		t.Fatalf("disable biometric: %v", err)
	}
	if err := orch.ReenableMethod(ctx, MethodSystemBiometric); err != nil {
		t.Fatalf("reenable biometric: %v", err)
	}
	if !methodState(t, orch, MethodSystemBiometric).Enabled {
		t.Fatal("biometric should be enabled again")
	}
}

func TestReenableEnabledMethodIsNoOp(t *testing.T) {
	orch, done := setupOrchestrator(t, func(b *Builder) {
		b.WithMetricsEnabled(true)
	})
	defer done()

	ctx := context.Background()
	if err := orch.EnablePin(ctx, "1234", "1234"); err != nil {
		t.Fatalf("enable pin: %v", err)
	}
	if err := orch.ReenableMethod(ctx, MethodPin); err != nil {
		t.Fatalf("reenable of enabled method should be a no-op, got %v", err)
	}
	if got := counterValue(orch, MetricMethodReenabled); got != 0 {
		t.Fatalf("MetricMethodReenabled = %d, want 0", got)
	}
}

func TestSetupOperationsRequireSetupScreen(t *testing.T) {
	orch, done := buildOrchestrator(t, nil)
	defer done()

	ctx := context.Background()
	ops := []struct {
		name string
		call func() error
	}{
		{name: "enable pin", call: func() error { return orch.EnablePin(ctx, "1234", "1234") }},
		{name: "enable password", call: func() error { return orch.EnablePassword(ctx, "abcdef", "abcdef") }},
		{name: "enable face", call: func() error { return orch.EnableFace(ctx) }},
		{name: "disable", call: func() error { return orch.DisableMethod(ctx, MethodPin) }},
		{name: "reenable", call: func() error { return orch.ReenableMethod(ctx, MethodPin) }},
		{name: "begin auth", call: func() error { return orch.BeginAuthentication(ctx) }},
	}

	// Still on the lock screen; every setup operation must bounce.
	for _, op := range ops {
		if err := op.call(); !errors.Is(err, ErrScreenMismatch) {
			t.Fatalf("%s: expected ErrScreenMismatch, got %v", op.name, err)
		}
	}
}
