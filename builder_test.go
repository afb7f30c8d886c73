package vaultgate

import (
	"strings"
	"testing"
)

func TestBuildRequiresProbe(t *testing.T) {
	_, err := New().Build()
	if err == nil {
		t.Fatal("expected Build to fail without a capability probe")
	}
	if !strings.Contains(err.Error(), "capability probe") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	builder := New().WithCapabilityProbe(StaticProbe{})

	orch, err := builder.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer orch.Close()

	if _, err := builder.Build(); err == nil {
		t.Fatal("expected second Build on the same builder to fail")
	} else if !strings.Contains(err.Error(), "already used") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Pin.MinLength = 2

	_, err := New().
		WithConfig(cfg).
		WithCapabilityProbe(StaticProbe{}).
		Build()
	if err == nil {
		t.Fatal("expected Build to reject invalid config")
	}
}

func TestBuildSeedsBiometricFromProbe(t *testing.T) {
	tests := []struct {
		name      string
		biometric bool
	}{
		{"biometric present", true},
		{"biometric absent", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orch, err := New().
				WithCapabilityProbe(StaticProbe{Biometric: tc.biometric}).
				Build()
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			defer orch.Close()

			state := methodState(t, orch, MethodSystemBiometric)
			if state.Enabled != tc.biometric {
				t.Fatalf("biometric enabled = %v, want %v", state.Enabled, tc.biometric)
			}
			if state.Supported != tc.biometric {
				t.Fatalf("biometric supported = %v, want %v", state.Supported, tc.biometric)
			}
		})
	}
}

func TestBuildDefaultsFaceMatcherToPresence(t *testing.T) {
	orch, err := New().WithCapabilityProbe(StaticProbe{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer orch.Close()

	if !orch.PostureReport().FaceMatcherPlaceholder {
		t.Fatal("expected the presence matcher to be installed by default")
	}

	custom, err := New().
		WithCapabilityProbe(StaticProbe{}).
		WithFaceMatcher(rejectMatcher{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer custom.Close()

	if custom.PostureReport().FaceMatcherPlaceholder {
		t.Fatal("expected a custom matcher to clear the placeholder flag")
	}
}

func TestBuildAppliesMetricsToggles(t *testing.T) {
	orch, err := New().
		WithCapabilityProbe(StaticProbe{}).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer orch.Close()

	report := orch.PostureReport()
	if !report.MetricsEnabled {
		t.Fatal("expected metrics to be enabled")
	}
	if !report.LatencyHistograms {
		t.Fatal("expected latency histograms to be enabled")
	}
}
