package test

import (
	"testing"

	vaultgate "github.com/MrEthical07/vaultgate"
	"github.com/MrEthical07/vaultgate/internal/device"
)

// newJourneyOrchestrator builds an orchestrator wired to a fully equipped fake
// device: biometric and camera capability, a challenger that always succeeds,
// and a camera that serves a fixed frame.
func newJourneyOrchestrator(t *testing.T, cfg vaultgate.Config) (*vaultgate.Orchestrator, func()) {
	t.Helper()

	orch, err := vaultgate.New().
		WithConfig(cfg).
		WithCapabilityProbe(device.Detect().Override(true, true)).
		WithBiometricChallenger(device.NewScriptedChallenger(0)).
		WithCamera(device.StaticFrameCamera{Frame: []byte("journey-frame")}).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return orch, orch.Close
}

func journeyConfig() vaultgate.Config {
	cfg := vaultgate.DefaultConfig()
	cfg.TOTP.Enabled = true
	cfg.TOTP.Issuer = "vaultgate-journey"
	return cfg
}
