package device

import (
	"os"
	"runtime"
)

// HostProbe reports capabilities detected from the running host.
//
// Detection is intentionally shallow: platform identity stands in for a
// biometric stack and a well-known device node stands in for a camera. The
// demo treats the host as the device under orchestration, not as a trusted
// authenticator.
type HostProbe struct {
	biometric bool
	camera    bool
}

// Detect inspects the host once and returns a fixed probe. Capability
// answers do not change for the lifetime of the returned value; use
// [vaultgate.Orchestrator.RefreshCapabilities] with a fresh Detect result to
// pick up hardware changes.
func Detect() HostProbe {
	p := HostProbe{}
	switch runtime.GOOS {
	case "darwin", "windows":
		p.biometric = true
		p.camera = true
	case "linux":
		if _, err := os.Stat("/dev/video0"); err == nil {
			p.camera = true
		}
	}
	return p
}

// Override returns a copy of the probe with forced capability answers.
func (p HostProbe) Override(biometric, camera bool) HostProbe {
	p.biometric = biometric
	p.camera = camera
	return p
}

func (p HostProbe) SupportsSystemBiometric() bool { return p.biometric }

func (p HostProbe) SupportsCamera() bool { return p.camera }
