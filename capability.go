package vaultgate

// StaticProbe defines a public type used by vaultgate APIs.
//
// StaticProbe instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StaticProbe struct {
	Biometric bool
	CameraOK  bool
}

// SupportsSystemBiometric describes the supportssystembiometric operation and its observable behavior.
//
// SupportsSystemBiometric may return an error when input validation, dependency calls, or security checks fail.
// SupportsSystemBiometric does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p StaticProbe) SupportsSystemBiometric() bool {
	return p.Biometric
}

// SupportsCamera describes the supportscamera operation and its observable behavior.
//
// SupportsCamera may return an error when input validation, dependency calls, or security checks fail.
// SupportsCamera does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p StaticProbe) SupportsCamera() bool {
	return p.CameraOK
}

func probeCapabilities(p CapabilityProbe) Capabilities {
	if p == nil {
		return Capabilities{}
	}
	return Capabilities{
		SystemBiometric: p.SupportsSystemBiometric(),
		Camera:          p.SupportsCamera(),
	}
}
