package vaultgate

import "errors"

// Builder defines a public type used by vaultgate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	probe       CapabilityProbe
	challenger  BiometricChallenger
	camera      Camera
	faceMatcher FaceMatcher
	auditSink   AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithCapabilityProbe describes the withcapabilityprobe operation and its observable behavior.
//
// WithCapabilityProbe may return an error when input validation, dependency calls, or security checks fail.
// WithCapabilityProbe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCapabilityProbe(p CapabilityProbe) *Builder {
	b.probe = p
	return b
}

// WithBiometricChallenger describes the withbiometricchallenger operation and its observable behavior.
//
// WithBiometricChallenger may return an error when input validation, dependency calls, or security checks fail.
// WithBiometricChallenger does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBiometricChallenger(c BiometricChallenger) *Builder {
	b.challenger = c
	return b
}

// WithCamera describes the withcamera operation and its observable behavior.
//
// WithCamera may return an error when input validation, dependency calls, or security checks fail.
// WithCamera does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCamera(c Camera) *Builder {
	b.camera = c
	return b
}

// WithFaceMatcher describes the withfacematcher operation and its observable behavior.
//
// WithFaceMatcher may return an error when input validation, dependency calls, or security checks fail.
// WithFaceMatcher does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithFaceMatcher(m FaceMatcher) *Builder {
	b.faceMatcher = m
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Orchestrator, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.probe == nil {
		return nil, errors.New("capability probe required")
	}

	matcher := b.faceMatcher
	if matcher == nil {
		matcher = PresenceMatcher{}
	}

	caps := probeCapabilities(b.probe)

	// -------- METHOD REGISTRY --------
	registry := newMethodRegistry()
	if caps.SystemBiometric {
		registry.setEnabled(MethodSystemBiometric, true)
	}

	orch := &Orchestrator{
		config:      cfg,
		probe:       b.probe,
		challenger:  b.challenger,
		camera:      b.camera,
		faceMatcher: matcher,
		registry:    registry,
		credentials: newCredentialStore(),
		screen:      ScreenLock,
		caps:        caps,
	}

	orch.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	orch.metrics = NewMetrics(cfg.Metrics)
	orch.totp = newTOTPManager(cfg.TOTP)

	b.built = true

	return orch, nil
}
