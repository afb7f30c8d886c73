package vaultgate

type PostureReport struct {
	Screen                   Screen
	Capabilities             Capabilities
	PlaintextCredentialStore bool
	FaceMatcherPlaceholder   bool
	TOTPEnabled              bool
	AuditEnabled             bool
	MetricsEnabled           bool
	LatencyHistograms        bool
	EnabledMethods           []MethodKind
	ConfiguredMethods        []MethodKind
}

func (o *Orchestrator) PostureReport() PostureReport {
	if o == nil || o.registry == nil {
		return PostureReport{}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	_, placeholder := o.faceMatcher.(PresenceMatcher)

	configured := make([]MethodKind, 0, len(methodKinds))
	for _, kind := range methodKinds {
		if o.credentials.configured(kind) {
			configured = append(configured, kind)
		}
	}

	return PostureReport{
		Screen:       o.screen,
		Capabilities: o.caps,
		// The in-memory store holds secrets verbatim.
		PlaintextCredentialStore: true,
		FaceMatcherPlaceholder:   placeholder,
		TOTPEnabled:              o.config.TOTP.Enabled,
		AuditEnabled:             o.config.Audit.Enabled,
		MetricsEnabled:           o.config.Metrics.Enabled,
		LatencyHistograms:        o.config.Metrics.EnableLatencyHistograms,
		EnabledMethods:           o.registry.enabledKinds(),
		ConfiguredMethods:        configured,
	}
}
