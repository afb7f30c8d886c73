package vaultgate

// methodRegistry tracks which methods are enabled and, for the current
// authentication attempt, which are completed. Both maps key on MethodKind
// with absent entries meaning false. Callers hold the orchestrator lock.
type methodRegistry struct {
	enabled   map[MethodKind]bool
	completed map[MethodKind]bool
}

func newMethodRegistry() *methodRegistry {
	return &methodRegistry{
		enabled:   make(map[MethodKind]bool, int(methodKindCount)),
		completed: make(map[MethodKind]bool, int(methodKindCount)),
	}
}

func (r *methodRegistry) setEnabled(kind MethodKind, on bool) {
	r.enabled[kind] = on
}

func (r *methodRegistry) isEnabled(kind MethodKind) bool {
	return r.enabled[kind]
}

func (r *methodRegistry) markCompleted(kind MethodKind) {
	r.completed[kind] = true
}

func (r *methodRegistry) isCompleted(kind MethodKind) bool {
	return r.completed[kind]
}

func (r *methodRegistry) resetProgress() {
	for kind := range r.completed {
		delete(r.completed, kind)
	}
}

// enabledKinds returns the enabled set in the fixed methodKinds order.
func (r *methodRegistry) enabledKinds() []MethodKind {
	out := make([]MethodKind, 0, len(r.enabled))
	for _, kind := range methodKinds {
		if r.enabled[kind] {
			out = append(out, kind)
		}
	}
	return out
}

// allEnabledCompleted recomputes the completion gate from scratch on every
// call: the enabled set must be contained in the completed set. An empty
// enabled set satisfies the containment vacuously.
func (r *methodRegistry) allEnabledCompleted() bool {
	for kind, on := range r.enabled {
		if !on {
			continue
		}
		if !r.completed[kind] {
			return false
		}
	}
	return true
}
