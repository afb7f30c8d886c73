package vaultgate

// credentialStore holds reference credentials in process memory for the
// lifetime of the orchestrator. Values are stored as provided: no hashing,
// no normalization, no encryption. Secrets survive method disablement and
// vault locks; they vanish only when the process exits. Callers hold the
// orchestrator lock.
type credentialStore struct {
	pin        string
	hasPin     bool
	password   string
	hasPass    bool
	faceSample []byte
	totpSecret string
}

func newCredentialStore() *credentialStore {
	return &credentialStore{}
}

func (s *credentialStore) setPin(value string) {
	s.pin = value
	s.hasPin = true
}

func (s *credentialStore) pinValue() (string, bool) {
	return s.pin, s.hasPin
}

func (s *credentialStore) setPassword(value string) {
	s.password = value
	s.hasPass = true
}

func (s *credentialStore) passwordValue() (string, bool) {
	return s.password, s.hasPass
}

func (s *credentialStore) setFaceSample(sample []byte) {
	s.faceSample = cloneBytes(sample)
}

func (s *credentialStore) faceSampleValue() ([]byte, bool) {
	if len(s.faceSample) == 0 {
		return nil, false
	}
	return cloneBytes(s.faceSample), true
}

func (s *credentialStore) setTOTPSecret(secret string) {
	s.totpSecret = secret
}

func (s *credentialStore) totpSecretValue() (string, bool) {
	if s.totpSecret == "" {
		return "", false
	}
	return s.totpSecret, true
}

// configured reports whether a reference credential exists for kind.
// SystemBiometric has no stored credential; the platform owns it.
func (s *credentialStore) configured(kind MethodKind) bool {
	switch kind {
	case MethodPin:
		return s.hasPin
	case MethodPassword:
		return s.hasPass
	case MethodFace:
		return len(s.faceSample) > 0
	case MethodTOTP:
		return s.totpSecret != ""
	default:
		return false
	}
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
