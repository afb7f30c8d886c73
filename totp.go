package vaultgate

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// totpManager wraps the otp library with the orchestrator's TOTP settings.
// Secrets are generated here but stored by the credential layer.
type totpManager struct {
	cfg TOTPConfig
}

func newTOTPManager(cfg TOTPConfig) *totpManager {
	return &totpManager{cfg: cfg}
}

func (m *totpManager) algorithm() otp.Algorithm {
	switch strings.ToUpper(m.cfg.Algorithm) {
	case "SHA256":
		return otp.AlgorithmSHA256
	case "SHA512":
		return otp.AlgorithmSHA512
	default:
		return otp.AlgorithmSHA1
	}
}

func (m *totpManager) digits() otp.Digits {
	if m.cfg.Digits == 8 {
		return otp.DigitsEight
	}
	return otp.DigitsSix
}

func (m *totpManager) generateEnrollment() (secret string, uri string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.cfg.Issuer,
		AccountName: m.cfg.AccountName,
		Period:      uint(m.cfg.Period),
		SecretSize:  uint(m.cfg.SecretSize),
		Digits:      m.digits(),
		Algorithm:   m.algorithm(),
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// verifyCode rejects malformed codes before asking the library, so a
// non-numeric or wrong-length code never surfaces a library error.
func (m *totpManager) verifyCode(secret, code string, at time.Time) (bool, error) {
	if !isNumericString(code) || len(code) != int(m.digits()) {
		return false, nil
	}
	return totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    uint(m.cfg.Period),
		Skew:      uint(m.cfg.Skew),
		Digits:    m.digits(),
		Algorithm: m.algorithm(),
	})
}

func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
