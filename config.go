package vaultgate

import (
	"errors"
	"strings"
)

// Config defines a public type used by vaultgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Pin      PinConfig
	Password PasswordConfig
	Face     FaceConfig
	TOTP     TOTPConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
METHOD CONFIG
====================================
*/

// PinConfig defines a public type used by vaultgate APIs.
//
// PinConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PinConfig struct {
	MinLength int
}

// PasswordConfig defines a public type used by vaultgate APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	MinLength int
}

// FaceConfig defines a public type used by vaultgate APIs.
//
// FaceConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type FaceConfig struct {
	MaxSampleBytes int
}

// TOTPConfig defines a public type used by vaultgate APIs.
//
// TOTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TOTPConfig struct {
	Enabled     bool
	Issuer      string
	AccountName string
	Digits      int
	Period      int
	Algorithm   string
	Skew        int
	SecretSize  int
}

/*
====================================
AMBIENT CONFIG
====================================
*/

// AuditConfig defines a public type used by vaultgate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by vaultgate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Pin: PinConfig{
			MinLength: 4,
		},
		Password: PasswordConfig{
			MinLength: 6,
		},
		Face: FaceConfig{
			MaxSampleBytes: 8 << 20,
		},
		TOTP: TOTPConfig{
			Enabled:     false,
			Issuer:      "",
			AccountName: "vault-operator",
			Digits:      6,
			Period:      30,
			Algorithm:   "SHA1",
			Skew:        1,
			SecretSize:  20,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Pin
	if c.Pin.MinLength < 4 {
		return errors.New("Pin MinLength must be >= 4")
	}

	// Password
	if c.Password.MinLength < 6 {
		return errors.New("Password MinLength must be >= 6")
	}

	// Face
	if c.Face.MaxSampleBytes <= 0 {
		return errors.New("Face MaxSampleBytes must be > 0")
	}

	// TOTP
	if c.TOTP.Enabled {
		if c.TOTP.Issuer == "" {
			return errors.New("TOTP Issuer is required when TOTP is enabled")
		}
		if c.TOTP.AccountName == "" {
			return errors.New("TOTP AccountName is required when TOTP is enabled")
		}
		if c.TOTP.Digits != 6 && c.TOTP.Digits != 8 {
			return errors.New("TOTP Digits must be 6 or 8")
		}
		if c.TOTP.Period < 15 {
			return errors.New("TOTP Period must be >= 15 seconds")
		}
		if c.TOTP.Skew < 0 {
			return errors.New("TOTP Skew must be >= 0")
		}
		if c.TOTP.SecretSize < 16 {
			return errors.New("TOTP SecretSize must be >= 16 bytes")
		}
		switch strings.ToUpper(c.TOTP.Algorithm) {
		case "", "SHA1", "SHA256", "SHA512":
			// valid (empty treated as SHA1)
		default:
			return errors.New("TOTP Algorithm must be SHA1, SHA256, or SHA512")
		}
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
