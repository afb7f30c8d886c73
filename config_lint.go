package vaultgate

import (
	"errors"
	"fmt"
	"strings"
)

/*
====================================
LINT SEVERITY
====================================
*/

// LintSeverity defines a public type used by vaultgate APIs.
//
// LintSeverity instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintSeverity uint8

// Lint severities are exported constants or variables used by the authentication engine.
const (
	LintInfo LintSeverity = iota
	LintLow
	LintMedium
	LintHigh
)

// String describes the string operation and its observable behavior.
//
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s LintSeverity) String() string {
	switch s {
	case LintInfo:
		return "info"
	case LintLow:
		return "low"
	case LintMedium:
		return "medium"
	case LintHigh:
		return "high"
	default:
		return "unknown"
	}
}

/*
====================================
LINT WARNINGS
====================================
*/

// LintWarning defines a public type used by vaultgate APIs.
//
// LintWarning instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintWarning struct {
	Code     string
	Severity LintSeverity
	Detail   string
}

// LintWarnings defines a public type used by vaultgate APIs.
//
// LintWarnings instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintWarnings []LintWarning

// Codes describes the codes operation and its observable behavior.
//
// Codes does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws LintWarnings) Codes() []string {
	codes := make([]string, 0, len(ws))
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	return codes
}

// BySeverity describes the byseverity operation and its observable behavior.
//
// BySeverity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws LintWarnings) BySeverity(min LintSeverity) LintWarnings {
	out := make(LintWarnings, 0, len(ws))
	for _, w := range ws {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError describes the aserror operation and its observable behavior.
//
// AsError may return an error when input validation, dependency calls, or security checks fail.
// AsError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws LintWarnings) AsError(min LintSeverity) error {
	flagged := ws.BySeverity(min)
	if len(flagged) == 0 {
		return nil
	}
	return errors.New("config lint: " + strings.Join(flagged.Codes(), ", "))
}

/*
====================================
LINT RULES
====================================
*/

// Lint describes the lint operation and its observable behavior.
//
// Lint does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Lint reports posture warnings that Validate accepts on purpose. The demo
// defaults trigger several of them; callers that want a stricter stance can
// fail startup with AsError.
func (c *Config) Lint() LintWarnings {
	var ws LintWarnings

	// The credential store never hashes, so this one is unconditional.
	ws = append(ws, LintWarning{
		Code:     "plaintext_store",
		Severity: LintInfo,
		Detail:   "credentials are held in memory without hashing",
	})

	if c.Pin.MinLength < 6 {
		ws = append(ws, LintWarning{
			Code:     "pin_min_length_low",
			Severity: LintMedium,
			Detail:   fmt.Sprintf("pin minimum of %d digits is trivially guessable", c.Pin.MinLength),
		})
	}
	if c.Password.MinLength < 10 {
		ws = append(ws, LintWarning{
			Code:     "password_min_length_low",
			Severity: LintLow,
			Detail:   fmt.Sprintf("password minimum of %d characters is short", c.Password.MinLength),
		})
	}
	if c.Face.MaxSampleBytes > 16<<20 {
		ws = append(ws, LintWarning{
			Code:     "face_sample_large",
			Severity: LintLow,
			Detail:   "face samples above 16MB are held verbatim per attempt",
		})
	}

	if c.TOTP.Enabled {
		if c.TOTP.Skew > 1 {
			ws = append(ws, LintWarning{
				Code:     "totp_skew_large",
				Severity: LintHigh,
				Detail:   fmt.Sprintf("accepting %d adjacent steps guts the time factor", c.TOTP.Skew),
			})
		}
		if c.TOTP.Period > 60 {
			ws = append(ws, LintWarning{
				Code:     "totp_period_long",
				Severity: LintMedium,
				Detail:   fmt.Sprintf("a %d second step keeps codes valid too long", c.TOTP.Period),
			})
		}
	}

	if !c.Audit.Enabled {
		ws = append(ws, LintWarning{
			Code:     "audit_disabled",
			Severity: LintMedium,
			Detail:   "no audit trail will be produced",
		})
	} else if c.Audit.DropIfFull {
		ws = append(ws, LintWarning{
			Code:     "audit_lossy",
			Severity: LintLow,
			Detail:   "audit events are dropped when the buffer is full",
		})
	}

	if !c.Metrics.Enabled {
		ws = append(ws, LintWarning{
			Code:     "metrics_disabled",
			Severity: LintLow,
			Detail:   "operation counters will stay at zero",
		})
		if c.Metrics.EnableLatencyHistograms {
			ws = append(ws, LintWarning{
				Code:     "histograms_ignored",
				Severity: LintLow,
				Detail:   "latency histograms require metrics to be enabled",
			})
		}
	}

	return ws
}
