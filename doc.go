// Package vaultgate provides a demo multi-factor authentication core that walks
// a single operator from a locked bootstrap screen through method setup and a
// multi-method authentication attempt into an unlocked vault.
//
// The package is a teaching skeleton, not a security product: credentials are
// held in plaintext in process memory, the face check is a placeholder, and
// nothing persists across restarts. Orchestrator methods serialize on an
// internal mutex, so callers may share one instance across goroutines after
// initialization through [Builder.Build].
//
// # Architecture boundaries
//
// vaultgate is the public surface. It exposes [Orchestrator], [Builder],
// [Config], and value types (Snapshot, MetricsSnapshot, PostureReport, etc.).
// Device-facing collaborators are interfaces ([CapabilityProbe],
// [BiometricChallenger], [Camera], [FaceMatcher]) so hosts decide what a
// fingerprint prompt or a camera actually is.
//
// # What this package must NOT do
//
//   - Hash, encrypt, or persist credentials. Comparison is byte-exact against
//     process memory and that is the point of the exercise.
//   - Call a collaborator before its guards pass, or mutate state before the
//     collaborator resolves.
//   - Import any sub-package that re-imports vaultgate (no import cycles).
//
// # Screen contract
//
// Every operation is legal on exactly one screen: UnlockSystem on Lock, the
// setup family on Setup, the attempt family on Auth, LockVault on Vault.
// Anything else fails with ErrScreenMismatch and changes nothing. The Auth to
// Vault transition is recomputed from scratch after every completed method and
// never depends on completion order.
package vaultgate
