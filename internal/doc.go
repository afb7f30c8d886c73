// Package internal contains helper utilities that are intentionally private
// to vaultgate, currently the attempt identifier generator shared by the
// orchestrator and its audit trail.
//
// # Sub-packages
//
//   - device - stand-in collaborators (probe, challenger, cameras) for demos and tests
//   - tui - the terminal frontend used by cmd/vaultgate-demo
//
// # What this package must NOT do
//
//   - Export types that appear in the public vaultgate API.
//   - Be imported by any package outside the vaultgate module.
package internal
