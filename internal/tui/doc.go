// Package tui renders the vaultgate demo journey as a terminal UI.
//
// One bubbletea model drives all four screens. Key handling follows the
// orchestrator's screen contract: each screen exposes only the operations
// that are legal on it, and every operation runs as a tea.Cmd so the event
// loop never blocks on a collaborator.
//
// # What this package must NOT do
//
//   - Reach into orchestrator internals. Everything renders from Snapshot,
//     PostureReport, and operation results.
//   - Block inside Update. Orchestrator calls happen in commands.
package tui
