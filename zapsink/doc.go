// Package zapsink adapts a zap logger to the vaultgate audit sink contract.
//
// [New] wraps a *zap.Logger so every audit event the orchestrator emits lands
// in the host application's log stream with typed fields. Hosts that already
// run zap get audit output without writing their own sink.
//
// # What this package must NOT do
//
//   - Own logger lifecycle. Callers construct and Sync the logger.
//   - Block. Emit must stay cheap because the dispatcher calls it inline.
package zapsink
