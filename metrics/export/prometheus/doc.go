// Package prometheus provides Prometheus collectors for vaultgate metrics.
//
// [NewPrometheusExporter] accepts a [vaultgate.Orchestrator] and exposes an [http.Handler]
// that renders all vaultgate counters and histograms in Prometheus text exposition format.
// Counter names are prefixed vaultgate_*_total; the single histogram is
// vaultgate_collaborator_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the Handler.
//   - Mutate orchestrator state.
package prometheus
