// Package otel provides OpenTelemetry metric exporter bindings for vaultgate counters and
// histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each vaultgate metric
// and Int64ObservableGauge per histogram bucket. A single callback reads
// [vaultgate.Orchestrator.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider. Callers supply the Meter.
//   - Mutate orchestrator state.
package otel
