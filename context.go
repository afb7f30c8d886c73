package vaultgate

import "context"

type deviceLabelContextKey struct{}
type presentationIDContextKey struct{}

// WithDeviceLabel attaches a human-readable device label to ctx. The
// Orchestrator stamps it onto every audit event emitted for the call, which
// lets a single sink separate events from multiple demo devices.
//
//	Docs: docs/audit.md
func WithDeviceLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, deviceLabelContextKey{}, label)
}

// WithPresentationID attaches an identifier for the presentation layer
// driving the call (tui, http, journey). It lands on audit events next to
// the device label and never influences orchestration decisions.
//
//	Docs: docs/audit.md
func WithPresentationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, presentationIDContextKey{}, id)
}

func deviceLabelFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	label, _ := ctx.Value(deviceLabelContextKey{}).(string)
	return label
}

func presentationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(presentationIDContextKey{}).(string)
	return id
}
