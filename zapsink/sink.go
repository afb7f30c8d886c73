package zapsink

import (
	"context"

	vaultgate "github.com/MrEthical07/vaultgate"
	"go.uber.org/zap"
)

// Sink forwards audit events to a zap logger as structured log entries.
//
// Successful events log at Info, failed events at Warn. The event type
// becomes the log message and every populated event field becomes a typed
// zap field.
type Sink struct {
	logger *zap.Logger
}

// New wraps the given logger in an audit sink. A nil logger degrades to
// zap.NewNop so the sink is always safe to emit into.
func New(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{logger: logger}
}

func (s *Sink) Emit(_ context.Context, event vaultgate.AuditEvent) {
	if s == nil || s.logger == nil {
		return
	}

	fields := make([]zap.Field, 0, 8)
	fields = append(fields,
		zap.Time("timestamp", event.Timestamp),
		zap.String("screen", event.Screen),
		zap.Bool("success", event.Success),
	)
	if event.Method != "" {
		fields = append(fields, zap.String("method", event.Method))
	}
	if event.AttemptID != "" {
		fields = append(fields, zap.String("attempt_id", event.AttemptID))
	}
	if event.DeviceLabel != "" {
		fields = append(fields, zap.String("device_label", event.DeviceLabel))
	}
	if event.PresentationID != "" {
		fields = append(fields, zap.String("presentation_id", event.PresentationID))
	}
	if event.Error != "" {
		fields = append(fields, zap.String("error", event.Error))
	}
	for k, v := range event.Metadata {
		fields = append(fields, zap.String("meta_"+k, v))
	}

	if event.Success {
		s.logger.Info(event.EventType, fields...)
		return
	}
	s.logger.Warn(event.EventType, fields...)
}
