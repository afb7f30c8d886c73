package vaultgate

import (
	"context"
	"fmt"
	"time"
)

// captureFrame opens the camera, captures one frame, and releases the
// device. The stream is closed on every path out of this function. Called
// with the orchestrator lock held.
func (o *Orchestrator) captureFrame(ctx context.Context) ([]byte, error) {
	if o.camera == nil {
		return nil, ErrOrchestratorNotReady
	}

	stream, err := o.camera.Open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		return nil, fmt.Errorf("%w: open: %v", ErrCaptureFailed, err)
	}
	o.metricInc(MetricCameraAcquired)
	defer func() {
		_ = stream.Close()
		o.metricInc(MetricCameraReleased)
	}()

	start := time.Now()
	frame, err := stream.Capture(ctx)
	o.metricObserve(MetricCollaboratorLatency, time.Since(start))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	if len(frame) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrCaptureFailed)
	}
	if max := o.config.Face.MaxSampleBytes; max > 0 && len(frame) > max {
		return nil, ErrSampleTooLarge
	}

	return frame, nil
}
