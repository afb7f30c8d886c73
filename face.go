package vaultgate

import (
	"context"
	"fmt"
)

// PresenceMatcher is the default FaceMatcher. It treats the mere presence of
// a captured sample and a stored reference as a match and never inspects the
// bytes. Swap in a real matcher through Builder.WithFaceMatcher to harden
// the face method without touching orchestration.
type PresenceMatcher struct{}

// Match describes the match operation and its observable behavior.
//
// Match may return an error when input validation, dependency calls, or security checks fail.
// Match does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (PresenceMatcher) Match(_ context.Context, captured, reference []byte) error {
	if len(captured) == 0 || len(reference) == 0 {
		return fmt.Errorf("%w: missing sample", ErrFaceRejected)
	}
	return nil
}
