package device

import (
	"context"
	"sync"
	"time"

	vaultgate "github.com/MrEthical07/vaultgate"
)

// ScriptedChallenger replays a fixed sequence of challenge outcomes, standing
// in for the operating system biometric sheet. Once the script is exhausted
// every further challenge succeeds.
type ScriptedChallenger struct {
	mu       sync.Mutex
	outcomes []vaultgate.ChallengeOutcome
	next     int
	delay    time.Duration
}

// NewScriptedChallenger builds a challenger that waits delay before answering
// each challenge and then pops the next scripted outcome.
func NewScriptedChallenger(delay time.Duration, outcomes ...vaultgate.ChallengeOutcome) *ScriptedChallenger {
	return &ScriptedChallenger{
		outcomes: outcomes,
		delay:    delay,
	}
}

func (c *ScriptedChallenger) Challenge(ctx context.Context) (vaultgate.ChallengeOutcome, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return vaultgate.ChallengeCancelled, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return vaultgate.ChallengeCancelled, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.next >= len(c.outcomes) {
		return vaultgate.ChallengeSuccess, nil
	}
	out := c.outcomes[c.next]
	c.next++
	return out, nil
}

// Remaining reports how many scripted outcomes have not been consumed yet.
func (c *ScriptedChallenger) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.outcomes) - c.next
}
