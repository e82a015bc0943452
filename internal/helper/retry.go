package helper

import (
	"context"
	"math"
	"time"

	"github.com/caas-team/ringside/internal/logger"
)

// RetryConfig configures the retry behavior of an [Effector].
// A Count of zero means a single attempt without retries.
type RetryConfig struct {
	Count int           `json:"count" yaml:"count"`
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// Effector will be the function that is called by the Retry function
type Effector func(context.Context) error

// Retry wraps the effector in an exponential backoff retry loop
func Retry(effector Effector, rc RetryConfig) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		log := logger.FromContext(ctx)
		for r := 1; ; r++ {
			err := effector(ctx)
			if err == nil || r > rc.Count {
				return err
			}

			delay := getExpBackoff(rc.Delay, r)
			log.Debug("Effector call failed, retrying", "delay", delay.String(), "attempt", r)

			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}

// calculate the exponential delay for a given iteration
// first iteration is 1
func getExpBackoff(initialDelay time.Duration, iteration int) time.Duration {
	if iteration <= 1 {
		return initialDelay
	}
	return time.Duration(math.Pow(2, float64(iteration-1))) * initialDelay
}
