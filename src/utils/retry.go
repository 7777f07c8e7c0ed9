package utils

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// RetryPolicy retries an operation a fixed number of times with a fixed delay
// between attempts. Retries sleep the calling goroutine, so worker pool width
// is also the retry-concurrency ceiling.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do runs fn until it succeeds or the attempt budget is exhausted. The wrapped
// error of the final attempt is returned on exhaustion.
func (p RetryPolicy) Do(op string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err
			log.Warnf("%s: attempt %d/%d failed: %v", op, attempt, p.MaxAttempts, err)

			if attempt < p.MaxAttempts {
				time.Sleep(p.Delay)
			}

			continue
		}

		return nil
	}

	return fmt.Errorf("%s: retries exhausted after %d attempts: %w", op, p.MaxAttempts, lastErr)
}
