package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicyDo(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		policy := RetryPolicy{MaxAttempts: 3, Delay: 0}

		calls := 0
		err := policy.Do("op", func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops retrying after a success", func(t *testing.T) {
		policy := RetryPolicy{MaxAttempts: 5, Delay: 0}

		calls := 0
		err := policy.Do("op", func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("transient")
			}

			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts the attempt budget", func(t *testing.T) {
		policy := RetryPolicy{MaxAttempts: 3, Delay: 0}

		calls := 0
		err := policy.Do("op", func() error {
			calls++
			return fmt.Errorf("permanent")
		})

		assert.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, err.Error(), "retries exhausted")
		assert.Contains(t, err.Error(), "permanent")
	})
}
