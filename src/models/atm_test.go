package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestStrike(t *testing.T) {
	t.Run("rounds to nearest step multiple", func(t *testing.T) {
		assert.Equal(t, 24350, NearestStrike(24362, 50))
		assert.Equal(t, 24400, NearestStrike(24380, 50))
		assert.Equal(t, 48900, NearestStrike(48851, 100))
		assert.Equal(t, 12025, NearestStrike(12030, 25))
	})

	t.Run("exact half rounds up", func(t *testing.T) {
		assert.Equal(t, 24400, NearestStrike(24375, 50))
		assert.Equal(t, 48100, NearestStrike(48050, 100))
	})

	t.Run("result is a multiple of the step", func(t *testing.T) {
		for _, spot := range []float64{18234.55, 24362, 48851.3, 71999.95} {
			for _, step := range []int{25, 50, 100} {
				assert.Zero(t, NearestStrike(spot, step)%step)
			}
		}
	})
}

func TestFilterStrikes(t *testing.T) {
	strikes := []int{23800, 23850, 24350, 24850, 24900}

	t.Run("keeps strikes within the window", func(t *testing.T) {
		out := FilterStrikes(strikes, 24350, 500)
		assert.Equal(t, []int{23850, 24350, 24850}, out)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		out := FilterStrikes([]int{23850, 24850}, 24350, 500)
		assert.Len(t, out, 2)
	})

	t.Run("empty when nothing is in range", func(t *testing.T) {
		out := FilterStrikes([]int{10000}, 24350, 500)
		assert.Empty(t, out)
	})
}
