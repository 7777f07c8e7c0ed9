package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiryLabel(t *testing.T) {
	t.Run("valid label", func(t *testing.T) {
		now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

		exp, ok := ParseExpiryLabel("26 JAN", now)
		require.True(t, ok)

		assert.Equal(t, "2026-01-26", exp.ExpiryKey)
		assert.Equal(t, "26JAN", exp.SymbolExpiry)
		assert.Equal(t, "26 JAN", exp.DisplayText)
	})

	t.Run("single digit day is zero padded", func(t *testing.T) {
		now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

		exp, ok := ParseExpiryLabel("5 FEB", now)
		require.True(t, ok)

		assert.Equal(t, "2026-02-05", exp.ExpiryKey)
	})

	t.Run("december rolls january into next year", func(t *testing.T) {
		now := time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC)

		exp, ok := ParseExpiryLabel("26 JAN", now)
		require.True(t, ok)

		assert.Equal(t, "2026-01-26", exp.ExpiryKey)
		assert.Equal(t, "26JAN", exp.SymbolExpiry)
	})

	t.Run("current month stays in current year", func(t *testing.T) {
		now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

		exp, ok := ParseExpiryLabel("26 FEB", now)
		require.True(t, ok)

		assert.Equal(t, "2026-02-26", exp.ExpiryKey)
	})

	t.Run("lowercase month is accepted", func(t *testing.T) {
		now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

		exp, ok := ParseExpiryLabel("26 jan", now)
		require.True(t, ok)

		assert.Equal(t, "2026-01-26", exp.ExpiryKey)
	})

	t.Run("rejected labels", func(t *testing.T) {
		now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

		for _, text := range []string{
			"",
			"26",
			"26 JAN 2026",
			"26 JANUARY",
			"26 XXX",
			"banknifty",
			"xx JAN",
			"0 JAN",
			"32 JAN",
		} {
			_, ok := ParseExpiryLabel(text, now)
			assert.False(t, ok, "expected %q to be rejected", text)
		}
	})
}

func TestExpiryDescriptorDate(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	exp, ok := ParseExpiryLabel("26 JAN", now)
	require.True(t, ok)

	d, err := exp.Date()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC), d)
}

func TestFilterExpiries(t *testing.T) {
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	parse := func(texts ...string) []*ExpiryDescriptor {
		var out []*ExpiryDescriptor
		for _, text := range texts {
			exp, ok := ParseExpiryLabel(text, now)
			if ok {
				out = append(out, exp)
			}
		}

		return out
	}

	t.Run("deduplicates and sorts ascending", func(t *testing.T) {
		expiries := parse("02 FEB", "26 JAN", "02 FEB", "13 JAN")

		out := FilterExpiries(expiries, now, 4, 45)
		require.Len(t, out, 3)

		assert.Equal(t, "2026-01-13", out[0].ExpiryKey)
		assert.Equal(t, "2026-01-26", out[1].ExpiryKey)
		assert.Equal(t, "2026-02-02", out[2].ExpiryKey)
	})

	t.Run("caps the number of retained expiries", func(t *testing.T) {
		expiries := parse("13 JAN", "20 JAN", "26 JAN", "02 FEB", "09 FEB")

		out := FilterExpiries(expiries, now, 4, 45)
		require.Len(t, out, 4)

		assert.Equal(t, "2026-02-02", out[3].ExpiryKey)
	})

	t.Run("drops past expiries", func(t *testing.T) {
		expiries := parse("05 JAN", "26 JAN")

		out := FilterExpiries(expiries, now, 4, 45)
		require.Len(t, out, 1)

		assert.Equal(t, "2026-01-26", out[0].ExpiryKey)
	})

	t.Run("drops expiries beyond the horizon", func(t *testing.T) {
		expiries := parse("26 JAN", "27 MAR")

		out := FilterExpiries(expiries, now, 4, 45)
		require.Len(t, out, 1)

		assert.Equal(t, "2026-01-26", out[0].ExpiryKey)
	})

	t.Run("today is retained", func(t *testing.T) {
		expiries := parse("10 JAN")

		out := FilterExpiries(expiries, now, 4, 45)
		require.Len(t, out, 1)
	})

	t.Run("cap applies before the recency window", func(t *testing.T) {
		// 05 JAN is in the past but still consumes a slot before filtering
		expiries := parse("05 JAN", "13 JAN", "20 JAN", "26 JAN", "02 FEB")

		out := FilterExpiries(expiries, now, 4, 45)
		require.Len(t, out, 3)

		assert.Equal(t, "2026-01-26", out[2].ExpiryKey)
	})
}
