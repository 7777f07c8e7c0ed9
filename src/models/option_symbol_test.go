package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCompactSymbol(t *testing.T) {
	assert.Equal(t, "NIFTY26JAN24350CE", BuildCompactSymbol("NIFTY", "26JAN", 24350, OptionTypeCall))
	assert.Equal(t, "BANKNIFTY26FEB52000PE", BuildCompactSymbol("BANKNIFTY", "26FEB", 52000, OptionTypePut))
}

func TestBuildTradingSymbol(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ts, ok := BuildTradingSymbol("NIFTY26JAN24350CE", "2026-01-26")
		require.True(t, ok)

		assert.Equal(t, "NIFTY 24350 CE 26 JAN 26", ts)
	})

	t.Run("put side", func(t *testing.T) {
		ts, ok := BuildTradingSymbol("BANKNIFTY26FEB52000PE", "2026-02-05")
		require.True(t, ok)

		assert.Equal(t, "BANKNIFTY 52000 PE 05 FEB 26", ts)
	})

	t.Run("malformed symbol yields absent trading symbol", func(t *testing.T) {
		for _, symbol := range []string{
			"",
			"NIFTY24350CE",
			"NIFTY26JAN24350XX",
			"nifty26JAN24350CE",
			"NIFTY26JANUARY24350CE",
		} {
			_, ok := BuildTradingSymbol(symbol, "2026-01-26")
			assert.False(t, ok, "expected %q to be rejected", symbol)
		}
	})

	t.Run("malformed expiry key yields absent trading symbol", func(t *testing.T) {
		_, ok := BuildTradingSymbol("NIFTY26JAN24350CE", "26-01-2026")
		assert.False(t, ok)
	})
}
