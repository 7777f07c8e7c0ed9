package services

import (
	"github.com/quantpulse/option-snapshot/src/models"
)

// ReferenceIndex maps canonical trading symbols to exchange instrument
// identifiers. It is built once before any worker starts and never mutated
// afterwards, so concurrent readers need no locking.
type ReferenceIndex struct {
	entries map[string]models.InstrumentRef
}

// NewReferenceIndex builds the lookup structure in one pass. Records without a
// trading symbol are skipped.
func NewReferenceIndex(instruments []models.Instrument) *ReferenceIndex {
	entries := make(map[string]models.InstrumentRef, len(instruments))

	for _, inst := range instruments {
		if inst.TradingSymbol == "" {
			continue
		}

		entries[inst.TradingSymbol] = models.InstrumentRef{
			InstrumentKey: inst.InstrumentKey,
			ExchangeToken: inst.ExchangeToken.String(),
		}
	}

	return &ReferenceIndex{entries: entries}
}

// Lookup resolves a trading symbol to its identifier pair.
func (ix *ReferenceIndex) Lookup(tradingSymbol string) (models.InstrumentRef, bool) {
	ref, ok := ix.entries[tradingSymbol]
	return ref, ok
}

// Len reports the number of indexed symbols.
func (ix *ReferenceIndex) Len() int {
	return len(ix.entries)
}
