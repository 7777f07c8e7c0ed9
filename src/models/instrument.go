package models

import "encoding/json"

// Instrument is one record of the bulk reference dataset. The dataset carries
// many more fields; only the ones the reference index needs are decoded.
// ExchangeToken is a json.Number because the upstream file is inconsistent
// about quoting it.
type Instrument struct {
	TradingSymbol string      `json:"trading_symbol"`
	InstrumentKey string      `json:"instrument_key"`
	ExchangeToken json.Number `json:"exchange_token"`
}

// InstrumentRef is the resolved identifier pair for a trading symbol.
type InstrumentRef struct {
	InstrumentKey string
	ExchangeToken string
}
