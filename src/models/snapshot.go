package models

import "time"

// OptionSymbolRecord is one tradable contract in an expiry bucket. Nullable
// fields stay nil when the corresponding resolution or enrichment step missed;
// a record is immutable once placed into the snapshot.
type OptionSymbolRecord struct {
	Symbol        string     `json:"symbol" bson:"symbol" csv:"symbol"`
	TradingSymbol *string    `json:"trading_symbol" bson:"trading_symbol" csv:"trading_symbol"`
	OptionType    OptionType `json:"option_type" bson:"option_type" csv:"option_type"`
	InstrumentKey *string    `json:"instrument_key" bson:"instrument_key" csv:"instrument_key"`
	ExchangeToken *string    `json:"exchange_token" bson:"exchange_token" csv:"exchange_token"`
	VenueID       *string    `json:"venue_id" bson:"venue_id" csv:"venue_id"`
	VenueTitle    *string    `json:"venue_title" bson:"venue_title" csv:"venue_title"`
	DayHigh       *float64   `json:"day_high" bson:"day_high" csv:"day_high"`
	DayLow        *float64   `json:"day_low" bson:"day_low" csv:"day_low"`
	Open          *float64   `json:"open" bson:"open" csv:"open"`
	Close         *float64   `json:"close" bson:"close" csv:"close"`
	MarketOpen    bool       `json:"market_open" bson:"market_open" csv:"market_open"`
}

// ExpiryBucket holds every symbol retained for one (underlying, expiry) pair.
type ExpiryBucket struct {
	Spot       float64              `json:"spot" bson:"spot"`
	ATM        int                  `json:"atm" bson:"atm"`
	StrikeStep int                  `json:"strike_step" bson:"strike_step"`
	Symbols    []OptionSymbolRecord `json:"symbols" bson:"symbols"`
}

// SnapshotDocument is the persisted output of one run: underlying name ->
// expiry key -> bucket. The document for a trade date is replaced wholesale on
// every rerun that day.
type SnapshotDocument struct {
	TradeDate string                             `json:"trade_date" bson:"trade_date"`
	UpdatedAt time.Time                          `json:"updated_at" bson:"updated_at"`
	Data      map[string]map[string]ExpiryBucket `json:"data" bson:"data"`
}

// SymbolCount is the total number of option symbol records in the document.
func (d *SnapshotDocument) SymbolCount() int {
	count := 0
	for _, expiries := range d.Data {
		for _, bucket := range expiries {
			count += len(bucket.Symbols)
		}
	}

	return count
}
