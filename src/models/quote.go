package models

// ExchangeAggRequestDTO is one exchange segment's entry in the live index
// batch request.
type ExchangeAggRequestDTO struct {
	PriceSymbolList []string `json:"priceSymbolList"`
	IndexSymbolList []string `json:"indexSymbolList"`
}

type LiveIndexRequestDTO struct {
	ExchangeAggReqMap map[string]ExchangeAggRequestDTO `json:"exchangeAggReqMap"`
}

type IndexLivePointsDTO struct {
	Value float64 `json:"value"`
}

type ExchangeAggResponseDTO struct {
	IndexLivePointsMap map[string]IndexLivePointsDTO `json:"indexLivePointsMap"`
}

type LiveIndexResponseDTO struct {
	ExchangeAggRespMap map[string]ExchangeAggResponseDTO `json:"exchangeAggRespMap"`
}

// SearchResponseDTO is the external search endpoint's result page.
type SearchResponseDTO struct {
	Data struct {
		Content []SearchContentDTO `json:"content"`
	} `json:"data"`
}

type SearchContentDTO struct {
	ID       string `json:"id"`
	SearchID string `json:"search_id"`
	Title    string `json:"title"`
}

// VenueIdentifier is a resolved venue-specific tradable identifier. The match
// is heuristic; consumers treat it as advisory.
type VenueIdentifier struct {
	ID    string
	Title string
}

// QuoteResponseDTO is the live quote endpoint's OHLC payload.
type QuoteResponseDTO struct {
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Open       float64 `json:"open"`
	Close      float64 `json:"close"`
	MarketOpen bool    `json:"marketOpen"`
}

// Quote carries best-effort OHLC enrichment. All numeric fields are nil and
// MarketOpen is false when the fetch exhausted its retries.
type Quote struct {
	DayHigh    *float64
	DayLow     *float64
	Open       *float64
	Close      *float64
	MarketOpen bool
}

// EmptyQuote is the absent-on-exhaustion value.
func EmptyQuote() Quote {
	return Quote{MarketOpen: false}
}
