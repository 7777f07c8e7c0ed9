package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/utils"
)

const DefaultQuoteURL = "https://groww.in/v1/api/stocks_fo_data/v1/tr_live_prices/exchange/NSE/segment/FNO/latest_ohlc"

// QuoteFetcher fetches a live OHLC quote for a resolved venue identifier.
// Quote enrichment is always best-effort: exhausting the retry budget yields
// an empty quote, never an error that could abort the batch.
type QuoteFetcher struct {
	Client *utils.Client
	URL    string
	Retry  utils.RetryPolicy
}

func NewQuoteFetcher(client *utils.Client) *QuoteFetcher {
	return &QuoteFetcher{
		Client: client,
		URL:    DefaultQuoteURL,
		Retry:  utils.RetryPolicy{MaxAttempts: 3, Delay: time.Second},
	}
}

// FetchQuote retries the quote endpoint up to the policy budget. On
// exhaustion all numeric fields are absent and market_open is false.
func (f *QuoteFetcher) FetchQuote(ctx context.Context, identifier string) models.Quote {
	url := fmt.Sprintf("%s/%s", f.URL, identifier)

	var dto models.QuoteResponseDTO

	err := f.Retry.Do(fmt.Sprintf("FetchQuote %s", identifier), func() error {
		return f.Client.GetJSON(ctx, url, &dto)
	})

	if err != nil {
		log.Warnf("QuoteFetcher: FetchQuote: %s: %v", identifier, err)
		return models.EmptyQuote()
	}

	return models.Quote{
		DayHigh:    &dto.High,
		DayLow:     &dto.Low,
		Open:       &dto.Open,
		Close:      &dto.Close,
		MarketOpen: dto.MarketOpen,
	}
}
