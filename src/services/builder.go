package services

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/worker"
)

// SymbolBuilder constructs the option symbol records for one expiry: the
// cross product of filtered strikes and {CE, PE}, joined against the reference
// index and, when enrichment is enabled, the search resolver and quote
// fetcher. Resolver and Quotes may be nil to skip enrichment entirely.
type SymbolBuilder struct {
	Index           *ReferenceIndex
	Resolver        *SearchResolver
	Quotes          *QuoteFetcher
	EnrichmentWidth int
}

func NewSymbolBuilder(index *ReferenceIndex, resolver *SearchResolver, quotes *QuoteFetcher) *SymbolBuilder {
	return &SymbolBuilder{
		Index:           index,
		Resolver:        resolver,
		Quotes:          quotes,
		EnrichmentWidth: 30,
	}
}

// Build emits one CE and one PE record per strike, strikes in ascending input
// order. A failed search or quote lookup for one record is logged and leaves
// that record's fields absent; it never aborts the batch.
func (b *SymbolBuilder) Build(ctx context.Context, underlying string, symbolExpiry string, expiryKey string, strikes []int) []models.OptionSymbolRecord {
	tracer := otel.Tracer("SymbolBuilder")
	ctx, span := tracer.Start(ctx, "SymbolBuilder.Build")
	defer span.End()

	records := make([]models.OptionSymbolRecord, 0, 2*len(strikes))

	for _, strike := range strikes {
		for _, optionType := range models.OptionTypes() {
			records = append(records, b.newRecord(underlying, symbolExpiry, expiryKey, strike, optionType))
		}
	}

	if b.Resolver != nil && b.Quotes != nil {
		b.enrich(ctx, records)
	}

	return records
}

func (b *SymbolBuilder) newRecord(underlying string, symbolExpiry string, expiryKey string, strike int, optionType models.OptionType) models.OptionSymbolRecord {
	record := models.OptionSymbolRecord{
		Symbol:     models.BuildCompactSymbol(underlying, symbolExpiry, strike, optionType),
		OptionType: optionType,
	}

	tradingSymbol, ok := models.BuildTradingSymbol(record.Symbol, expiryKey)
	if !ok {
		log.Warnf("SymbolBuilder: newRecord: %s: unexpected symbol shape, skipping reference lookup", record.Symbol)
		return record
	}

	record.TradingSymbol = &tradingSymbol

	if ref, found := b.Index.Lookup(tradingSymbol); found {
		record.InstrumentKey = &ref.InstrumentKey
		record.ExchangeToken = &ref.ExchangeToken
	}

	return record
}

// enrich fans per-symbol search resolution and quote fetches across a wide
// pool; both calls block on network I/O, so the pool runs wider than the
// per-expiry pool.
func (b *SymbolBuilder) enrich(ctx context.Context, records []models.OptionSymbolRecord) {
	type enrichment struct {
		venue *models.VenueIdentifier
		quote models.Quote
	}

	tasks := make([]worker.Task[int, enrichment], 0, len(records))

	for i := range records {
		if records[i].TradingSymbol == nil {
			continue
		}

		tradingSymbol := *records[i].TradingSymbol

		tasks = append(tasks, worker.Task[int, enrichment]{
			Key: i,
			Run: func() (enrichment, error) {
				venue, err := b.Resolver.Resolve(ctx, tradingSymbol)
				if err != nil {
					return enrichment{}, err
				}

				if venue == nil {
					return enrichment{quote: models.EmptyQuote()}, nil
				}

				return enrichment{
					venue: venue,
					quote: b.Quotes.FetchQuote(ctx, venue.ID),
				}, nil
			},
		})
	}

	results := worker.Run(b.EnrichmentWidth, tasks)

	for i, res := range results {
		if res.Err != nil {
			log.Warnf("SymbolBuilder: enrich: %s: %v", records[i].Symbol, res.Err)
			continue
		}

		if res.Value.venue != nil {
			records[i].VenueID = &res.Value.venue.ID
			records[i].VenueTitle = &res.Value.venue.Title
		}

		quote := res.Value.quote
		records[i].DayHigh = quote.DayHigh
		records[i].DayLow = quote.DayLow
		records[i].Open = quote.Open
		records[i].Close = quote.Close
		records[i].MarketOpen = quote.MarketOpen
	}
}
