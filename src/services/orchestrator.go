package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/utils"
	"github.com/quantpulse/option-snapshot/src/worker"
)

// SnapshotStore persists the day's document. The upsert is idempotent: a
// rerun for the same trade date replaces data and updated_at wholesale.
type SnapshotStore interface {
	UpsertSnapshot(ctx context.Context, doc *models.SnapshotDocument) error
}

// Orchestrator drives one pipeline run: a single batched live index call,
// then per underlying the expiry discovery, per-expiry fan-out over a bounded
// pool, snapshot assembly, and the persistence upsert.
type Orchestrator struct {
	Underlyings []models.UnderlyingConfig
	Scraper     *Scraper
	LiveIndex   *LiveIndexService
	Builder     *SymbolBuilder
	Store       SnapshotStore

	MaxExpiries        int
	MaxExpiryDaysAhead int
	ExpiryPoolWidth    int
}

func NewOrchestrator(underlyings []models.UnderlyingConfig, scraper *Scraper, liveIndex *LiveIndexService, builder *SymbolBuilder, store SnapshotStore) *Orchestrator {
	return &Orchestrator{
		Underlyings:        underlyings,
		Scraper:            scraper,
		LiveIndex:          liveIndex,
		Builder:            builder,
		Store:              store,
		MaxExpiries:        models.DefaultMaxExpiriesPerUnderlying,
		MaxExpiryDaysAhead: models.DefaultMaxExpiryDaysAhead,
		ExpiryPoolWidth:    8,
	}
}

// Run builds and persists the snapshot for now's trade date. Failures are
// contained at the smallest unit that can fail independently: one symbol's
// enrichment, one expiry's strikes, one underlying's page. Only the batched
// index call and the final upsert are fatal to the run.
func (o *Orchestrator) Run(ctx context.Context, now time.Time) (*models.SnapshotDocument, error) {
	tracer := otel.Tracer("Orchestrator")
	ctx, span := tracer.Start(ctx, "Orchestrator.Run")
	defer span.End()

	runID := uuid.New().String()[:8]
	logger := log.WithField("run_id", runID)

	liveIndex, err := o.LiveIndex.FetchAll(ctx, o.Underlyings)
	if err != nil {
		return nil, fmt.Errorf("Orchestrator: Run: %w", err)
	}

	doc := &models.SnapshotDocument{
		TradeDate: utils.TradeDate(now),
		UpdatedAt: now,
		Data:      make(map[string]map[string]models.ExpiryBucket),
	}

	for _, cfg := range o.Underlyings {
		spot, ok := liveIndex[cfg.IndexCode()]
		if !ok || spot == 0 {
			logger.Infof("%s: no live index value, skipping", cfg.Name)
			continue
		}

		buckets, err := o.processUnderlying(ctx, cfg, now, spot)
		if err != nil {
			logger.Errorf("%s: %v", cfg.Name, err)
			continue
		}

		doc.Data[cfg.Name] = buckets
		logger.Infof("%s: %d expiries, %d symbols", cfg.Name, len(buckets), countSymbols(buckets))
	}

	if err := o.Store.UpsertSnapshot(ctx, doc); err != nil {
		return nil, fmt.Errorf("Orchestrator: Run: failed to persist snapshot: %w", err)
	}

	logger.Infof("snapshot persisted for %s: %d underlyings, %d symbols", doc.TradeDate, len(doc.Data), doc.SymbolCount())

	return doc, nil
}

// processUnderlying discovers and filters expiries, then fans per-expiry
// strike discovery and symbol construction across the bounded pool. Results
// are collected by expiry key; completion order carries no meaning.
func (o *Orchestrator) processUnderlying(ctx context.Context, cfg models.UnderlyingConfig, now time.Time, spot float64) (map[string]models.ExpiryBucket, error) {
	atm := models.NearestStrike(spot, cfg.StrikeStep)

	expiries, err := o.Scraper.DiscoverExpiries(ctx, cfg, now)
	if err != nil {
		return nil, fmt.Errorf("processUnderlying: %w", err)
	}

	retained := models.FilterExpiries(expiries, now, o.MaxExpiries, o.MaxExpiryDaysAhead)
	if len(retained) == 0 {
		log.Warnf("%s: no expiries retained out of %d discovered", cfg.Name, len(expiries))
		return map[string]models.ExpiryBucket{}, nil
	}

	tasks := make([]worker.Task[string, *models.ExpiryBucket], 0, len(retained))

	for _, exp := range retained {
		exp := exp

		tasks = append(tasks, worker.Task[string, *models.ExpiryBucket]{
			Key: exp.ExpiryKey,
			Run: func() (*models.ExpiryBucket, error) {
				return o.processExpiry(ctx, cfg, exp, spot, atm)
			},
		})
	}

	buckets := make(map[string]models.ExpiryBucket, len(tasks))

	for key, res := range worker.Run(o.ExpiryPoolWidth, tasks) {
		if res.Err != nil {
			log.Errorf("%s %s: %v", cfg.Name, key, res.Err)
			continue
		}

		if res.Value == nil {
			continue
		}

		buckets[key] = *res.Value
	}

	return buckets, nil
}

// processExpiry is one unit of pool work. A nil bucket without error means the
// expiry had no strikes inside the window and contributes nothing.
func (o *Orchestrator) processExpiry(ctx context.Context, cfg models.UnderlyingConfig, exp *models.ExpiryDescriptor, spot float64, atm int) (*models.ExpiryBucket, error) {
	strikes, err := o.Scraper.DiscoverStrikes(ctx, cfg, exp.ExpiryKey)
	if err != nil {
		return nil, fmt.Errorf("processExpiry: %w", err)
	}

	filtered := models.FilterStrikes(strikes, atm, cfg.StrikeWindow)
	if len(filtered) == 0 {
		log.Warnf("%s %s: no strikes within %d points of atm %d", cfg.Name, exp.ExpiryKey, cfg.StrikeWindow, atm)
		return nil, nil
	}

	return &models.ExpiryBucket{
		Spot:       spot,
		ATM:        atm,
		StrikeStep: cfg.StrikeStep,
		Symbols:    o.Builder.Build(ctx, cfg.Name, exp.SymbolExpiry, exp.ExpiryKey, filtered),
	}, nil
}

func countSymbols(buckets map[string]models.ExpiryBucket) int {
	count := 0
	for _, bucket := range buckets {
		count += len(bucket.Symbols)
	}

	return count
}
