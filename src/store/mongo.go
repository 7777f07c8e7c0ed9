package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quantpulse/option-snapshot/src/models"
)

const (
	DatabaseName   = "options_data"
	CollectionName = "symbols_structural"
)

// MongoStore persists snapshot documents keyed by trade date.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect dials the cluster, verifies connectivity with a ping, and binds the
// snapshot collection.
func Connect(ctx context.Context, mongoURL string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("MongoStore: Connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoStore: Connect: ping failed: %w", err)
	}

	log.Infof("connected to mongo, database %s", DatabaseName)

	return &MongoStore{
		client:     client,
		collection: client.Database(DatabaseName).Collection(CollectionName),
	}, nil
}

// UpsertSnapshot replaces the data and updated_at fields of the trade date's
// document wholesale, creating it on first write. Rerunning the pipeline for
// the same date overwrites rather than merges.
func (s *MongoStore) UpsertSnapshot(ctx context.Context, doc *models.SnapshotDocument) error {
	filter := bson.M{"trade_date": doc.TradeDate}
	update := bson.M{
		"$set": bson.M{
			"data":       doc.Data,
			"updated_at": doc.UpdatedAt,
		},
	}

	if _, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("MongoStore: UpsertSnapshot: %s: %w", doc.TradeDate, err)
	}

	return nil
}

// FindByTradeDate loads the document for one trade date. Returns nil without
// error when no document exists.
func (s *MongoStore) FindByTradeDate(ctx context.Context, tradeDate string) (*models.SnapshotDocument, error) {
	var doc models.SnapshotDocument

	err := s.collection.FindOne(ctx, bson.M{"trade_date": tradeDate}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("MongoStore: FindByTradeDate: %s: %w", tradeDate, err)
	}

	return &doc, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("MongoStore: Close: %w", err)
	}

	return nil
}
