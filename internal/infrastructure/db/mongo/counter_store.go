package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// CounterStore implements ports.CounterStore with one document per scope,
// advanced by a single $inc so concurrent callers never share a value.
type CounterStore struct {
	col *mongo.Collection
}

func NewCounterStore(db *mongo.Database) *CounterStore {
	return &CounterStore{col: db.Collection(collectionCounters)}
}

type counterDoc struct {
	Scope string `bson:"_id"`
	Seq   int64  `bson:"seq"`
}

// Next increments the scope's sequence and returns the new value.
func (s *CounterStore) Next(ctx context.Context, scope string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": scope}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// Two first-ever upserts raced on the same _id; the loser retries
		// against the document the winner created.
		err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": scope}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&doc)
	}
	if err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", scope, err)
	}
	return doc.Seq, nil
}
