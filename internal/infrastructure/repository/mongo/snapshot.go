package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Snapshot is a repository for storing market snapshots
type Snapshot struct {
	db *mongo.Collection
}

// Create stores a market snapshot in the database
func (r *Snapshot) Create(ctx context.Context, s domain.Snapshot) error {
	_, err := r.db.InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("error inserting snapshot: %w", err)
	}

	return nil
}

// GetHistorySince returns snapshots created since the specified time, oldest first
func (r *Snapshot) GetHistorySince(ctx context.Context, since time.Time) ([]domain.Snapshot, error) {
	filter := map[string]interface{}{
		"created_at": map[string]interface{}{
			"$gte": since,
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("error finding snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var history []domain.Snapshot
	for cursor.Next(ctx) {
		var s domain.Snapshot
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding snapshot: %w", err)
		}
		history = append(history, s)
	}

	return history, nil
}
