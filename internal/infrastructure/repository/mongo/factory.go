// Package mongo implements snapshot persistence on MongoDB.
package mongo

import (
	"errors"
	"strings"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

const databaseName = "btc_dashboard"

// Factory implements a repository factory using MongoDB
type Factory struct {
	client *mongo.Client
}

// NewMongoRepoFactory creates a new Factory backed by the given client
func NewMongoRepoFactory(client *mongo.Client) (*Factory, error) {
	if client == nil {
		return nil, errors.New("mongo client is required")
	}
	return &Factory{client: client}, nil
}

// GetSnapshotRepository returns a SnapshotRepository writing to a
// collection named after the market source
func (f *Factory) GetSnapshotRepository(name string) (domain.SnapshotRepository, error) {
	if name == "" {
		return nil, errors.New("repository name is required")
	}
	collection := strings.ToLower(strings.ReplaceAll(name, " ", "_")) + "_snapshots"
	return &Snapshot{db: f.client.Database(databaseName).Collection(collection)}, nil
}
