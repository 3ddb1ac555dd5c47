package source

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arborgraph/arbor/pkg/errors"
	"github.com/arborgraph/arbor/pkg/family"
)

// MongoSource reads members straight from the site's MongoDB collection,
// bypassing the REST layer. Useful for batch rendering jobs that run next
// to the database.
type MongoSource struct {
	client     *mongo.Client
	database   string
	collection string
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string
	Collection string
}

// NewMongoSource connects to MongoDB and verifies the connection.
// Callers must Close the source when done.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "connect mongodb %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeSource, err, "ping mongodb %s", cfg.URI)
	}
	return &MongoSource{
		client:     client,
		database:   cfg.Database,
		collection: cfg.Collection,
	}, nil
}

// Fetch scans the whole member collection. Member counts are low hundreds,
// so a full scan per layout pass is fine.
func (s *MongoSource) Fetch(ctx context.Context) ([]family.Member, error) {
	coll := s.client.Database(s.database).Collection(s.collection)
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "query %s", s.Description())
	}
	defer cursor.Close(ctx)

	var members []family.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "decode members from %s", s.Description())
	}
	return members, nil
}

// Description identifies the collection for logging and cache keys.
func (s *MongoSource) Description() string {
	return fmt.Sprintf("mongo:%s/%s", s.database, s.collection)
}

// Close disconnects from MongoDB.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
