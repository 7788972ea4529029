package store

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

// MongoStore persists batches in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoOptions configures the MongoDB connection.
type MongoOptions struct {
	// URI is the connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database name. Defaults to "piecemaker".
	Database string

	// Collection name. Defaults to "batches".
	Collection string
}

// NewMongoStore connects to MongoDB and returns a store backed by the
// configured collection. The connection is verified with a ping.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is required")
	}
	if opts.Database == "" {
		opts.Database = "piecemaker"
	}
	if opts.Collection == "" {
		opts.Collection = "batches"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo at %s", opts.URI)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Save stores a batch, overwriting any existing document with the same ID.
func (s *MongoStore) Save(ctx context.Context, batch Batch) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": batch.ID},
		batch,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save batch %s", batch.ID)
	}
	return nil
}

// Load retrieves a batch by ID.
func (s *MongoStore) Load(ctx context.Context, id uuid.UUID) (Batch, error) {
	var batch Batch
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&batch)
	if err == mongo.ErrNoDocuments {
		return Batch{}, ErrBatchNotFound(id)
	}
	if err != nil {
		return Batch{}, errors.Wrap(errors.ErrCodeStorage, err, "load batch %s", id)
	}
	return batch, nil
}

// List returns batch metadata, newest first. Piece documents are excluded
// from the projection to keep listings small.
func (s *MongoStore) List(ctx context.Context) ([]Batch, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"data": 0})

	cursor, err := s.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list batches")
	}
	defer cursor.Close(ctx)

	var batches []Batch
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode batches")
	}
	return batches, nil
}

// Delete removes a batch. Deleting an absent ID is not an error.
func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete batch %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
