// internal/repository/mongo/state_repo.go
package mongo

import (
	"alcyxob/fitgpt/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stateCollectionName = "app_state"

// stateDocument is how one persisted key looks in the collection.
// The value is kept as the JSON text the service produced, untouched.
type stateDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoStateRepository implements repository.StateRepository
type mongoStateRepository struct {
	collection *mongo.Collection
}

// NewMongoStateRepository creates a new state repository backed by the app_state collection.
func NewMongoStateRepository(db *mongo.Database) repository.StateRepository {
	return &mongoStateRepository{
		collection: db.Collection(stateCollectionName),
	}
}

// Get retrieves the JSON document stored under key.
func (r *mongoStateRepository) Get(ctx context.Context, key repository.StateKey) ([]byte, error) {
	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": string(key)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return []byte(doc.Value), nil
}

// Set replaces (or inserts) the whole document stored under key.
func (r *mongoStateRepository) Set(ctx context.Context, key repository.StateKey, value []byte) error {
	if key == "" {
		return errors.New("state key is required")
	}
	doc := stateDocument{
		Key:       string(key),
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// Remove deletes the document stored under key. A missing key is not an error.
func (r *mongoStateRepository) Remove(ctx context.Context, key repository.StateKey) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": string(key)})
	if err != nil {
		return errors.Join(repository.ErrDeleteFailed, err)
	}
	return nil
}

// EnsureStateIndexes creates necessary indexes. Call during startup.
func EnsureStateIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Lets operators list recently written keys.
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
