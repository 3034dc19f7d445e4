package store

import (
	"context"
	"fmt"

	"github.com/MorningZephyr/zhen-bot/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists profiles as BSON documents, one per (app, owner) pair.
type MongoStore struct {
	collection *mongo.Collection
}

// profileDoc is the stored document shape.
type profileDoc struct {
	ID      string         `bson:"_id"`
	AppName string         `bson:"app_name"`
	OwnerID string         `bson:"owner_id"`
	Profile models.Profile `bson:"profile"`
}

// NewMongoStore creates a MongoStore on the given database and collection.
func NewMongoStore(db *mongo.Database, collectionName string) *MongoStore {
	return &MongoStore{
		collection: db.Collection(collectionName),
	}
}

func docID(appName, ownerID string) string {
	return appName + ":" + ownerID
}

// Get implements SessionStore.
func (s *MongoStore) Get(ctx context.Context, appName, ownerID string) (*models.Profile, bool, error) {
	var doc profileDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": docID(appName, ownerID)}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("mongo find: %w", err)
	}
	return &doc.Profile, true, nil
}

// Put implements SessionStore via a single upsert.
func (s *MongoStore) Put(ctx context.Context, appName, ownerID string, profile *models.Profile) error {
	filter := bson.M{"_id": docID(appName, ownerID)}
	update := bson.M{
		"$set": bson.M{
			"app_name": appName,
			"owner_id": ownerID,
			"profile":  profile,
		},
	}
	_, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

// ListSessions implements SessionStore.
func (s *MongoStore) ListSessions(ctx context.Context, ownerID string) ([]string, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}

	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, d.ID)
	}
	return keys, nil
}
