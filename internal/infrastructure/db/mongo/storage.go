package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const storageCollection = "client_storage"

// Storage is a ClientStorage backed by a MongoDB collection, one document
// per key. Expired documents are hidden on read and reaped by a TTL index.
type Storage struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewStorage(db *mongo.Database) *Storage {
	return &Storage{coll: db.Collection(storageCollection), now: time.Now}
}

type storageItem struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	UpdatedAt int64      `bson:"updated_at"`
}

// EnsureIndexes creates the TTL index on expires_at.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create ttl index: %w", err)
	}
	return nil
}

func (s *Storage) GetItems(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cur.Close(ctx)

	now := s.now()
	for cur.Next(ctx) {
		var item storageItem
		if err := cur.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		if item.ExpiresAt != nil && !now.Before(*item.ExpiresAt) {
			continue
		}
		out[item.Key] = item.Value
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	return out, nil
}

// SetItems upserts every item in one ordered bulk write.
func (s *Storage) SetItems(ctx context.Context, items map[string]string, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}

	now := s.now()
	var expires *time.Time
	if ttl > 0 {
		t := now.Add(ttl).UTC()
		expires = &t
	}

	models := make([]mongo.WriteModel, 0, len(items))
	for k, v := range items {
		doc := storageItem{Key: k, Value: v, ExpiresAt: expires, UpdatedAt: now.Unix()}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": k}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("write items: %w", err)
	}
	return nil
}

func (s *Storage) RemoveItems(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}}); err != nil {
		return fmt.Errorf("remove items: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
