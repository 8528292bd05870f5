package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoKV keeps one document per slot, keyed by _id.
type MongoKV struct {
	collection *mongo.Collection
}

func NewMongoKV(collection *mongo.Collection) *MongoKV {
	return &MongoKV{collection: collection}
}

func (k *MongoKV) Get(ctx context.Context, key string) ([]byte, error) {
	var doc slotDocument
	if err := k.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return []byte(doc.Value), nil
}

func (k *MongoKV) Set(ctx context.Context, key string, value []byte) error {
	doc := slotDocument{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := k.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}
