package storage

import (
	"context"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodhub/cart-svc/internal/domain"
)

// MongoStore maps each table to a collection whose _id is the document key.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) Get(ctx context.Context, table, key string) (json.RawMessage, error) {
	var m bson.M
	err := s.DB.Collection(table).FindOne(ctx, bson.M{"_id": key}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toJSON(m)
}

func (s *MongoStore) Put(ctx context.Context, table, key string, doc json.RawMessage) error {
	var m bson.M
	if err := bson.UnmarshalExtJSON(doc, false, &m); err != nil {
		return err
	}
	m["_id"] = key
	_, err := s.DB.Collection(table).ReplaceOne(ctx, bson.M{"_id": key}, m, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Query(ctx context.Context, table, attribute, value string) ([]json.RawMessage, error) {
	return s.find(ctx, table, bson.M{attribute: value})
}

func (s *MongoStore) Scan(ctx context.Context, table string) ([]json.RawMessage, error) {
	return s.find(ctx, table, bson.M{})
}

func (s *MongoStore) Delete(ctx context.Context, table, key string) error {
	_, err := s.DB.Collection(table).DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *MongoStore) Increment(ctx context.Context, table, key, attribute string, delta int) error {
	result, err := s.DB.Collection(table).UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{attribute: delta}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.NotFoundf("document %s/%s not found", table, key)
	}
	return nil
}

func (s *MongoStore) find(ctx context.Context, table string, filter bson.M) ([]json.RawMessage, error) {
	cursor, err := s.DB.Collection(table).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var found []bson.M
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	docs := make([]json.RawMessage, 0, len(found))
	for _, m := range found {
		doc, err := toJSON(m)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func toJSON(m bson.M) (json.RawMessage, error) {
	delete(m, "_id")
	return bson.MarshalExtJSON(m, false, false)
}
