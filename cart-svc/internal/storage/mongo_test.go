package storage_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/storage"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get strips the key", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "foodhub.offers", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "o1"},
			{Key: "code", Value: "SAVE100"},
			{Key: "usedCount", Value: int32(3)},
		}))

		doc, err := store.Get(ctx, "offers", "o1")

		require.NoError(mt, err)
		assert.JSONEq(mt, `{"code":"SAVE100","usedCount":3}`, string(doc))
	})

	mt.Run("get missing", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "foodhub.offers", mtest.FirstBatch))

		doc, err := store.Get(ctx, "offers", "nope")

		require.NoError(mt, err)
		assert.Nil(mt, doc)
	})

	mt.Run("put upserts", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "c1"}}}},
		))

		err := store.Put(ctx, "carts", "c1", json.RawMessage(`{"userId":"u1","items":[]}`))

		assert.NoError(mt, err)
	})

	mt.Run("put rejects invalid json", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)

		err := store.Put(ctx, "carts", "c1", json.RawMessage(`{nope`))

		assert.Error(mt, err)
	})

	mt.Run("query returns every document", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "foodhub.menuItems", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "101"}, {Key: "restaurantId", Value: "1"}},
			bson.D{{Key: "_id", Value: "102"}, {Key: "restaurantId", Value: "1"}},
		))

		docs, err := store.Query(ctx, "menuItems", "restaurantId", "1")

		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.JSONEq(mt, `{"restaurantId":"1"}`, string(docs[1]))
	})

	mt.Run("increment", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		assert.NoError(mt, store.Increment(ctx, "offers", "o1", "usedCount", 1))
	})

	mt.Run("increment missing", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := store.Increment(ctx, "offers", "nope", "usedCount", 1)

		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, store.Delete(ctx, "restaurants", "1"))
	})

	mt.Run("server error", func(mt *mtest.T) {
		store := storage.NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Message: "interrupted at shutdown"}))

		_, err := store.Scan(ctx, "restaurants")

		assert.Error(mt, err)
	})
}
