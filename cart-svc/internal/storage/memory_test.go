package storage_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "carts", "b", json.RawMessage(`{"userId":"u2","n":1}`)))
	require.NoError(t, store.Put(ctx, "carts", "a", json.RawMessage(`{"userId":"u1","n":2}`)))
	require.NoError(t, store.Put(ctx, "carts", "c", json.RawMessage(`{"userId":"u1","n":3}`)))

	t.Run("get", func(t *testing.T) {
		doc, err := store.Get(ctx, "carts", "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"userId":"u1","n":2}`, string(doc))

		missing, err := store.Get(ctx, "carts", "zzz")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("scan is in key order", func(t *testing.T) {
		docs, err := store.Scan(ctx, "carts")
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.JSONEq(t, `{"userId":"u1","n":2}`, string(docs[0]))
		assert.JSONEq(t, `{"userId":"u1","n":3}`, string(docs[2]))
	})

	t.Run("query matches string attribute", func(t *testing.T) {
		docs, err := store.Query(ctx, "carts", "userId", "u1")
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		none, err := store.Query(ctx, "carts", "userId", "nobody")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("returned documents are copies", func(t *testing.T) {
		doc, err := store.Get(ctx, "carts", "a")
		require.NoError(t, err)
		doc[2] = 'X'

		again, err := store.Get(ctx, "carts", "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"userId":"u1","n":2}`, string(again))
	})

	t.Run("increment", func(t *testing.T) {
		require.NoError(t, store.Increment(ctx, "carts", "b", "n", 4))
		require.NoError(t, store.Increment(ctx, "carts", "b", "fresh", 1))

		doc, err := store.Get(ctx, "carts", "b")
		require.NoError(t, err)
		assert.JSONEq(t, `{"userId":"u2","n":5,"fresh":1}`, string(doc))

		err = store.Increment(ctx, "carts", "missing", "n", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid json is rejected", func(t *testing.T) {
		err := store.Put(ctx, "carts", "bad", json.RawMessage(`{nope`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "carts", "c"))
		require.NoError(t, store.Delete(ctx, "unknown", "c"))

		doc, err := store.Get(ctx, "carts", "c")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})
}
