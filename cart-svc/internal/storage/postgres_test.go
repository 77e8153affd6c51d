package storage_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/storage"
)

func setupPostgresStore(t *testing.T) (*storage.PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return storage.NewPostgresStore(db), mock
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	store, mock := setupPostgresStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS documents").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.EnsureSchema(context.Background()))
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT doc FROM documents WHERE tbl = $1 AND key = $2")

	t.Run("found", func(t *testing.T) {
		store, mock := setupPostgresStore(t)
		mock.ExpectQuery(query).WithArgs("offers", "o1").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"code":"SAVE100"}`)))

		doc, err := store.Get(ctx, "offers", "o1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"code":"SAVE100"}`, string(doc))
	})

	t.Run("missing", func(t *testing.T) {
		store, mock := setupPostgresStore(t)
		mock.ExpectQuery(query).WithArgs("offers", "o2").WillReturnError(sql.ErrNoRows)

		doc, err := store.Get(ctx, "offers", "o2")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("connection error", func(t *testing.T) {
		store, mock := setupPostgresStore(t)
		mock.ExpectQuery(query).WithArgs("offers", "o3").WillReturnError(sql.ErrConnDone)

		_, err := store.Get(ctx, "offers", "o3")
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestPostgresStore_Put(t *testing.T) {
	store, mock := setupPostgresStore(t)
	doc := json.RawMessage(`{"userId":"u1"}`)
	mock.ExpectExec("INSERT INTO documents").
		WithArgs("carts", "c1", []byte(doc)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Put(context.Background(), "carts", "c1", doc))
}

func TestPostgresStore_QueryAndScan(t *testing.T) {
	ctx := context.Background()
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM documents WHERE tbl = $1 AND doc->>$2 = $3 ORDER BY key")).
		WithArgs("carts", "userId", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"userId":"u1"}`)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM documents WHERE tbl = $1 ORDER BY key")).
		WithArgs("restaurants").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"restaurantId":"1"}`)).
			AddRow([]byte(`{"restaurantId":"2"}`)))

	byUser, err := store.Query(ctx, "carts", "userId", "u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	all, err := store.Scan(ctx, "restaurants")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.JSONEq(t, `{"restaurantId":"2"}`, string(all[1]))
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock := setupPostgresStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE tbl = $1 AND key = $2")).
		WithArgs("restaurants", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), "restaurants", "1"))
}

func TestPostgresStore_Increment(t *testing.T) {
	ctx := context.Background()

	t.Run("updates one row", func(t *testing.T) {
		store, mock := setupPostgresStore(t)
		mock.ExpectExec("UPDATE documents").
			WithArgs("offers", "o1", "usedCount", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Increment(ctx, "offers", "o1", "usedCount", 1))
	})

	t.Run("missing document", func(t *testing.T) {
		store, mock := setupPostgresStore(t)
		mock.ExpectExec("UPDATE documents").
			WithArgs("offers", "nope", "usedCount", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Increment(ctx, "offers", "nope", "usedCount", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
