package storage

import (
	"context"
	"encoding/json"
)

const (
	TableCarts       = "carts"
	TableMenuItems   = "menuItems"
	TableRestaurants = "restaurants"
	TableOffers      = "offers"
	TableOrders      = "orders"
)

// DocumentStore is a key-value store of JSON documents. Each table has a
// primary key and may be queried by one top-level string attribute.
type DocumentStore interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, table, key string) (json.RawMessage, error)
	Put(ctx context.Context, table, key string, doc json.RawMessage) error
	Query(ctx context.Context, table, attribute, value string) ([]json.RawMessage, error)
	Scan(ctx context.Context, table string) ([]json.RawMessage, error)
	Delete(ctx context.Context, table, key string) error
	// Increment atomically adds delta to a top-level integer attribute. It
	// fails with a NotFound error when the key is absent.
	Increment(ctx context.Context, table, key, attribute string, delta int) error
}

var (
	_ DocumentStore = (*PostgresStore)(nil)
	_ DocumentStore = (*MongoStore)(nil)
	_ DocumentStore = (*MemoryStore)(nil)
)
