package storage

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"foodhub/cart-svc/internal/domain"
)

// MemoryStore keeps documents in process memory. Scan and Query return
// documents in key order.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(_ context.Context, table, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.tables[table][key]
	if !ok {
		return nil, nil
	}
	return clone(doc), nil
}

func (s *MemoryStore) Put(_ context.Context, table, key string, doc json.RawMessage) error {
	if !json.Valid(doc) {
		return domain.Validationf("document %s/%s is not valid json", table, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables[table] == nil {
		s.tables[table] = make(map[string]json.RawMessage)
	}
	s.tables[table][key] = clone(doc)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, table, attribute, value string) ([]json.RawMessage, error) {
	docs, err := s.Scan(ctx, table)
	if err != nil {
		return nil, err
	}
	matched := make([]json.RawMessage, 0)
	for _, doc := range docs {
		var fields map[string]interface{}
		if err := json.Unmarshal(doc, &fields); err != nil {
			return nil, err
		}
		if v, ok := fields[attribute].(string); ok && v == value {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func (s *MemoryStore) Scan(_ context.Context, table string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.tables[table]))
	for key := range s.tables[table] {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	docs := make([]json.RawMessage, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, clone(s.tables[table][key]))
	}
	return docs, nil
}

func (s *MemoryStore) Delete(_ context.Context, table, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tables[table], key)
	return nil
}

func (s *MemoryStore) Increment(_ context.Context, table, key, attribute string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.tables[table][key]
	if !ok {
		return domain.NotFoundf("document %s/%s not found", table, key)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(doc, &fields); err != nil {
		return err
	}
	current, _ := fields[attribute].(float64)
	fields[attribute] = int(current) + delta

	updated, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	s.tables[table][key] = updated
	return nil
}

func clone(doc json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out
}
