package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Store used by tests. Records are kept as
// JSON documents so the array/field semantics match the real store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]json.RawMessage)}
}

// collection inserts the named collection on first use. Callers must hold
// the write lock; read paths index s.collections directly so a missing
// collection is never created under RLock.
func (s *MemoryStore) collection(name string) map[string]json.RawMessage {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]json.RawMessage)
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store: error decoding %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, record Record) error {
	record.SetRecordID(id)
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("store: error encoding %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = raw
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("store: error decoding %s/%s: %w", collection, id, err)
	}
	for field, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("store: error encoding field %s: %w", field, err)
		}
		doc[field] = encoded
	}
	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: error re-encoding %s/%s: %w", collection, id, err)
	}
	s.collection(collection)[id] = updated
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, record Record) (string, error) {
	if record.RecordID() == "" {
		record.SetRecordID(uuid.NewString())
	}
	if err := s.Set(ctx, collection, record.RecordID(), record); err != nil {
		return "", err
	}
	return record.RecordID(), nil
}

func (s *MemoryStore) ArrayUnion(ctx context.Context, collection, id, field, value string) error {
	return s.mutateArray(collection, id, field, func(arr []string) []string {
		for _, v := range arr {
			if v == value {
				return arr
			}
		}
		return append(arr, value)
	})
}

func (s *MemoryStore) ArrayRemove(ctx context.Context, collection, id, field, value string) error {
	return s.mutateArray(collection, id, field, func(arr []string) []string {
		out := arr[:0]
		for _, v := range arr {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	})
}

func (s *MemoryStore) mutateArray(collection, id, field string, mutate func([]string) []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("store: error decoding %s/%s: %w", collection, id, err)
	}

	arr := []string{}
	if existing, ok := doc[field]; ok && len(existing) > 0 {
		if err := json.Unmarshal(existing, &arr); err != nil {
			return fmt.Errorf("store: field %s is not an array: %w", field, err)
		}
	}
	encoded, err := json.Marshal(mutate(arr))
	if err != nil {
		return fmt.Errorf("store: error encoding field %s: %w", field, err)
	}
	doc[field] = encoded

	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: error re-encoding %s/%s: %w", collection, id, err)
	}
	s.collection(collection)[id] = updated
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collection(collection), id)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters map[string]any, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]json.RawMessage, 0)
	for _, raw := range s.collections[collection] {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("store: error decoding record in %s: %w", collection, err)
		}
		match := true
		for field, want := range filters {
			encoded, err := json.Marshal(want)
			if err != nil {
				return fmt.Errorf("store: error encoding filter %s: %w", field, err)
			}
			if got, ok := doc[field]; !ok || !bytes.Equal(got, encoded) {
				match = false
				break
			}
		}
		if match {
			matched = append(matched, raw)
		}
	}

	all, err := json.Marshal(matched)
	if err != nil {
		return fmt.Errorf("store: error encoding query result: %w", err)
	}
	if err := json.Unmarshal(all, out); err != nil {
		return fmt.Errorf("store: error decoding query result: %w", err)
	}
	return nil
}
