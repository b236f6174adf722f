package docstore

import (
	"bytes"
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemStore is the reference Store implementation used by the test suites. It
// mirrors the ordering and filter semantics of the postgres implementation.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]map[uuid.UUID]Fields
}

func NewMemStore() *MemStore {
	return &MemStore{
		collections: make(map[string]map[uuid.UUID]Fields),
	}
}

func (s *MemStore) Insert(_ context.Context, collection string, fields Fields) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[uuid.UUID]Fields)
		s.collections[collection] = docs
	}

	id := uuid.New()
	docs[id] = maps.Clone(fields)
	return id, nil
}

func (s *MemStore) Get(_ context.Context, collection string, id uuid.UUID) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: maps.Clone(fields)}, nil
}

func (s *MemStore) Update(_ context.Context, collection string, id uuid.UUID, partial Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range partial {
		fields[k] = v
	}
	return nil
}

func (s *MemStore) Delete(_ context.Context, collection string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Deleting a missing document is a no-op.
	delete(s.collections[collection], id)
	return nil
}

func (s *MemStore) Find(_ context.Context, collection string, q Query) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Document
	for id, fields := range s.collections[collection] {
		if matchesAll(fields, q.Filters) {
			matched = append(matched, Document{ID: id, Fields: maps.Clone(fields)})
		}
	}

	if q.OrderBy.Field != "" {
		sortDocuments(matched, q.OrderBy)
	}

	if q.StartAfter != nil {
		matched = afterDocument(matched, q.OrderBy, *q.StartAfter)
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// Len reports the number of documents in a collection. Test helper.
func (s *MemStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func matchesAll(fields Fields, filters []Filter) bool {
	for _, f := range filters {
		got, ok := fields[f.Field]
		if !ok {
			return false
		}
		cmp := compareValues(got, f.Value)
		switch f.Op {
		case OpEqual:
			if cmp != 0 {
				return false
			}
		case OpGreaterOrEqual:
			if cmp < 0 {
				return false
			}
		case OpLessOrEqual:
			if cmp > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func sortDocuments(docs []Document, order OrderBy) {
	sort.SliceStable(docs, func(i, j int) bool {
		cmp := compareValues(docs[i].Fields[order.Field], docs[j].Fields[order.Field])
		if cmp == 0 {
			cmp = bytes.Compare(docs[i].ID[:], docs[j].ID[:])
		}
		if order.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// afterDocument drops everything up to and including the cursor position in
// keyset fashion, so the cursor document itself does not have to exist in the
// current result set.
func afterDocument(docs []Document, order OrderBy, cursor Document) []Document {
	cursorVal := cursor.Fields[order.Field]
	for i, d := range docs {
		cmp := compareValues(d.Fields[order.Field], cursorVal)
		if cmp == 0 {
			cmp = bytes.Compare(d.ID[:], cursor.ID[:])
		}
		if order.Desc {
			cmp = -cmp
		}
		if cmp > 0 {
			return docs[i:]
		}
	}
	return nil
}
