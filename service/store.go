package service

import (
	"sort"
	"sync"

	"github.com/digimonapk/dicords/model"
)

// DocumentStore is an in-memory store for workflow records. It is the
// only shared mutable state in the process and the sole source of truth;
// notifications on Discord are derived from it, never the other way
// around. Records do not survive a restart.
//
// Records are stored and returned by value, so a reader can never observe
// a half-written record while a put is in flight.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]model.Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]model.Document),
	}
}

// Put inserts or fully replaces the record for doc.DocID. Partial updates
// are not supported; callers read, modify, and write the whole record.
func (s *DocumentStore) Put(doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.DocID] = doc
}

// Get returns the current record for id.
func (s *DocumentStore) Get(id string) (model.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// List returns all records sorted by document id. The snapshot is taken
// under the read lock; concurrent puts are either fully visible or not
// visible at all.
func (s *DocumentStore) List() []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]model.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].DocID < docs[j].DocID
	})
	return docs
}

// Delete removes the record for id. Deleting an unknown key is a no-op.
func (s *DocumentStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

// Count returns the number of records in the store.
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
