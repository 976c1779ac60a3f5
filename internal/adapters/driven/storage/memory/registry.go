package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.DocumentRegistry = (*Registry)(nil)

// shardCount must divide the 16 values of a leading hex digit.
const shardCount = 16

type shard struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// Registry is an in-memory implementation of driven.DocumentRegistry.
// Documents are spread over shards keyed by the first hex digit of their ID
// so concurrent uploads of different files rarely contend.
type Registry struct {
	shards [shardCount]*shard
}

// NewRegistry creates a new in-memory document registry.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &shard{documents: make(map[string]domain.Document)}
	}
	return r
}

// Put stores doc unless a document with the same ID exists.
// It returns whichever document is stored after the call.
func (r *Registry) Put(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	s := r.shardFor(doc.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.documents[doc.ID]; ok {
		return &existing, nil
	}
	s.documents[doc.ID] = *doc
	stored := *doc
	return &stored, nil
}

// Get retrieves a document by ID.
func (r *Registry) Get(_ context.Context, id string) (*domain.Document, error) {
	s := r.shardFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

// Len returns the number of registered documents.
func (r *Registry) Len(_ context.Context) (int, error) {
	total := 0
	for _, s := range r.shards {
		s.mu.RLock()
		total += len(s.documents)
		s.mu.RUnlock()
	}
	return total, nil
}

func (r *Registry) shardFor(id string) *shard {
	if id == "" {
		return r.shards[0]
	}
	return r.shards[hexValue(id[0])%shardCount]
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return int(c)
	}
}
