package driven

import (
	"context"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

// DocumentRegistry maps document IDs to normalised documents.
// Implementations must be safe for concurrent use: writes to the same ID
// are serialised, writes to different IDs must not block each other.
type DocumentRegistry interface {
	// Put stores a document. If a document with the same ID already exists
	// the stored copy is returned unchanged.
	Put(ctx context.Context, doc *domain.Document) (*domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrDocumentNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Len returns the number of stored documents.
	Len(ctx context.Context) (int, error)
}
