package driving

import (
	"context"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

// IngestService accepts uploaded files and registers their text.
type IngestService interface {
	// Ingest validates, extracts and registers data uploaded as filename.
	// Identical bytes always yield the same document ID.
	Ingest(ctx context.Context, filename string, data []byte) (*IngestResult, error)

	// Get retrieves a registered document.
	Get(ctx context.Context, documentID string) (*domain.Document, error)
}

// IngestResult summarises a registered document.
type IngestResult struct {
	// ID is the content-derived document identifier.
	ID string `json:"file_id"`

	// Name is the original filename.
	Name string `json:"name"`

	// Extension is the lowercased extension.
	Extension string `json:"ext"`

	// LengthChars is the number of code points of extracted text.
	LengthChars int `json:"length_chars"`
}
