package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

// registry implements driven.DocumentRegistry.
type registry struct {
	store *Store
}

var _ driven.DocumentRegistry = (*registry)(nil)

// Put inserts doc unless its ID is already registered, then returns the stored row.
func (r *registry) Put(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, original_name, extension, content_hash, text, length_chars, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		doc.ID,
		doc.OriginalName,
		doc.Extension,
		doc.ContentHash,
		doc.Text,
		doc.LengthChars,
		doc.IngestedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	return r.Get(ctx, doc.ID)
}

// Get retrieves a document by ID.
func (r *registry) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, original_name, extension, content_hash, text, length_chars, ingested_at
		FROM documents WHERE id = ?
	`, id)

	var (
		doc        domain.Document
		ingestedAt string
	)
	err := row.Scan(
		&doc.ID,
		&doc.OriginalName,
		&doc.Extension,
		&doc.ContentHash,
		&doc.Text,
		&doc.LengthChars,
		&ingestedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}

	doc.IngestedAt, err = time.Parse(time.RFC3339Nano, ingestedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing ingested_at: %w", err)
	}
	return &doc, nil
}

// Len returns the number of registered documents.
func (r *registry) Len(ctx context.Context) (int, error) {
	var n int
	if err := r.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
