package services

import (
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

// BuildManifest describes a split run. createdAt is converted to UTC and
// should be captured once per operation. Piece text is never embedded.
func BuildManifest(
	doc *domain.Document,
	mode domain.Mode,
	params domain.Params,
	pieces []domain.Piece,
	skippedReason string,
	createdAt time.Time,
) *domain.Manifest {
	lengthChars := doc.LengthChars
	if lengthChars == 0 && doc.Text != "" {
		lengthChars = utf8.RuneCountInString(doc.Text)
	}

	entries := make([]domain.ManifestPiece, len(pieces))
	for i, p := range pieces {
		entries[i] = domain.ManifestPiece{
			ID:          p.ID,
			LengthChars: p.LengthChars,
		}
	}

	return &domain.Manifest{
		Source: domain.ManifestSource{
			Filename:    doc.OriginalName,
			SHA256:      doc.ContentHash,
			LengthChars: lengthChars,
		},
		CreatedAt:     createdAt.UTC().Format(domain.ManifestTimeFormat),
		Mode:          mode,
		Params:        params.Clone(),
		SkippedReason: skippedReason,
		Pieces:        entries,
	}
}
