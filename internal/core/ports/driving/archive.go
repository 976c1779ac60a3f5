package driving

import (
	"context"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

// ArchiveService audits and reverses split archives.
type ArchiveService interface {
	// Inspect checks that an archive's pieces agree with its manifest.
	Inspect(ctx context.Context, archive []byte) (*ArchiveReport, error)

	// Reassemble concatenates the pieces of an archive in manifest order.
	Reassemble(ctx context.Context, archive []byte) (string, error)
}

// ArchiveReport describes an inspected archive.
type ArchiveReport struct {
	// Manifest is the embedded manifest.
	Manifest *domain.Manifest

	// PieceCount is the number of piece entries found.
	PieceCount int

	// TotalChars is the sum of code points across pieces.
	TotalChars int

	// Problems lists every inconsistency found. Empty means consistent.
	Problems []string
}

// Consistent reports whether no problems were found.
func (r *ArchiveReport) Consistent() bool {
	return len(r.Problems) == 0
}
