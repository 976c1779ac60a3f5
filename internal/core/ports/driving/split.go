package driving

import (
	"context"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

// SplitService divides registered documents into archived pieces.
type SplitService interface {
	// Split runs the threshold policy, the chunker, the manifest builder
	// and the archive packer for one request.
	Split(ctx context.Context, req domain.SplitRequest) (*SplitResult, error)
}

// SplitResult is the outcome of one split operation.
type SplitResult struct {
	// Manifest describes the run.
	Manifest *domain.Manifest

	// Pieces are the produced pieces in index order.
	Pieces []domain.Piece

	// Archive is the packed artifact.
	Archive []byte

	// ContentType is the media type of Archive.
	ContentType string
}
