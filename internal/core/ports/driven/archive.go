package driven

import "github.com/custodia-labs/split-engine/internal/core/domain"

// ArchivePacker serialises pieces and their manifest into a single artifact.
// Pack either returns the complete archive or an error, never a partial result.
type ArchivePacker interface {
	Pack(pieces []domain.Piece, manifest *domain.Manifest) ([]byte, error)

	// ContentType is the media type of produced archives.
	ContentType() string
}

// ArchiveReader parses an artifact produced by an ArchivePacker.
type ArchiveReader interface {
	// Unpack returns the manifest and the pieces in manifest order.
	// Malformed archives yield domain.ErrInvalidArchive.
	Unpack(archive []byte) (*domain.Manifest, []domain.Piece, error)
}
