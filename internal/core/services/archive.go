package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService audits and reverses split archives.
type ArchiveService struct {
	reader driven.ArchiveReader
}

// NewArchiveService creates a new archive service.
func NewArchiveService(reader driven.ArchiveReader) *ArchiveService {
	return &ArchiveService{reader: reader}
}

// Inspect checks that an archive's pieces agree with its manifest.
func (s *ArchiveService) Inspect(_ context.Context, archive []byte) (*driving.ArchiveReport, error) {
	report, _, err := s.inspect(archive)
	return report, err
}

func (s *ArchiveService) inspect(archive []byte) (*driving.ArchiveReport, []domain.Piece, error) {
	if s.reader == nil {
		return nil, nil, errors.New("archive service not configured")
	}

	manifest, pieces, err := s.reader.Unpack(archive)
	if err != nil {
		return nil, nil, err
	}

	report := &driving.ArchiveReport{
		Manifest:   manifest,
		PieceCount: len(pieces),
	}

	byID := make(map[string]domain.Piece, len(pieces))
	for _, p := range pieces {
		byID[p.ID] = p
		report.TotalChars += p.LengthChars
		if !utf8.ValidString(p.Text) {
			report.Problems = append(report.Problems, fmt.Sprintf("piece %s is not valid UTF-8", p.ID))
		}
	}

	if len(pieces) != len(manifest.Pieces) {
		report.Problems = append(report.Problems,
			fmt.Sprintf("archive has %d piece entries, manifest lists %d", len(pieces), len(manifest.Pieces)))
	}

	for _, entry := range manifest.Pieces {
		p, ok := byID[entry.ID]
		if !ok {
			report.Problems = append(report.Problems, fmt.Sprintf("piece %s listed in manifest is missing", entry.ID))
			continue
		}
		if p.LengthChars != entry.LengthChars {
			report.Problems = append(report.Problems,
				fmt.Sprintf("piece %s has %d chars, manifest records %d", entry.ID, p.LengthChars, entry.LengthChars))
		}
	}

	if report.TotalChars != manifest.Source.LengthChars {
		report.Problems = append(report.Problems,
			fmt.Sprintf("pieces total %d chars, source records %d", report.TotalChars, manifest.Source.LengthChars))
	}

	if manifest.Skipped() && len(manifest.Pieces) != 1 {
		report.Problems = append(report.Problems, "skipped split must have exactly one piece")
	}

	return report, pieces, nil
}

// Reassemble concatenates the pieces of a consistent archive in manifest order.
func (s *ArchiveService) Reassemble(_ context.Context, archive []byte) (string, error) {
	report, pieces, err := s.inspect(archive)
	if err != nil {
		return "", err
	}
	if !report.Consistent() {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidArchive, strings.Join(report.Problems, "; "))
	}

	var b strings.Builder
	for _, p := range pieces {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
