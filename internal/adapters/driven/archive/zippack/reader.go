package zippack

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ArchiveReader = (*Reader)(nil)

// DefaultMaxUnpacked bounds the total decompressed size of an archive.
const DefaultMaxUnpacked = 256 << 20

// Reader parses archives written by Packer.
type Reader struct {
	maxUnpacked int64
}

// NewReader creates a reader that refuses archives larger than maxUnpacked
// once decompressed. Non-positive values use DefaultMaxUnpacked.
func NewReader(maxUnpacked int64) *Reader {
	if maxUnpacked <= 0 {
		maxUnpacked = DefaultMaxUnpacked
	}
	return &Reader{maxUnpacked: maxUnpacked}
}

// Unpack returns the manifest and pieces. Pieces listed in the manifest come
// first in manifest order; stray piece entries follow sorted by name.
func (r *Reader) Unpack(archive []byte) (*domain.Manifest, []domain.Piece, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidArchive, err)
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	var (
		manifest *domain.Manifest
		texts    = make(map[string]string)
		budget   = r.maxUnpacked
	)
	for _, f := range zr.File {
		data, err := readEntry(f, &budget)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case f.Name == ManifestName:
			manifest = &domain.Manifest{}
			if err := json.Unmarshal(data, manifest); err != nil {
				return nil, nil, fmt.Errorf("%w: manifest: %v", domain.ErrInvalidArchive, err)
			}
		case isPieceEntry(f.Name):
			id := strings.TrimSuffix(strings.TrimPrefix(f.Name, "piece_"), ".txt")
			texts[id] = string(data)
		default:
			return nil, nil, fmt.Errorf("%w: unexpected entry %q", domain.ErrInvalidArchive, f.Name)
		}
	}
	if manifest == nil {
		return nil, nil, fmt.Errorf("%w: %s not found", domain.ErrInvalidArchive, ManifestName)
	}

	pieces := make([]domain.Piece, 0, len(texts))
	for i, entry := range manifest.Pieces {
		text, ok := texts[entry.ID]
		if !ok {
			continue
		}
		delete(texts, entry.ID)
		pieces = append(pieces, domain.Piece{
			Index:       i + 1,
			ID:          entry.ID,
			Text:        text,
			LengthChars: utf8.RuneCountInString(text),
		})
	}

	stray := make([]string, 0, len(texts))
	for id := range texts {
		stray = append(stray, id)
	}
	sort.Strings(stray)
	for _, id := range stray {
		pieces = append(pieces, domain.Piece{
			Index:       len(pieces) + 1,
			ID:          id,
			Text:        texts[id],
			LengthChars: utf8.RuneCountInString(texts[id]),
		})
	}

	return manifest, pieces, nil
}

func readEntry(f *zip.File, budget *int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrInvalidArchive, f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, *budget+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidArchive, f.Name, err)
	}
	*budget -= int64(len(data))
	if *budget < 0 {
		return nil, fmt.Errorf("%w: archive exceeds unpacked size limit", domain.ErrInvalidArchive)
	}
	return data, nil
}

func isPieceEntry(name string) bool {
	return strings.HasPrefix(name, "piece_") && strings.HasSuffix(name, ".txt") &&
		len(name) > len("piece_.txt")
}
