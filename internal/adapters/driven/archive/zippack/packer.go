package zippack

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

// Ensure Packer implements the interface.
var _ driven.ArchivePacker = (*Packer)(nil)

const (
	// ContentType is the media type of produced archives.
	ContentType = "application/zip"

	// ManifestName is the archive entry holding the manifest.
	ManifestName = "manifest.json"
)

// EntryName returns the archive entry name for a piece ID.
func EntryName(pieceID string) string {
	return "piece_" + pieceID + ".txt"
}

// Packer writes zip archives.
type Packer struct {
	level int
}

// Option configures a Packer.
type Option func(*Packer)

// WithLevel sets the deflate compression level.
func WithLevel(level int) Option {
	return func(p *Packer) {
		if level >= flate.HuffmanOnly && level <= flate.BestCompression {
			p.level = level
		}
	}
}

// NewPacker creates a zip packer.
func NewPacker(opts ...Option) *Packer {
	p := &Packer{level: flate.DefaultCompression}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ContentType returns the archive media type.
func (p *Packer) ContentType() string {
	return ContentType
}

// Pack writes every piece, then the manifest.
// The archive is built in memory so callers never observe a partial result.
func (p *Packer) Pack(pieces []domain.Piece, manifest *domain.Manifest) ([]byte, error) {
	if manifest == nil {
		return nil, errors.New("manifest is required")
	}
	if len(pieces) != len(manifest.Pieces) {
		return nil, fmt.Errorf("manifest lists %d pieces, got %d", len(manifest.Pieces), len(pieces))
	}

	modified := entryTime(manifest.CreatedAt)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, p.level)
	})

	seen := make(map[string]bool, len(pieces))
	for i, piece := range pieces {
		if seen[piece.ID] {
			return nil, fmt.Errorf("duplicate piece id %s", piece.ID)
		}
		seen[piece.ID] = true
		if manifest.Pieces[i].ID != piece.ID {
			return nil, fmt.Errorf("piece %d is %s, manifest expects %s", i+1, piece.ID, manifest.Pieces[i].ID)
		}
		if err := writeEntry(zw, EntryName(piece.ID), modified, []byte(piece.Text)); err != nil {
			return nil, err
		}
	}

	data, err := EncodeManifest(manifest)
	if err != nil {
		return nil, err
	}
	if err := writeEntry(zw, ManifestName, modified, data); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise archive: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeManifest renders a manifest as indented JSON with non-ASCII text kept verbatim.
func EncodeManifest(manifest *domain.Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, modified time.Time, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// entryTime stamps entries with the manifest creation time.
func entryTime(createdAt string) time.Time {
	t, err := time.Parse(domain.ManifestTimeFormat, createdAt)
	if err != nil {
		return time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t.UTC()
}
