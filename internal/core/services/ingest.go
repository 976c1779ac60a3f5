package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

const mib = 1024 * 1024

// DefaultUploadName is used when an upload carries no filename.
const DefaultUploadName = "uploaded"

// DefaultCaps returns the per-extension upload limits in bytes.
// Extensions present here but absent from EnabledExtensions are recognised
// but rejected.
func DefaultCaps() map[string]int64 {
	return map[string]int64{
		".txt":  10 * mib,
		".srt":  10 * mib,
		".vtt":  10 * mib,
		".docx": 25 * mib,
		".pdf":  40 * mib,
	}
}

// EnabledExtensions are the extensions accepted for ingestion.
var EnabledExtensions = []string{".docx", ".srt", ".txt", ".vtt"}

// MaxCap returns the largest enabled cap, used to bound request bodies.
func MaxCap(caps map[string]int64) int64 {
	var largest int64
	for _, ext := range EnabledExtensions {
		if c := caps[ext]; c > largest {
			largest = c
		}
	}
	return largest
}

// IngestService validates uploads, extracts their text and registers them.
type IngestService struct {
	registry   driven.DocumentRegistry
	extractors driven.ExtractorRegistry
	caps       map[string]int64
	now        func() time.Time
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithCaps replaces the per-extension upload limits.
func WithCaps(caps map[string]int64) IngestOption {
	return func(s *IngestService) {
		if len(caps) > 0 {
			s.caps = caps
		}
	}
}

// WithIngestClock overrides the clock used for IngestedAt.
func WithIngestClock(now func() time.Time) IngestOption {
	return func(s *IngestService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	registry driven.DocumentRegistry,
	extractors driven.ExtractorRegistry,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		registry:   registry,
		extractors: extractors,
		caps:       DefaultCaps(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest validates, extracts and registers data uploaded as filename.
func (s *IngestService) Ingest(ctx context.Context, filename string, data []byte) (*driving.IngestResult, error) {
	if s.registry == nil || s.extractors == nil {
		return nil, errors.New("ingest service not configured")
	}

	name := filename
	if name == "" {
		name = DefaultUploadName
	}
	ext := ExtensionOf(name)

	logger.Section("Ingest")
	logger.Debug("File: %q (%s, %d bytes)", name, ext, len(data))

	if len(data) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if err := s.enforceCaps(ext, len(data)); err != nil {
		return nil, err
	}

	extractor, err := s.extractors.Lookup(ext)
	if err != nil {
		if domain.IsConfigFault(err) {
			logger.Warn("No extractor available for %s: %v", ext, err)
		}
		return nil, err
	}

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrParseFailure) {
			return nil, fmt.Errorf("failed to parse %s file: %w", ext, err)
		}
		return nil, fmt.Errorf("%w: %s extractor: %v", domain.ErrParseFailure, extractor.Name(), err)
	}

	hash := domain.ContentHash(data)
	doc := &domain.Document{
		ID:           domain.DocumentID(hash),
		OriginalName: name,
		Extension:    ext,
		ContentHash:  hash,
		Text:         text,
		LengthChars:  utf8.RuneCountInString(text),
		IngestedAt:   s.now().UTC(),
	}

	stored, err := s.registry.Put(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to register document: %w", err)
	}
	logger.Info("Registered document %s (%d chars)", stored.ID, stored.LengthChars)

	return &driving.IngestResult{
		ID:          stored.ID,
		Name:        stored.OriginalName,
		Extension:   stored.Extension,
		LengthChars: stored.LengthChars,
	}, nil
}

// Get retrieves a registered document.
func (s *IngestService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.registry == nil {
		return nil, errors.New("ingest service not configured")
	}
	if documentID == "" {
		return nil, domain.ErrDocumentNotFound
	}
	return s.registry.Get(ctx, documentID)
}

// enforceCaps rejects unknown, disabled and oversized uploads.
func (s *IngestService) enforceCaps(ext string, size int) error {
	limit, ok := s.caps[ext]
	if !ok {
		return fmt.Errorf("%w: unsupported file type: %q", domain.ErrUnsupportedExtension, ext)
	}
	if !isEnabled(ext) {
		return fmt.Errorf("%w: %s is not supported in this version; supported: %s",
			domain.ErrUnsupportedExtension, ext, strings.Join(EnabledExtensions, ", "))
	}
	if int64(size) > limit {
		return fmt.Errorf("%w: %s limit is %d MB", domain.ErrOversizeFile, ext, limit/mib)
	}
	return nil
}

func isEnabled(ext string) bool {
	i := sort.SearchStrings(EnabledExtensions, ext)
	return i < len(EnabledExtensions) && EnabledExtensions[i] == ext
}

// ExtensionOf returns the lowercased extension of filename, including the dot.
// Leading dots belong to the name, so ".txt" has no extension.
func ExtensionOf(filename string) string {
	base := strings.TrimLeft(filepath.Base(filename), ".")
	return strings.ToLower(filepath.Ext(base))
}
