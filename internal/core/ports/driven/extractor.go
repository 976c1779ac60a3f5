package driven

import "context"

// Extractor turns raw file bytes into plain text.
// Each extractor handles a fixed set of file extensions.
type Extractor interface {
	// Name returns the extractor name for logging.
	Name() string

	// Extensions returns the lowercased extensions (with dot) this extractor handles.
	Extensions() []string

	// Extract returns the plain text of raw.
	// Malformed input yields domain.ErrParseFailure.
	Extract(ctx context.Context, raw []byte) (string, error)
}

// ExtractorRegistry is the capability table resolved at startup.
type ExtractorRegistry interface {
	// Lookup returns the extractor for ext.
	// Unknown extensions yield domain.ErrUnsupportedExtension; known
	// extensions without an available extractor yield domain.ErrExtractorUnavailable.
	Lookup(ext string) (Extractor, error)

	// Extensions returns every extension with an available extractor, sorted.
	Extensions() []string
}
