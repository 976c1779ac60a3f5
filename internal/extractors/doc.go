// Package extractors holds the capability table that maps file extensions
// to text extractors, plus the built-in extractors in its subpackages.
//
// The table is built once at startup. An extension can be known but
// unavailable, for example when an operator disables it in configuration;
// lookups for such extensions fail with domain.ErrExtractorUnavailable
// rather than domain.ErrUnsupportedExtension.
package extractors
