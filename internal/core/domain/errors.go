package domain

import "errors"

// Domain errors represent request-local failures.
// None of them are transient; callers should not retry.
var (
	// ErrUnsupportedExtension indicates the file extension has no extractor
	// or is not enabled in this version.
	ErrUnsupportedExtension = errors.New("unsupported extension")

	// ErrOversizeFile indicates the upload exceeds the cap for its extension.
	ErrOversizeFile = errors.New("file too large")

	// ErrEmptyFile indicates an upload with no bytes.
	ErrEmptyFile = errors.New("empty file")

	// ErrParseFailure indicates the extractor could not parse the input.
	ErrParseFailure = errors.New("parse failure")

	// ErrDocumentNotFound indicates the requested document ID is not registered.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidMode indicates a split mode other than lines or size.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidParameter indicates a split parameter that is not a positive integer.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrExtractorUnavailable indicates a known extension whose extractor
	// is not available in this deployment.
	// This is a configuration fault rather than a caller error.
	ErrExtractorUnavailable = errors.New("extractor unavailable")

	// ErrInvalidArchive indicates an archive that is not a well-formed split pack.
	ErrInvalidArchive = errors.New("invalid archive")
)

// IsConfigFault reports whether err signals a misconfigured deployment
// rather than an invalid request.
func IsConfigFault(err error) bool {
	return errors.Is(err, ErrExtractorUnavailable)
}
