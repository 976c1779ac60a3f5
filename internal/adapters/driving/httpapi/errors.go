// Package httpapi exposes the ingest and split services over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// Configuration errors returned by NewServer.
var (
	// ErrMissingIngestService indicates the Ingest port was not provided.
	ErrMissingIngestService = errors.New("ingest service is required")

	// ErrMissingSplitService indicates the Split port was not provided.
	ErrMissingSplitService = errors.New("split service is required")
)

// Error kinds reported in the "error" field of failed responses.
const (
	KindUnsupportedExtension = "unsupported_extension"
	KindOversizeFile         = "oversize_file"
	KindEmptyFile            = "empty_file"
	KindParseFailure         = "parse_failure"
	KindInvalidMode          = "invalid_mode"
	KindInvalidParameter     = "invalid_parameter"
	KindDocumentNotFound     = "document_not_found"
	KindExtractorUnavailable = "extractor_unavailable"
	KindRateLimited          = "rate_limited"
	KindBadRequest           = "bad_request"
	KindInternal             = "internal"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// classify maps a service error to its HTTP status and kind.
func classify(err error) (int, string) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrUnsupportedExtension):
		return http.StatusUnsupportedMediaType, KindUnsupportedExtension
	case errors.Is(err, domain.ErrOversizeFile), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, KindOversizeFile
	case errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, KindEmptyFile
	case errors.Is(err, domain.ErrParseFailure):
		return http.StatusBadRequest, KindParseFailure
	case errors.Is(err, domain.ErrInvalidMode):
		return http.StatusBadRequest, KindInvalidMode
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest, KindInvalidParameter
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, KindDocumentNotFound
	case domain.IsConfigFault(err):
		return http.StatusInternalServerError, KindExtractorUnavailable
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("writing response: %v", err)
	}
}

// writeError reports err to the client. Configuration faults are logged
// at WARN and unexpected errors at ERROR; caller mistakes only at DEBUG.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, kind := classify(err)
	switch {
	case kind == KindExtractorUnavailable:
		logger.Warn("%s %s [%s]: %v", r.Method, r.URL.Path, RequestIDFrom(r.Context()), err)
	case code >= http.StatusInternalServerError:
		logger.Error("%s %s [%s]: %v", r.Method, r.URL.Path, RequestIDFrom(r.Context()), err)
	default:
		logger.Debug("%s %s [%s]: %v", r.Method, r.URL.Path, RequestIDFrom(r.Context()), err)
	}
	writeJSON(w, code, errorBody{Error: kind, Detail: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: KindBadRequest, Detail: detail})
}
