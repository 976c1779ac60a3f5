package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// ArchiveFilename is the attachment name of split responses.
const ArchiveFilename = "split-pack.zip"

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 32 << 20

// splitBody is the JSON request of POST /split.
type splitBody struct {
	FileID string        `json:"file_id"`
	Mode   string        `json:"mode"`
	Params domain.Params `json:"params"`
}

// documentInfo is the JSON shape of a registered document, without its text.
type documentInfo struct {
	FileID      string `json:"file_id"`
	Name        string `json:"name"`
	Extension   string `json:"ext"`
	SHA256      string `json:"sha256"`
	LengthChars int    `json:"length_chars"`
	IngestedAt  string `json:"ingested_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxBody {
		writeError(w, r, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrOversizeFile, s.maxBody))
		return
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrOversizeFile, maxErr.Limit))
			return
		}
		writeBadRequest(w, "expected multipart/form-data body")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.Debug("removing multipart files: %v", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, `missing form field "file"`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("reading upload: %w", err))
		return
	}

	result, err := s.ports.Ingest.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Debug("registered %s as %s (%d chars)", result.Name, result.ID, result.LengthChars)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var body splitBody
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrOversizeFile, maxErr.Limit))
			return
		}
		writeBadRequest(w, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}

	result, err := s.ports.Split.Split(r.Context(), domain.SplitRequest{
		DocumentID: body.FileID,
		Mode:       domain.Mode(body.Mode),
		Params:     body.Params,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = "application/zip"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ArchiveFilename))
	http.ServeContent(w, r, ArchiveFilename, time.Time{}, bytes.NewReader(result.Archive))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ports.Ingest.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, documentInfo{
		FileID:      doc.ID,
		Name:        doc.OriginalName,
		Extension:   doc.Extension,
		SHA256:      doc.ContentHash,
		LengthChars: doc.LengthChars,
		IngestedAt:  doc.IngestedAt.UTC().Format(time.RFC3339Nano),
	})
}
