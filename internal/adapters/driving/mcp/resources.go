package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for split-engine resources.
	uriScheme = "splitengine://"
)

// documentInfo is the JSON shape of a registered document, without its text.
type documentInfo struct {
	FileID      string `json:"file_id"`
	Name        string `json:"name"`
	Extension   string `json:"ext"`
	SHA256      string `json:"sha256"`
	LengthChars int    `json:"length_chars"`
	IngestedAt  string `json:"ingested_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{fileId}",
		Name:        "document",
		Description: "Metadata of a registered document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{fileId}/text",
		Name:        "document-text",
		Description: "Extracted text of a registered document",
		MIMEType:    "text/plain",
	}, s.handleDocumentTextResource)
}

// handleDocumentResource returns metadata for a registered document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	doc, err := s.lookupDocument(ctx, req.Params.URI, "")
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(documentInfo{
		FileID:      doc.ID,
		Name:        doc.OriginalName,
		Extension:   doc.Extension,
		SHA256:      doc.ContentHash,
		LengthChars: doc.LengthChars,
		IngestedAt:  doc.IngestedAt.UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentTextResource returns the extracted text of a document.
func (s *Server) handleDocumentTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	doc, err := s.lookupDocument(ctx, req.Params.URI, "/text")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Text,
		}},
	}, nil
}

func (s *Server) lookupDocument(ctx context.Context, uri, suffix string) (*domain.Document, error) {
	id := extractDocumentID(uri, suffix)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	doc, err := s.ports.Ingest.Get(ctx, id)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}

// extractDocumentID extracts the id from splitengine://documents/{id}{suffix}.
func extractDocumentID(uri, suffix string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
