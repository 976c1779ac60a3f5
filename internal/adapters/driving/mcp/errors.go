// Package mcp provides an MCP (Model Context Protocol) server adapter for
// split-engine. It lets AI assistants ingest documents and split them into
// archived pieces.
package mcp

import "errors"

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")

// ErrMissingSplitService is returned when the split service is not provided.
var ErrMissingSplitService = errors.New("mcp: split service is required")

// ErrNoInput is returned when ingest_document receives neither a path nor content.
var ErrNoInput = errors.New("mcp: either path or content_base64 is required")
