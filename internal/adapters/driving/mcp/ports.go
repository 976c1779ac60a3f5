package mcp

import (
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest registers uploaded documents.
	Ingest driving.IngestService

	// Split divides registered documents into archives.
	Split driving.SplitService

	// Archive inspects archives. Optional; the inspect_archive tool is
	// only registered when set.
	Archive driving.ArchiveService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Split == nil {
		return ErrMissingSplitService
	}
	return nil
}
