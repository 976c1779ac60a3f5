package httpapi

import "github.com/custodia-labs/split-engine/internal/core/ports/driving"

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Ingest registers uploaded documents.
	Ingest driving.IngestService

	// Split divides registered documents into archives.
	Split driving.SplitService
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
