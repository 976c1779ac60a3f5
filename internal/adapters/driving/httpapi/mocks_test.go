package httpapi

import (
	"context"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result   *driving.IngestResult
	document *domain.Document
	err      error
	panicMsg string

	gotName string
	gotData []byte
	gotID   string
}

func (m *mockIngestService) Ingest(_ context.Context, filename string, data []byte) (*driving.IngestResult, error) {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.gotName = filename
	m.gotData = data
	return m.result, m.err
}

func (m *mockIngestService) Get(_ context.Context, id string) (*domain.Document, error) {
	m.gotID = id
	return m.document, m.err
}

// mockSplitService is a mock implementation of driving.SplitService.
type mockSplitService struct {
	result *driving.SplitResult
	err    error

	gotRequest domain.SplitRequest
}

func (m *mockSplitService) Split(_ context.Context, req domain.SplitRequest) (*driving.SplitResult, error) {
	m.gotRequest = req
	return m.result, m.err
}
