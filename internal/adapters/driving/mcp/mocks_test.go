package mcp

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

	gotName string
	gotData []byte
}

func (m *mockIngestService) Ingest(_ context.Context, filename string, data []byte) (*driving.IngestResult, error) {
	m.gotName = filename
	m.gotData = data
	return m.result, m.err
}

func (m *mockIngestService) Get(_ context.Context, _ string) (*domain.Document, error) {
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

// mockArchiveService is a mock implementation of driving.ArchiveService.
type mockArchiveService struct {
	report *driving.ArchiveReport
	text   string
	err    error
}

func (m *mockArchiveService) Inspect(_ context.Context, _ []byte) (*driving.ArchiveReport, error) {
	return m.report, m.err
}

func (m *mockArchiveService) Reassemble(_ context.Context, _ []byte) (string, error) {
	return m.text, m.err
}
