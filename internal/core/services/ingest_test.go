package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/split-engine/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/split-engine/internal/core/domain"
)

func newTestIngestService(opts ...IngestOption) (*IngestService, *memory.Registry, *stubExtractors) {
	registry := memory.NewRegistry()
	extractors := newStubExtractors(".txt", ".srt", ".vtt", ".docx")
	opts = append([]IngestOption{WithIngestClock(fixedClock)}, opts...)
	return NewIngestService(registry, extractors, opts...), registry, extractors
}

func TestIngestService_Ingest_Success(t *testing.T) {
	svc, registry, _ := newTestIngestService()
	ctx := context.Background()

	result, err := svc.Ingest(ctx, "Notes.TXT", []byte("héllo"))
	require.NoError(t, err)

	hash := domain.ContentHash([]byte("héllo"))
	assert.Equal(t, hash[:domain.IDLength], result.ID)
	assert.Equal(t, "Notes.TXT", result.Name)
	assert.Equal(t, ".txt", result.Extension)
	assert.Equal(t, 5, result.LengthChars)

	doc, err := registry.Get(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, doc.ContentHash)
	assert.Equal(t, "héllo", doc.Text)
	assert.Equal(t, fixedTime, doc.IngestedAt)
}

func TestIngestService_Ingest_Idempotent(t *testing.T) {
	svc, registry, _ := newTestIngestService()
	ctx := context.Background()

	first, err := svc.Ingest(ctx, "a.txt", []byte("same"))
	require.NoError(t, err)
	second, err := svc.Ingest(ctx, "b.txt", []byte("same"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "a.txt", second.Name)

	n, err := registry.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIngestService_Ingest_DefaultName(t *testing.T) {
	svc, _, _ := newTestIngestService()

	_, err := svc.Ingest(context.Background(), "", []byte("data"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedExtension)
}

func TestIngestService_Ingest_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{"empty file", "a.txt", nil, domain.ErrEmptyFile},
		{"unknown extension", "a.exe", []byte("x"), domain.ErrUnsupportedExtension},
		{"no extension", "README", []byte("x"), domain.ErrUnsupportedExtension},
		{"pdf recognised but disabled", "a.pdf", []byte("%PDF"), domain.ErrUnsupportedExtension},
		{"oversize txt", "a.txt", bytes.Repeat([]byte("x"), 10*mib+1), domain.ErrOversizeFile},
		{"oversize vtt", "a.vtt", bytes.Repeat([]byte("x"), 10*mib+1), domain.ErrOversizeFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, registry, _ := newTestIngestService()

			_, err := svc.Ingest(context.Background(), tt.filename, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)

			n, _ := registry.Len(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestIngestService_Ingest_CapBoundary(t *testing.T) {
	svc, _, _ := newTestIngestService(WithCaps(map[string]int64{".txt": 4}))

	_, err := svc.Ingest(context.Background(), "a.txt", []byte("four"))
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), "b.txt", []byte("fives"))
	assert.ErrorIs(t, err, domain.ErrOversizeFile)
}

func TestIngestService_Ingest_ExtractorUnavailable(t *testing.T) {
	svc, _, extractors := newTestIngestService()
	extractors.unavailable[".docx"] = true

	_, err := svc.Ingest(context.Background(), "a.docx", []byte("PK"))
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)
	assert.True(t, domain.IsConfigFault(err))
}

func TestIngestService_Ingest_ParseFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"typed", domain.ErrParseFailure},
		{"untyped", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, registry, extractors := newTestIngestService()
			extractors.byExt[".srt"] = &stubExtractor{err: tt.err}

			_, err := svc.Ingest(context.Background(), "a.srt", []byte("garbage"))
			assert.ErrorIs(t, err, domain.ErrParseFailure)

			n, _ := registry.Len(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestIngestService_Get(t *testing.T) {
	svc, _, _ := newTestIngestService()
	ctx := context.Background()

	result, err := svc.Ingest(ctx, "a.txt", []byte("text"))
	require.NoError(t, err)

	doc, err := svc.Get(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, "text", doc.Text)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	_, err = svc.Get(ctx, "ffffffffffffffff")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestIngestService_NotConfigured(t *testing.T) {
	svc := NewIngestService(nil, nil)

	_, err := svc.Ingest(context.Background(), "a.txt", []byte("x"))
	assert.Error(t, err)
}

func TestMaxCap(t *testing.T) {
	assert.Equal(t, int64(25*mib), MaxCap(DefaultCaps()))
	assert.Equal(t, int64(0), MaxCap(map[string]int64{".pdf": 100}))
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, ".txt", ExtensionOf("Notes.TXT"))
	assert.Equal(t, ".docx", ExtensionOf("dir/report.v2.DocX"))
	assert.Equal(t, "", ExtensionOf("README"))
	assert.Equal(t, "", ExtensionOf(".txt"))
	assert.Equal(t, "", ExtensionOf("uploads/..docx"))
	assert.Equal(t, ".txt", ExtensionOf(".notes.txt"))
}

func TestIngestService_DotfileNameIsUnsupported(t *testing.T) {
	svc := NewIngestService(memory.NewRegistry(), newStubExtractors(".txt"))

	_, err := svc.Ingest(context.Background(), ".txt", []byte("hello"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedExtension)
}
