package watcher

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/split-engine/internal/adapters/driven/archive/zippack"
	"github.com/custodia-labs/split-engine/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/services"
	"github.com/custodia-labs/split-engine/internal/extractors"
)

func newServices() (*services.IngestService, *services.SplitService) {
	registry := memory.NewRegistry()
	ingest := services.NewIngestService(registry, extractors.NewDefaultRegistry(nil))
	split := services.NewSplitService(registry, zippack.NewPacker())
	return ingest, split
}

func numberedLines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("line ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString("\n")
	}
	return b.String()
}

func archiveEntries(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestNew_Validation(t *testing.T) {
	ingest, split := newServices()

	_, err := New(nil, split, "in", "out")
	assert.ErrorIs(t, err, ErrMissingIngestService)

	_, err = New(ingest, nil, "in", "out")
	assert.ErrorIs(t, err, ErrMissingSplitService)

	_, err = New(ingest, split, "in", "out", WithMode("pages"))
	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestProcess(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	ingest, split := newServices()
	w, err := New(ingest, split, in, out, WithParams(domain.Params{"lines": 300}))
	require.NoError(t, err)

	path := filepath.Join(in, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte(numberedLines(1000)), 0o644))

	res, err := w.Process(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, filepath.Join(out, "book.txt.split.zip"), res.ArchivePath)
	assert.Equal(t, 4, res.Pieces)
	assert.False(t, res.Skipped)
	assert.Len(t, res.DocumentID, domain.IDLength)
	assert.Equal(t, []string{
		"piece_0001.txt", "piece_0002.txt", "piece_0003.txt", "piece_0004.txt", "manifest.json",
	}, archiveEntries(t, res.ArchivePath))
}

func TestProcess_SkipsUnchangedContent(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	ingest, split := newServices()
	w, err := New(ingest, split, in, out)
	require.NoError(t, err)

	path := filepath.Join(in, "short.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	first, err := w.Process(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Skipped)
	assert.Equal(t, 1, first.Pieces)

	again, err := w.Process(context.Background(), path)
	require.NoError(t, err)
	assert.Nil(t, again)

	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))
	changed, err := w.Process(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, changed)
	assert.NotEqual(t, first.DocumentID, changed.DocumentID)
}

func TestProcess_Errors(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	ingest, split := newServices()
	w, err := New(ingest, split, in, out)
	require.NoError(t, err)

	_, err = w.Process(context.Background(), filepath.Join(in, "missing.txt"))
	assert.Error(t, err)

	exe := filepath.Join(in, "tool.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o644))
	_, err = w.Process(context.Background(), exe)
	assert.ErrorIs(t, err, domain.ErrUnsupportedExtension)

	empty := filepath.Join(in, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = w.Process(context.Background(), empty)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestRun_ProcessesNewFiles(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "archives")
	ingest, split := newServices()

	results := make(chan Result, 4)
	w, err := New(ingest, split, in, out,
		WithSettle(20*time.Millisecond),
		WithOnResult(func(r Result) { results <- r }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.Run(ctx))
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(in, ".hidden.txt"), []byte("hidden"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hello\nworld\n"), 0o644))

	select {
	case r := <-results:
		assert.Equal(t, filepath.Join(in, "notes.txt"), r.Path)
		assert.FileExists(t, filepath.Join(out, "notes.txt.split.zip"))
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for archive")
	}

	assert.NoFileExists(t, filepath.Join(out, ".hidden.txt.split.zip"))
}

func TestRun_MissingDirectory(t *testing.T) {
	ingest, split := newServices()
	w, err := New(ingest, split, filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.NoError(t, err)

	assert.Error(t, w.Run(context.Background()))
}

func TestRun_AfterClose(t *testing.T) {
	ingest, split := newServices()
	w, err := New(ingest, split, t.TempDir(), t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Run(context.Background()), ErrClosed)
}
