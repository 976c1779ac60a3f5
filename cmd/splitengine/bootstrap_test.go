package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/split-engine/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/split-engine/internal/adapters/driving/cli"
	"github.com/custodia-labs/split-engine/internal/core/domain"
)

func TestBootstrap_MemoryDefaults(t *testing.T) {
	dir := t.TempDir()

	svc, err := bootstrap(cli.GlobalOptions{ConfigDir: dir})
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	assert.Equal(t, filepath.Join(dir, "config.toml"), svc.Settings.Path())

	res, err := svc.Ingest.Ingest(context.Background(), "a.txt", []byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, res.LengthChars)

	out, err := svc.Split.Split(context.Background(), domain.SplitRequest{
		DocumentID: res.ID,
		Mode:       domain.ModeLines,
	})
	require.NoError(t, err)
	assert.True(t, out.Manifest.Skipped())
}

func TestBootstrap_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[registry]\nbackend = \"sqlite\"\n"), 0o600))

	svc, err := bootstrap(cli.GlobalOptions{ConfigDir: dir})
	require.NoError(t, err)

	_, err = svc.Ingest.Ingest(context.Background(), "a.txt", []byte("persisted"))
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	assert.FileExists(t, filepath.Join(dir, "data", sqlite.DatabaseFile))
}

func TestBootstrap_DisabledExtractor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[extractors]\ndisabled = [\"docx\"]\n"), 0o600))

	svc, err := bootstrap(cli.GlobalOptions{ConfigDir: dir})
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Ingest.Ingest(context.Background(), "a.docx", []byte("PK"))
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)
}

func TestBootstrap_InvalidConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[split]\ndefault_lines = -3\n"), 0o600))

	svc, err := bootstrap(cli.GlobalOptions{ConfigDir: dir})
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Settings.Get()
	assert.Error(t, err)
}

func TestBootstrap_EnvironmentOverride(t *testing.T) {
	t.Setenv("SPLITENGINE_REGISTRY_BACKEND", "sqlite")
	t.Setenv("SPLITENGINE_REGISTRY_DATA_DIR", filepath.Join(t.TempDir(), "db"))

	svc, err := bootstrap(cli.GlobalOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)
	defer svc.Close()

	settings, err := svc.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrySQLite, settings.Registry.Backend)
}
