package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

func readManifest(t *testing.T, archive []byte) domain.Manifest {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "manifest.json" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		var m domain.Manifest
		require.NoError(t, json.NewDecoder(rc).Decode(&m))
		return m
	}
	t.Fatal("manifest.json not found")
	return domain.Manifest{}
}

func TestSplitCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "split")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSplitCmd_Flags(t *testing.T) {
	for name, def := range map[string]string{
		"mode":          "lines",
		"lines":         "250",
		"bytes":         "200000",
		"default-lines": "250",
		"default-bytes": "200000",
		"output":        "",
	} {
		flag := splitCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
	assert.Equal(t, "o", splitCmd.Flags().Lookup("output").Shorthand)
}

func TestSplitCmd_WritesArchiveFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	input := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(input, []byte(numberedLines(1000)), 0o644))
	output := filepath.Join(dir, "book.zip")

	_, stderr, err := execute(t, "split", input, "--lines", "300", "-o", output)
	require.NoError(t, err, stderr)

	assert.Contains(t, stderr, "book.txt")
	assert.Contains(t, stderr, "4 piece(s)")

	archive, err := os.ReadFile(output)
	require.NoError(t, err)
	m := readManifest(t, archive)
	assert.Equal(t, domain.ModeLines, m.Mode)
	assert.Len(t, m.Pieces, 4)
	assert.Equal(t, float64(300), m.Params["lines"])
	assert.NotContains(t, m.Params, "bytes")
}

func TestSplitCmd_WritesArchiveToStdout(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	input := filepath.Join(t.TempDir(), "short.txt")
	require.NoError(t, os.WriteFile(input, []byte("one\ntwo\n"), 0o644))

	stdout, stderr, err := execute(t, "split", input)
	require.NoError(t, err, stderr)

	m := readManifest(t, []byte(stdout))
	assert.Equal(t, domain.SkippedBelowThreshold, m.SkippedReason)
	assert.Contains(t, stderr, "not split")
}

func TestSplitCmd_Errors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	txt := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o644))
	exe := filepath.Join(dir, "a.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o644))

	_, _, err := execute(t, "split", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	_, _, err = execute(t, "split", exe)
	assert.ErrorIs(t, err, domain.ErrUnsupportedExtension)

	_, _, err = execute(t, "split", txt, "--mode", "pages")
	assert.ErrorIs(t, err, domain.ErrInvalidMode)

	_, _, err = execute(t, "split", txt, "--lines", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestSplitCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "split", "x.txt")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
