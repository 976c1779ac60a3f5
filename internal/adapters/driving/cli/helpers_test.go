package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/split-engine/internal/adapters/driven/archive/zippack"
	"github.com/custodia-labs/split-engine/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/split-engine/internal/core/services"
	"github.com/custodia-labs/split-engine/internal/extractors"
)

// setupTestServices wires real services over in-memory adapters.
func setupTestServices() func() {
	registry := memory.NewRegistry()
	settings := services.NewSettingsService(memory.NewConfigStore())
	SetServices(&Services{
		Ingest:   services.NewIngestService(registry, extractors.NewDefaultRegistry(nil)),
		Split:    services.NewSplitService(registry, zippack.NewPacker()),
		Archive:  services.NewArchiveService(zippack.NewReader(0)),
		Settings: settings,
	})
	return func() {
		SetServices(nil)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func numberedLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("a line of text\n")
	}
	return b.String()
}
