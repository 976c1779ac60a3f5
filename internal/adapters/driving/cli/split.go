package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
)

// errTerminalOutput is returned when the archive would be written to a terminal.
var errTerminalOutput = errors.New("refusing to write a zip archive to a terminal; use -o or redirect stdout")

var (
	splitMode         string
	splitLines        int
	splitBytes        int
	splitDefaultLines int
	splitDefaultBytes int
	splitOutput       string
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a document into a zip archive",
	Long: `Ingest a document and split its text into pieces.

Modes:
  lines  - groups of --lines lines (default 250), line endings kept
  size   - windows of at most --bytes UTF-8 bytes (default 200000),
           never cutting a character in half

The archive is written to -o, or to stdout when -o is "-" or omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitMode, "mode", "m", string(domain.ModeLines), "split mode: lines or size")
	splitCmd.Flags().IntVar(&splitLines, "lines", domain.DefaultLines, "lines per piece")
	splitCmd.Flags().IntVar(&splitBytes, "bytes", domain.DefaultBytes, "bytes per piece")
	splitCmd.Flags().IntVar(&splitDefaultLines, "default-lines", domain.DefaultLines, "threshold base for lines mode")
	splitCmd.Flags().IntVar(&splitDefaultBytes, "default-bytes", domain.DefaultBytes, "threshold base for size mode")
	splitCmd.Flags().StringVarP(&splitOutput, "output", "o", "", "archive path (- for stdout)")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	if ingestService == nil || splitService == nil {
		return errNotConfigured
	}

	toStdout := splitOutput == "" || splitOutput == "-"
	if toStdout && isTerminal(cmd.OutOrStdout()) {
		return errTerminalOutput
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx := cmd.Context()
	ingested, err := ingestService.Ingest(ctx, filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	result, err := splitService.Split(ctx, domain.SplitRequest{
		DocumentID: ingested.ID,
		Mode:       domain.Mode(splitMode),
		Params:     splitParams(cmd),
	})
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	if toStdout {
		if _, err := cmd.OutOrStdout().Write(result.Archive); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		printSplitSummary(cmd.ErrOrStderr(), ingested, result, "stdout")
		return nil
	}

	if err := os.WriteFile(splitOutput, result.Archive, 0o644); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	printSplitSummary(cmd.ErrOrStderr(), ingested, result, splitOutput)
	return nil
}

// splitParams collects only the flags the user set, so the manifest
// echoes exactly what was requested.
func splitParams(cmd *cobra.Command) domain.Params {
	params := domain.Params{}
	flags := cmd.Flags()
	if flags.Changed("lines") {
		params[domain.ParamLines] = splitLines
	}
	if flags.Changed("bytes") {
		params[domain.ParamBytes] = splitBytes
	}
	if flags.Changed("default-lines") {
		params[domain.ParamDefaultLines] = splitDefaultLines
	}
	if flags.Changed("default-bytes") {
		params[domain.ParamDefaultBytes] = splitDefaultBytes
	}
	return params
}

func printSplitSummary(w io.Writer, doc *driving.IngestResult, result *driving.SplitResult, dest string) {
	fmt.Fprintf(w, "%s (%s, %d chars) -> %s\n", doc.Name, doc.ID, doc.LengthChars, dest)
	if result.Manifest != nil && result.Manifest.Skipped() {
		fmt.Fprintf(w, "  not split: %s\n", result.Manifest.SkippedReason)
		return
	}
	fmt.Fprintf(w, "  %d piece(s)\n", len(result.Pieces))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
