package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/split-engine/internal/adapters/driving/watcher"
	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/logger"
)

var (
	watchOut    string
	watchMode   string
	watchSettle time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Split files as they appear in a directory",
	Long: `Watch a directory and split every new or modified .txt, .docx, .srt
or .vtt file. Archives are written to --out as <name>.split.zip.

The split mode defaults to watch.mode; chunk sizes and thresholds use the
split.* configuration keys. Rewrites with identical content are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchOut, "out", "", "output directory for archives (required)")
	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", "", "split mode (overrides watch.mode)")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watcher.DefaultSettle, "quiet period before a file is processed")
	_ = watchCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil || splitService == nil || settingsService == nil {
		return errNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	mode := settings.Split.WatchMode
	if watchMode != "" {
		mode = domain.Mode(watchMode)
	}

	out := cmd.OutOrStdout()
	w, err := watcher.New(ingestService, splitService, args[0], watchOut,
		watcher.WithMode(mode),
		watcher.WithSettle(watchSettle),
		watcher.WithOnResult(func(r watcher.Result) {
			fmt.Fprintf(out, "%s -> %s (%d piece(s))\n", r.Path, r.ArchivePath, r.Pieces)
		}),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.SetTimestamps(true)
	fmt.Fprintf(out, "Watching %s (mode %s), press Ctrl+C to stop\n", args[0], mode)

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return w.Run(ctx)
}
