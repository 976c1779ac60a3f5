// Package cli implements the splitengine command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services wired by the binary.
var (
	ingestService   driving.IngestService
	splitService    driving.SplitService
	archiveService  driving.ArchiveService
	settingsService driving.SettingsService
	configSource    ConfigSource
	closeServices   func() error
)

// ConfigSource explains where an effective configuration value comes from.
type ConfigSource interface {
	Describe(key string) string
}

// GlobalOptions carries the parsed global flags to the initializer.
type GlobalOptions struct {
	Verbose   bool
	ConfigDir string
}

// Services is the set of core services the commands drive.
type Services struct {
	Ingest   driving.IngestService
	Split    driving.SplitService
	Archive  driving.ArchiveService
	Settings driving.SettingsService

	// Source is optional; config get uses it to annotate overridden keys.
	Source ConfigSource

	// Close releases resources such as the registry database. Optional.
	Close func() error
}

// Initializer builds services once global flags are known.
type Initializer func(opts GlobalOptions) (*Services, error)

var initializer Initializer

var rootCmd = &cobra.Command{
	Use:   "splitengine",
	Short: "Split documents into ordered pieces with a manifest",
	Long: `splitengine ingests .txt, .docx, .srt and .vtt files, extracts their
text and splits it by lines or by UTF-8 byte size. Every run produces a zip
archive holding the pieces and a manifest.json describing them.

Small inputs are not split: when a text spans fewer than twice the default
piece size, the archive holds a single piece and the manifest records why.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if closeServices == nil {
			return nil
		}
		err := closeServices()
		closeServices = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.splitengine)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetInitializer registers the function that wires services before a command runs.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetServices injects services directly, bypassing the initializer.
func SetServices(s *Services) {
	if s == nil {
		ingestService, splitService, archiveService = nil, nil, nil
		settingsService, configSource, closeServices = nil, nil, nil
		return
	}
	ingestService = s.Ingest
	splitService = s.Split
	archiveService = s.Archive
	settingsService = s.Settings
	configSource = s.Source
	closeServices = s.Close
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if initializer == nil || ingestService != nil {
		return nil
	}
	if cmd.Name() == versionCmd.Name() {
		return nil
	}

	svc, err := initializer(GlobalOptions{Verbose: verbose, ConfigDir: configDir})
	if err != nil {
		return err
	}
	SetServices(svc)
	return nil
}

var errNotConfigured = errors.New("services not configured")
