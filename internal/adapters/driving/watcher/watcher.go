// Package watcher splits documents as they appear in a directory.
//
// Every created or rewritten file is ingested and split with the configured
// mode; the archive lands in the output directory as <name>.split.zip.
// Files whose content has not changed since the last run are skipped.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// ArchiveSuffix is appended to the source filename to name its archive.
const ArchiveSuffix = ".split.zip"

// DefaultSettle is how long a file must be quiet before it is processed.
const DefaultSettle = 250 * time.Millisecond

// Errors returned by the watcher.
var (
	ErrMissingIngestService = errors.New("ingest service is required")
	ErrMissingSplitService  = errors.New("split service is required")
	ErrClosed               = errors.New("watcher is closed")
)

// Result describes one processed file.
type Result struct {
	// Path is the source file.
	Path string

	// DocumentID is the registered document identifier.
	DocumentID string

	// ArchivePath is where the archive was written.
	ArchivePath string

	// Pieces is the number of pieces in the archive.
	Pieces int

	// Skipped is true when the threshold policy suppressed splitting.
	Skipped bool
}

// Watcher processes files dropped into a directory.
type Watcher struct {
	mu      sync.Mutex
	dir     string
	outDir  string
	ingest  driving.IngestService
	split   driving.SplitService
	mode    domain.Mode
	params  domain.Params
	settle  time.Duration
	onDone  func(Result)
	seen    map[string]string
	pending map[string]*time.Timer
	closed  bool
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMode sets the split mode. The default is lines.
func WithMode(mode domain.Mode) Option {
	return func(w *Watcher) {
		w.mode = mode
	}
}

// WithParams sets the split parameters passed with every request.
func WithParams(params domain.Params) Option {
	return func(w *Watcher) {
		w.params = params.Clone()
	}
}

// WithSettle sets the quiet period before a file is processed.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.settle = d
		}
	}
}

// WithOnResult registers a callback invoked after each archive is written.
func WithOnResult(fn func(Result)) Option {
	return func(w *Watcher) {
		w.onDone = fn
	}
}

// New creates a watcher for dir that writes archives to outDir.
func New(ingest driving.IngestService, split driving.SplitService, dir, outDir string, opts ...Option) (*Watcher, error) {
	if ingest == nil {
		return nil, ErrMissingIngestService
	}
	if split == nil {
		return nil, ErrMissingSplitService
	}

	w := &Watcher{
		dir:     dir,
		outDir:  outDir,
		ingest:  ingest,
		split:   split,
		mode:    domain.ModeLines,
		params:  domain.Params{},
		settle:  DefaultSettle,
		seen:    make(map[string]string),
		pending: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	if !w.mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, w.mode)
	}
	return w, nil
}

// Run watches the directory until ctx is cancelled.
// Files already present are not processed; only new events are.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.mu.Unlock()

	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch directory: %s is not a directory", w.dir)
	}
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s, writing archives to %s", w.dir, w.outDir)

	defer w.drain()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path := w.eligible(event); path != "" {
				w.schedule(ctx, path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// Close stops pending work. Run returns once its context is cancelled.
func (w *Watcher) Close() error {
	w.drain()
	return nil
}

// drain cancels timers that have not fired and waits for running jobs.
func (w *Watcher) drain() {
	w.mu.Lock()
	w.closed = true
	for path, timer := range w.pending {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

// eligible returns the event path when the event should trigger processing.
func (w *Watcher) eligible(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	name := filepath.Base(event.Name)
	if isHidden(name) || strings.HasSuffix(name, ArchiveSuffix) {
		return ""
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}
	return event.Name
}

// schedule processes path once it has been quiet for the settle period.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if timer, ok := w.pending[path]; ok && timer.Stop() {
		timer.Reset(w.settle)
		return
	}

	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.settle, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.pending[path] == timer {
			delete(w.pending, path)
		}
		w.mu.Unlock()

		res, err := w.Process(ctx, path)
		switch {
		case err != nil:
			logWatchError(path, err)
		case res != nil && w.onDone != nil:
			w.onDone(*res)
		}
	})
	w.pending[path] = timer
}

// Process ingests and splits one file. It returns nil, nil when the file's
// content is unchanged since it was last processed.
func (w *Watcher) Process(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ingested, err := w.ingest.Ingest(ctx, filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	unchanged := w.seen[path] == ingested.ID
	w.mu.Unlock()
	if unchanged {
		logger.Debug("%s unchanged (%s), skipping", path, ingested.ID)
		return nil, nil
	}

	result, err := w.split.Split(ctx, domain.SplitRequest{
		DocumentID: ingested.ID,
		Mode:       w.mode,
		Params:     w.params.Clone(),
	})
	if err != nil {
		return nil, err
	}

	archivePath := filepath.Join(w.outDir, filepath.Base(path)+ArchiveSuffix)
	if err := writeFileAtomic(archivePath, result.Archive); err != nil {
		return nil, fmt.Errorf("writing archive: %w", err)
	}

	w.mu.Lock()
	w.seen[path] = ingested.ID
	w.mu.Unlock()

	res := &Result{
		Path:        path,
		DocumentID:  ingested.ID,
		ArchivePath: archivePath,
		Pieces:      len(result.Pieces),
	}
	if result.Manifest != nil {
		res.Skipped = result.Manifest.Skipped()
	}
	logger.Info("split %s into %d piece(s): %s", path, res.Pieces, archivePath)
	return res, nil
}

// logWatchError reports a failed file. Unsupported and empty files are
// routine in a drop directory and only logged in verbose mode.
func logWatchError(path string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedExtension), errors.Is(err, domain.ErrEmptyFile):
		logger.Debug("skipping %s: %v", path, err)
	case domain.IsConfigFault(err):
		logger.Warn("%s: %v", path, err)
	default:
		logger.Error("%s: %v", path, err)
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".split-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
