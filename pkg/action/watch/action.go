package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/action/generate"
	"github.com/cmmoran/wsdlphpgen/pkg/generator"
)

// DefaultDebounce collapses bursts of editor writes into one run.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc receives the outcome of every regeneration.
type RunFunc func(*generate.Result, error)

// Watcher regenerates whenever the schema document (or the custom pattern
// file) changes. Runs never overlap.
type Watcher struct {
	schemaPath string
	opts       *generator.Options
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	onRun      RunFunc
	log        *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	files map[string]bool

	runMu   sync.Mutex
	stopped bool // guarded by runMu
}

// New creates a Watcher for schemaPath. The parent directories are watched
// so editors that replace files on save are still noticed.
func New(schemaPath string, opts *generator.Options, onRun RunFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{
		schemaPath: schemaPath,
		opts:       opts,
		watcher:    fw,
		debounce:   DefaultDebounce,
		onRun:      onRun,
		log:        log,
		files:      map[string]bool{},
	}

	paths := []string{schemaPath}
	if opts.PatternFile != "" {
		paths = append(paths, opts.PatternFile)
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		w.files[abs] = true
		if err = fw.Add(filepath.Dir(abs)); err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
		}
	}
	return w, nil
}

// SetDebounce changes the debounce period.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Run generates once, then on every relevant change until ctx is done. It
// returns only after an in-flight regeneration has finished; no run starts
// afterwards.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	w.regenerate()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Info("change detected",
				"file", event.Name,
				"op", event.Op.String())
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

// stop cancels a pending run, waits for a running one and closes the
// fsnotify watcher.
func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.runMu.Lock()
	w.stopped = true
	w.runMu.Unlock()

	_ = w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.regenerate)
}

func (w *Watcher) regenerate() {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if w.stopped {
		return
	}

	res, err := generate.Generate(w.opts, w.schemaPath)
	if err != nil {
		w.log.Error("regeneration failed", "schema", w.schemaPath, "error", err)
	}
	if w.onRun != nil {
		w.onRun(res, err)
	}
}
