package in

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ascent/internal/modules/rollup/dto"
)

const (
	defaultDebounce = 300 * time.Millisecond
	eventBuffer     = 64
)

// PlanWatcher watches a plans directory and reports which day's note
// changed. Each write restarts that day's quiet period, so a burst of
// writes to one note yields one event once the note has been quiet for the
// debounce interval.
type PlanWatcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   *debouncer

	events chan dto.PlanChanged
}

type pendingChange struct {
	path string
	last time.Time
}

// debouncer tracks the last write per day. A day is due once no write has
// touched it for quiet.
type debouncer struct {
	quiet   time.Duration
	changes map[string]pendingChange
}

func newDebouncer(quiet time.Duration) *debouncer {
	return &debouncer{quiet: quiet, changes: map[string]pendingChange{}}
}

func (d *debouncer) touch(date, path string, now time.Time) {
	d.changes[date] = pendingChange{path: path, last: now}
}

// due removes and returns the days that have been quiet long enough,
// ordered by date.
func (d *debouncer) due(now time.Time) []dto.PlanChanged {
	var out []dto.PlanChanged
	for date, c := range d.changes {
		if now.Sub(c.last) < d.quiet {
			continue
		}
		out = append(out, dto.PlanChanged{Date: date, Path: c.path})
		delete(d.changes, date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func NewPlanWatcher(dir string, debounce time.Duration, logger *slog.Logger) (*PlanWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &PlanWatcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  newDebouncer(debounce),
		events:   make(chan dto.PlanChanged, eventBuffer),
	}, nil
}

// Events is closed when the watcher stops.
func (w *PlanWatcher) Events() <-chan dto.PlanChanged {
	return w.events
}

// Start creates the directory if needed and begins watching it.
func (w *PlanWatcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	go w.run(ctx)
	w.logger.Debug("plan watcher started", "dir", w.dir)
	return nil
}

func (w *PlanWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *PlanWatcher) run(ctx context.Context) {
	defer close(w.events)
	// Poll faster than the quiet period so a due day waits at most a
	// quarter interval extra.
	ticker := time.NewTicker(max(w.debounce/4, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event, time.Now())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("plan watcher error", "error", err)
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

func (w *PlanWatcher) handle(event fsnotify.Event, now time.Time) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	date, ok := PlanDate(event.Name)
	if !ok {
		return
	}
	w.pendingMu.Lock()
	w.pending.touch(date, event.Name, now)
	w.pendingMu.Unlock()
}

func (w *PlanWatcher) flush(ctx context.Context, now time.Time) {
	w.pendingMu.Lock()
	batch := w.pending.due(now)
	w.pendingMu.Unlock()

	for _, change := range batch {
		select {
		case w.events <- change:
		case <-ctx.Done():
			return
		default:
			w.logger.Warn("plan change dropped, consumer is behind", "date", change.Date)
		}
	}
}

// PlanDate extracts the day from a plan note path such as
// plans/2024-05-06.md.
func PlanDate(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), ".md") {
		return "", false
	}
	date := strings.TrimSuffix(base, filepath.Ext(base))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", false
	}
	return date, true
}
