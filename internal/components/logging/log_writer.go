package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
)

// intervalRotatingWriter rotates the active log file once the configured
// interval has elapsed. Files are named <base>.log.YYYYMMDD for daily-or-longer
// intervals and <base>.log.YYYYMMDDHHmmss for shorter ones.
type intervalRotatingWriter struct {
	mu       sync.Mutex
	dir      string
	baseName string
	cfg      *RotateConfig

	file     *os.File
	openedAt time.Time
}

var (
	dailyLogPattern  = regexp.MustCompile(`^.+\.log\.[0-9]{8}$`)
	stampsLogPattern = regexp.MustCompile(`^.+\.log\.[0-9]{14}$`)
)

func newIntervalRotatingWriter(dir, baseName string, rc *RotateConfig) (*intervalRotatingWriter, error) {
	if rc == nil || rc.RotateInterval <= 0 {
		return nil, fmt.Errorf("rotate_interval must be positive")
	}
	w := &intervalRotatingWriter{dir: dir, baseName: baseName, cfg: rc}
	if err := w.rotateLocked(time.Now()); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *intervalRotatingWriter) tagFor(t time.Time) string {
	if w.cfg.RotateInterval >= 24*time.Hour {
		return t.Format("20060102")
	}
	return t.Format("20060102150405")
}

func (w *intervalRotatingWriter) pathFor(tag string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s.log.%s", w.baseName, tag))
}

func (w *intervalRotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.rotateLocked(time.Now()); err != nil {
		return 0, err
	}
	return w.file.Write(p)
}

func (w *intervalRotatingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		return w.file.Sync()
	}
	return nil
}

func (w *intervalRotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	_ = w.file.Sync()
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *intervalRotatingWriter) rotateLocked(now time.Time) error {
	if w.file != nil {
		if now.Sub(w.openedAt) < w.cfg.RotateInterval {
			return nil
		}
		_ = w.file.Sync()
		_ = w.file.Close()
	}
	path := w.pathFor(w.tagFor(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	w.file = f
	w.openedAt = now

	if w.cfg.CleanupEnabled && w.cfg.MaxAge > 0 {
		w.removeExpiredLocked(now)
	}
	return nil
}

func (w *intervalRotatingWriter) removeExpiredLocked(now time.Time) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}
	cutoff := now.Add(-w.cfg.MaxAge)
	prefix := w.baseName + ".log."
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !dailyLogPattern.MatchString(name) && !stampsLogPattern.MatchString(name) {
			continue
		}
		stamp := strings.TrimPrefix(name, prefix)
		layout := "20060102"
		if len(stamp) == 14 {
			layout = "20060102150405"
		}
		t, err := time.Parse(layout, stamp)
		if err != nil {
			continue
		}
		if t.Before(cutoff) {
			_ = os.Remove(filepath.Join(w.dir, name))
		}
	}
}
