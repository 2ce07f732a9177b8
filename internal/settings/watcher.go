package settings

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDelay is how long the watcher waits for a burst of file events to settle.
const ReloadDelay = 500 * time.Millisecond

// Watch reloads the settings whenever the settings file changes, until ctx is
// cancelled. The parent directory is watched so that editors replacing the
// file through a rename are noticed too.
func (m *Manager) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir, name := filepath.Split(m.path)
	if dir == "" {
		dir = "."
	}
	if err := w.Add(dir); err != nil {
		return err
	}

	m.logger.Info("settings watcher: started", slog.String("path", m.path))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(ReloadDelay)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(ReloadDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			m.logger.Info("settings watcher: stopped")
			return nil

		case <-reloadCh:
			if err := m.Reload(); err != nil {
				m.logger.Warn("settings watcher: reload failed, keeping current settings",
					slog.String("path", m.path),
					slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			m.logger.Error("settings watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
