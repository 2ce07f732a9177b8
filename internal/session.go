package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/starford/weeks/internal/planner"
	"github.com/starford/weeks/internal/settings"
	"github.com/starford/weeks/internal/store"
)

// ErrLocked is returned when another process holds the database.
var ErrLocked = errors.New("another weeks process is using the database")

// Session is an opened planner: the locked database, the settings file and
// the service on top of them.
type Session struct {
	Service  *planner.Service
	Settings *settings.Manager
	DB       *store.DB

	lock *flock.Flock
}

// Open acquires the database lock, migrates the database and loads the settings.
func Open(cfg *Config, logger *slog.Logger, opts ...planner.Option) (*Session, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	// The lock file sits next to the database, so the dir must exist first.
	lock := flock.New(cfg.SQLite.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", cfg.SQLite.Path, ErrLocked)
	}

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("init store: %w", err)
	}

	mgr, err := settings.Open(cfg.Settings.Path, planner.DefaultSettings(), logger)
	if err != nil {
		db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("init settings: %w", err)
	}

	opts = append([]planner.Option{planner.WithLogger(logger)}, opts...)
	return &Session{
		Service:  planner.NewService(db, mgr, opts...),
		Settings: mgr,
		DB:       db,
		lock:     lock,
	}, nil
}

// Close closes the database and releases the lock.
func (s *Session) Close() error {
	err := s.DB.Close()
	if unlockErr := s.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}
