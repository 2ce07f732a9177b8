package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/weeks/internal/apperr"
)

// Backup writes a consistent copy of the database into dir and returns its path.
// The file is named after the database with a timestamp suffix.
func (db *DB) Backup(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		dir = filepath.Dir(db.path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: backup dir: %w", err)
	}
	stamp := strings.ReplaceAll(time.Now().Format(time.RFC3339), ":", "-")
	dst := filepath.Join(dir, fmt.Sprintf("%s.%s.backup", filepath.Base(db.path), stamp))
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("store: backup %s: %w", dst, apperr.ErrAlreadyExists)
	}
	if _, err := db.conn.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return "", fmt.Errorf("store: backup: %w", err)
	}
	return dst, nil
}
