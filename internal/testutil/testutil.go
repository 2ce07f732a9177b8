// Package testutil provides shared test helpers for setting up databases and planners.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/planner"
	"github.com/starford/weeks/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "weeks-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ClockAt returns a clock fixed at noon UTC of day.
func ClockAt(day calendar.Day) func() time.Time {
	noon := day.Time().Add(12 * time.Hour)
	return func() time.Time { return noon }
}

// ItemEvent is one recorded planner notification.
type ItemEvent struct {
	Action string
	ID     int64
}

// Recorder is a planner.Publisher that keeps every event.
type Recorder struct {
	mu     sync.Mutex
	events []ItemEvent
}

// PublishItemEvent implements planner.Publisher.
func (r *Recorder) PublishItemEvent(action string, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ItemEvent{Action: action, ID: id})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []ItemEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ItemEvent(nil), r.events...)
}

// TestPlanner creates a planner over a temporary database whose clock reads today.
func TestPlanner(t *testing.T, set planner.Settings, today calendar.Day) (*planner.Service, *store.DB, *Recorder) {
	t.Helper()
	db := TestDB(t)
	rec := &Recorder{}
	svc := planner.NewService(db, planner.StaticSettings(set),
		planner.WithClock(ClockAt(today)),
		planner.WithPublisher(rec),
		planner.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return svc, db, rec
}
