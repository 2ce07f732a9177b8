// Package planner assembles week and year views over stored items and applies
// ordering changes to them.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/checksum"
	"github.com/starford/weeks/internal/models"
	"github.com/starford/weeks/internal/ordering"
	"github.com/starford/weeks/internal/store"
)

// Publisher receives a notification after every successful item mutation.
type Publisher interface {
	PublishItemEvent(action string, id int64)
}

// Item event actions.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionMoved    = "moved"
	ActionDeleted  = "deleted"
	ActionRepaired = "repaired"
)

// Service coordinates the item store, the calendar engine and ordering keys.
//
// Every public method holds one lock from read to write, so key computations
// always see the snapshot they are written against.
type Service struct {
	store    store.ItemStore
	settings SettingsSource
	pub      Publisher
	log      *slog.Logger
	now      func() time.Time

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the change-notification sink.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.pub = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides the wall clock used to determine today.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a planner service.
func NewService(st store.ItemStore, settings SettingsSource, opts ...Option) *Service {
	s := &Service{
		store:    st,
		settings: settings,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the current settings snapshot.
func (s *Service) Settings() Settings {
	return s.settings.Current()
}

func (s *Service) publish(action string, id int64) {
	if s.pub != nil {
		s.pub.PublishItemEvent(action, id)
	}
}

// scope selects which ordering key of an item a listing works on.
type scope int

const (
	scopeWeek scope = iota
	scopePeriod
)

func (sc scope) key(it *models.Item) string {
	if sc == scopePeriod {
		return it.PeriodKey()
	}
	return it.WeekKey()
}

func (sc scope) setKey(it *models.Item, key string) {
	if sc == scopePeriod {
		it.OrderInPeriod = &key
	} else {
		it.OrderInWeek = &key
	}
}

// listing is one ordering context: the items of a week or of a year, in key order.
type listing struct {
	name  string
	scope scope
	items []models.Item
}

func (l *listing) entries() []ordering.Entry {
	out := make([]ordering.Entry, len(l.items))
	for i := range l.items {
		out[i] = ordering.Entry{ID: l.items[i].ID, Key: l.scope.key(&l.items[i])}
	}
	return out
}

func (l *listing) snapshot() string {
	return checksum.Snapshot(l.entries())
}

func (l *listing) find(id int64) (*models.Item, error) {
	for i := range l.items {
		if l.items[i].ID == id {
			return &l.items[i], nil
		}
	}
	return nil, fmt.Errorf("planner: %s: item %d: %w", l.name, id, apperr.ErrUnknownID)
}

// repair renormalizes the listing's keys when they are missing, malformed,
// unordered or too long, and persists every member in one transaction.
func (s *Service) repair(ctx context.Context, l *listing) error {
	entries := l.entries()
	if !ordering.NeedsRepair(entries) {
		return nil
	}
	fresh := ordering.Renormalize(entries)
	for i := range l.items {
		l.scope.setKey(&l.items[i], fresh[i].Key)
	}
	if err := s.store.UpdateItems(ctx, l.items); err != nil {
		return fmt.Errorf("planner: repair %s: %w", l.name, err)
	}
	s.log.Info("renormalized ordering keys",
		slog.String("context", l.name),
		slog.Int("members", len(l.items)),
	)
	s.publish(ActionRepaired, 0)
	return nil
}

// setKey stores key as id's key in the listing.
func (s *Service) setKey(ctx context.Context, l *listing, id int64, key string) (*models.Item, error) {
	it, err := l.find(id)
	if err != nil {
		return nil, err
	}
	l.scope.setKey(it, key)
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// loadFor loads the ordering context it belongs to.
func (s *Service) loadFor(ctx context.Context, it *models.Item, set Settings) (*listing, error) {
	if it.IsObjective() {
		return s.loadYear(ctx, it.Calendar, *it.Year)
	}
	return s.loadWeek(ctx, weekOf(it.Day, set))
}

// Direction of a single-step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MoveItem moves id one position up or down within its week or year.
// Moving the first item up or the last item down is a no-op.
func (s *Service) MoveItem(ctx context.Context, id int64, dir Direction) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	l, err := s.loadFor(ctx, it, s.Settings())
	if err != nil {
		return nil, err
	}

	var (
		key   string
		moved bool
	)
	switch dir {
	case Up:
		key, moved, err = ordering.MoveUp(l.entries(), id)
	case Down:
		key, moved, err = ordering.MoveDown(l.entries(), id)
	default:
		return nil, fmt.Errorf("planner: move direction %q: %w", dir, apperr.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("planner: move %s: %w", l.name, err)
	}
	if !moved {
		return l.find(id)
	}
	updated, err := s.setKey(ctx, l, id, key)
	if err != nil {
		return nil, err
	}
	s.publish(ActionMoved, id)
	return updated, nil
}

// reorder moves the item at index from to index to within l. A non-empty
// snapshot must match the listing's current tag.
func (s *Service) reorder(ctx context.Context, l *listing, from, to int, snapshot string) (*models.Item, error) {
	if snapshot != "" && snapshot != l.snapshot() {
		return nil, fmt.Errorf("planner: reorder %s: stale snapshot: %w", l.name, apperr.ErrConflict)
	}
	id, key, err := ordering.Reorder(l.entries(), from, to)
	if err != nil {
		return nil, fmt.Errorf("planner: reorder %s: %w", l.name, err)
	}
	it, err := s.setKey(ctx, l, id, key)
	if err != nil {
		return nil, err
	}
	s.publish(ActionMoved, id)
	return it, nil
}

// InsertAfter creates an item directly after afterID, in the same week or
// year and with the same period.
func (s *Service) InsertAfter(ctx context.Context, afterID int64, kind models.Kind, text string) (*models.Item, error) {
	if err := validateText(kind, text); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	after, err := s.store.GetItem(ctx, afterID)
	if err != nil {
		return nil, err
	}
	l, err := s.loadFor(ctx, after, s.Settings())
	if err != nil {
		return nil, err
	}
	key, err := ordering.InsertAfter(l.entries(), afterID)
	if err != nil {
		return nil, fmt.Errorf("planner: insert into %s: %w", l.name, err)
	}
	it, err := s.store.CreateItem(ctx, models.NewItem{
		Calendar: after.Calendar,
		Year:     after.Year,
		Season:   after.Season,
		Month:    after.Month,
		Day:      after.Day,
		Kind:     kind,
		Text:     text,
		Key:      key,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ActionCreated, it.ID)
	return it, nil
}
