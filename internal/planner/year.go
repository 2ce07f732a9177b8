package planner

import (
	"context"
	"fmt"
	"strconv"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/models"
	"github.com/starford/weeks/internal/ordering"
	"github.com/starford/weeks/internal/period"
)

// YearView is the display form of one calendar year's objectives.
type YearView struct {
	Calendar calendar.Metadata `json:"calendar"`
	Year     int               `json:"year"`
	YearText string            `json:"year_string"`
	Current  bool              `json:"current"`
	Items    []models.ItemView `json:"items"`
	Snapshot string            `json:"snapshot"`
}

// Period places an objective in a year and optionally in one season or month.
type Period struct {
	Year   int  `json:"year"`
	Season *int `json:"season,omitempty"`
	Month  *int `json:"month,omitempty"`
}

// Validate checks that at most one of season and month is set and both are in range.
func (p Period) Validate() error {
	if p.Year <= 0 {
		return fmt.Errorf("planner: year %d: %w", p.Year, apperr.ErrInvalidInput)
	}
	if p.Season != nil && p.Month != nil {
		return fmt.Errorf("planner: period has both season and month: %w", apperr.ErrInvalidInput)
	}
	if p.Season != nil && (*p.Season < 1 || *p.Season > 4) {
		return fmt.Errorf("planner: season %d: %w", *p.Season, apperr.ErrInvalidInput)
	}
	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		return fmt.Errorf("planner: month %d: %w", *p.Month, apperr.ErrInvalidInput)
	}
	return nil
}

func (s *Service) loadYear(ctx context.Context, v calendar.Variant, year int) (*listing, error) {
	items, err := s.store.ItemsInYear(ctx, v, year)
	if err != nil {
		return nil, err
	}
	l := &listing{
		name:  fmt.Sprintf("%s year %d", v, year),
		scope: scopePeriod,
		items: items,
	}
	if err := s.repair(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) currentYear(set Settings) (int, error) {
	return period.CurrentYear(s.now(), set.Main.Variant)
}

// CurrentYear returns the view of the main calendar's year containing today.
func (s *Service) CurrentYear(ctx context.Context) (*YearView, error) {
	year, err := s.currentYear(s.Settings())
	if err != nil {
		return nil, err
	}
	return s.Year(ctx, year)
}

// Year returns the view of year in the main calendar.
func (s *Service) Year(ctx context.Context, year int) (*YearView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.Settings()
	l, err := s.loadYear(ctx, set.Main.Variant, year)
	if err != nil {
		return nil, err
	}
	current, err := s.currentYear(set)
	if err != nil {
		return nil, err
	}
	md, err := calendar.CalendarMetadata(set.Main.Variant, set.Main.Language)
	if err != nil {
		return nil, err
	}
	lang, _ := calendar.ParseLanguage(md.Language)
	return &YearView{
		Calendar: md,
		Year:     year,
		YearText: lang.LocalizeDigits(strconv.Itoa(year)),
		Current:  year == current,
		Items:    itemViews(l.items, set),
		Snapshot: l.snapshot(),
	}, nil
}

// AddObjective appends an objective to period p of the main calendar.
func (s *Service) AddObjective(ctx context.Context, p Period, kind models.Kind, text string) (*models.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := validateText(kind, text); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.Settings()
	l, err := s.loadYear(ctx, set.Main.Variant, p.Year)
	if err != nil {
		return nil, err
	}
	key, err := ordering.AppendKey(l.entries())
	if err != nil {
		return nil, fmt.Errorf("planner: append to %s: %w", l.name, err)
	}
	it, err := s.store.CreateItem(ctx, models.NewItem{
		Calendar: set.Main.Variant,
		Year:     &p.Year,
		Season:   p.Season,
		Month:    p.Month,
		Day:      s.Today(),
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

// ReorderYear moves the item at index from to index to in year of the main calendar.
func (s *Service) ReorderYear(ctx context.Context, year, from, to int, snapshot string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadYear(ctx, s.Settings().Main.Variant, year)
	if err != nil {
		return nil, err
	}
	return s.reorder(ctx, l, from, to, snapshot)
}

// SetObjectivePeriod moves an item into period p of its own calendar. When the
// year changes the item is appended to its new year; week items become objectives.
func (s *Service) SetObjectivePeriod(ctx context.Context, id int64, p Period) (*models.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	sameYear := it.Year != nil && *it.Year == p.Year
	if !it.IsObjective() {
		// An objective is ordered only within its year.
		it.OrderInWeek = nil
	}
	it.Year, it.Season, it.Month = &p.Year, p.Season, p.Month

	if !sameYear {
		it.OrderInPeriod = nil
		target, err := s.loadYear(ctx, it.Calendar, p.Year)
		if err != nil {
			return nil, err
		}
		key, err := ordering.AppendKey(target.entries())
		if err != nil {
			return nil, fmt.Errorf("planner: append to %s: %w", target.name, err)
		}
		it.OrderInPeriod = &key
	}
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	s.publish(ActionMoved, id)
	return it, nil
}
