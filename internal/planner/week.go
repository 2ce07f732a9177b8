package planner

import (
	"context"
	"fmt"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/models"
	"github.com/starford/weeks/internal/ordering"
	"github.com/starford/weeks/internal/period"
)

// WeekInfo is a week rendered in one calendar and language.
type WeekInfo struct {
	Calendar  calendar.Variant         `json:"calendar"`
	Language  string                   `json:"language"`
	Direction string                   `json:"direction"`
	Dates     []calendar.LocalizedDate `json:"dates"`
	// Caption names the month(s) the week spans, e.g. "July" or "July 2023 - August 2023".
	Caption string `json:"month_year_info"`
}

// WeekView is the display form of a week.
type WeekView struct {
	Reference calendar.Day      `json:"reference_day"`
	Start     calendar.Day      `json:"start_day"`
	Middle    calendar.Day      `json:"middle_day"`
	End       calendar.Day      `json:"end_day"`
	Today     calendar.Day      `json:"today"`
	// Current is set when the week contains today.
	Current bool `json:"current"`
	// Previous and Next are reference days of the neighbouring weeks.
	Previous calendar.Day     `json:"previous_day"`
	Next     calendar.Day     `json:"next_day"`
	Main      WeekInfo          `json:"week_info_main"`
	Aux       *WeekInfo         `json:"week_info_aux,omitempty"`
	Items     []models.ItemView `json:"items"`
	// Snapshot tags the current ordering; pass it back to reorder.
	Snapshot string `json:"snapshot"`
}

func weekOf(day calendar.Day, set Settings) period.Bounds {
	return period.Week(day, set.StartWeekday)
}

func (s *Service) loadWeek(ctx context.Context, b period.Bounds) (*listing, error) {
	items, err := s.store.ItemsBetweenDays(ctx, b.Start, b.End)
	if err != nil {
		return nil, err
	}
	l := &listing{
		name:  fmt.Sprintf("week %d..%d", b.Start, b.End),
		scope: scopeWeek,
		items: items,
	}
	if err := s.repair(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Today returns today's absolute day.
func (s *Service) Today() calendar.Day {
	return calendar.Today(s.now())
}

// Week returns the view of the week containing ref.
func (s *Service) Week(ctx context.Context, ref calendar.Day) (*WeekView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.Settings()
	b := weekOf(ref, set)
	l, err := s.loadWeek(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.weekView(ref, b, l, set)
}

// CurrentWeek returns the view of the week containing today.
func (s *Service) CurrentWeek(ctx context.Context) (*WeekView, error) {
	return s.WeekAt(ctx, 0)
}

// WeekAt returns the view of the week offset whole weeks from the current one.
func (s *Service) WeekAt(ctx context.Context, offset int) (*WeekView, error) {
	ref := s.Today()
	if offset != 0 {
		ref = weekOf(ref, s.Settings()).Shift(offset).Middle
	}
	return s.Week(ctx, ref)
}

func (s *Service) weekView(ref calendar.Day, b period.Bounds, l *listing, set Settings) (*WeekView, error) {
	today := s.Today()
	main, err := buildWeekInfo(b, today, set.Main)
	if err != nil {
		return nil, err
	}
	view := &WeekView{
		Reference: ref,
		Start:     b.Start,
		Middle:    b.Middle,
		End:       b.End,
		Today:     today,
		Current:   b.Contains(today),
		Previous:  b.Previous().Middle,
		Next:      b.Next().Middle,
		Main:      main,
		Items:     itemViews(l.items, set),
		Snapshot:  l.snapshot(),
	}
	if set.Secondary != nil {
		aux, err := buildWeekInfo(b, today, *set.Secondary)
		if err != nil {
			// The secondary calendar may not cover this week.
			aux = WeekInfo{Calendar: set.Secondary.Variant, Language: set.Secondary.Language.Code(), Dates: []calendar.LocalizedDate{}}
		}
		view.Aux = &aux
	}
	return view, nil
}

func buildWeekInfo(b period.Bounds, today calendar.Day, p Pair) (WeekInfo, error) {
	cal, err := calendar.For(p.Variant)
	if err != nil {
		return WeekInfo{}, err
	}
	lang := p.Language
	if !cal.Supports(lang) {
		lang = calendar.English
	}
	dates, err := calendar.DatesBetween(b.Start, b.End, p.Variant, lang)
	if err != nil {
		return WeekInfo{}, err
	}
	todayDate, err := calendar.Render(today, p.Variant, lang)
	if err != nil {
		return WeekInfo{}, err
	}
	return WeekInfo{
		Calendar:  p.Variant,
		Language:  lang.Code(),
		Direction: p.Variant.Direction(),
		Dates:     dates,
		Caption:   monthYearCaption(dates, todayDate),
	}, nil
}

// monthYearCaption omits the year when the whole week lies in today's year.
func monthYearCaption(dates []calendar.LocalizedDate, today calendar.LocalizedDate) string {
	if len(dates) == 0 {
		return ""
	}
	first, last := dates[0], dates[len(dates)-1]
	switch {
	case first.Month == last.Month && first.Year == today.Year:
		return first.Month
	case first.Month != last.Month && first.Year == today.Year && last.Year == today.Year:
		return first.Month + " - " + last.Month
	default:
		return fmt.Sprintf("%s %s - %s %s", first.Month, first.Year, last.Month, last.Year)
	}
}

// AddWeekItem appends an item to the week containing ref. The item is dated
// on the week's middle day in the main calendar.
func (s *Service) AddWeekItem(ctx context.Context, ref calendar.Day, kind models.Kind, text string) (*models.Item, error) {
	if err := validateText(kind, text); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.Settings()
	b := weekOf(ref, set)
	l, err := s.loadWeek(ctx, b)
	if err != nil {
		return nil, err
	}
	key, err := ordering.AppendKey(l.entries())
	if err != nil {
		return nil, fmt.Errorf("planner: append to %s: %w", l.name, err)
	}
	it, err := s.store.CreateItem(ctx, models.NewItem{
		Calendar: set.Main.Variant,
		Day:      b.Middle,
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

// ReorderWeek moves the item at index from to index to in the week containing ref.
func (s *Service) ReorderWeek(ctx context.Context, ref calendar.Day, from, to int, snapshot string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadWeek(ctx, weekOf(ref, s.Settings()))
	if err != nil {
		return nil, err
	}
	return s.reorder(ctx, l, from, to, snapshot)
}

// ShiftItem moves a week item by weeks whole weeks and appends it to the end
// of its new week.
func (s *Service) ShiftItem(ctx context.Context, id int64, weeks int) (*models.Item, error) {
	if weeks == 0 {
		return nil, fmt.Errorf("planner: shift by zero weeks: %w", apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.IsObjective() {
		return nil, fmt.Errorf("planner: shift objective %d: %w", id, apperr.ErrInvalidInput)
	}
	it.Day = it.Day.AddDays(weeks * calendar.DaysPerWeek)
	target, err := s.loadWeek(ctx, weekOf(it.Day, s.Settings()))
	if err != nil {
		return nil, err
	}
	key, err := ordering.AppendKey(target.entries())
	if err != nil {
		return nil, fmt.Errorf("planner: append to %s: %w", target.name, err)
	}
	it.OrderInWeek = &key
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	s.publish(ActionMoved, id)
	return it, nil
}
