// Package models defines the domain types for the planner.
package models

import (
	"time"

	"github.com/starford/weeks/internal/calendar"
)

// Kind is the type of a planner item.
type Kind int

const (
	KindGoal  Kind = 1
	KindNote  Kind = 2
	KindEvent Kind = 3
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindGoal || k == KindNote || k == KindEvent
}

// Status is the completion state of an item.
type Status int

const (
	StatusUndone Status = 0
	StatusDone   Status = 1
)

// ObjectiveType classifies an item attached to a calendar period.
type ObjectiveType int

const (
	ObjectiveNone     ObjectiveType = 0
	ObjectiveMonthly  ObjectiveType = 1
	ObjectiveSeasonal ObjectiveType = 2
	ObjectiveYearly   ObjectiveType = 3
)

// Item is a stored planner entry. Items with Year set are objectives: they
// belong to a calendar period and are ordered by OrderInPeriod. All other items
// belong to the week containing Day and are ordered by OrderInWeek.
type Item struct {
	ID            int64            `json:"id"`
	UUID          string           `json:"uuid"`
	Calendar      calendar.Variant `json:"calendar"`
	Year          *int             `json:"year,omitempty"`
	Season        *int             `json:"season,omitempty"`
	Month         *int             `json:"month,omitempty"`
	Day           calendar.Day     `json:"day"`
	Kind          Kind             `json:"kind"`
	FixedDate     bool             `json:"fixed_date"`
	AllDay        bool             `json:"all_day"`
	Title         *string          `json:"title,omitempty"`
	Note          *string          `json:"note,omitempty"`
	Status        Status           `json:"status"`
	OrderInWeek   *string          `json:"order_in_week,omitempty"`
	OrderInPeriod *string          `json:"order_in_period,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// IsObjective reports whether the item belongs to a calendar period.
func (it *Item) IsObjective() bool {
	return it.Year != nil
}

// Text returns the goal title or the note body, depending on kind.
func (it *Item) Text() string {
	switch it.Kind {
	case KindGoal:
		return deref(it.Title)
	case KindNote:
		return deref(it.Note)
	default:
		return ""
	}
}

// SetText stores text in the field that matches the item kind.
func (it *Item) SetText(text string) {
	switch it.Kind {
	case KindGoal:
		it.Title = &text
	case KindNote:
		it.Note = &text
	}
}

// Done reports whether the item is completed.
func (it *Item) Done() bool {
	return it.Status == StatusDone
}

// Toggle flips the completion state.
func (it *Item) Toggle() {
	if it.Status == StatusDone {
		it.Status = StatusUndone
	} else {
		it.Status = StatusDone
	}
}

// ObjectiveType derives the period granularity from the period fields.
func (it *Item) ObjectiveType() ObjectiveType {
	switch {
	case it.Year == nil:
		return ObjectiveNone
	case it.Season != nil:
		return ObjectiveSeasonal
	case it.Month != nil:
		return ObjectiveMonthly
	default:
		return ObjectiveYearly
	}
}

// WeekKey returns the week ordering key, or "" when missing.
func (it *Item) WeekKey() string {
	return deref(it.OrderInWeek)
}

// PeriodKey returns the period ordering key, or "" when missing.
func (it *Item) PeriodKey() string {
	return deref(it.OrderInPeriod)
}

// NewItem holds the fields of an item to be inserted.
type NewItem struct {
	Calendar calendar.Variant
	Year     *int
	Season   *int
	Month    *int
	Day      calendar.Day
	Kind     Kind
	Text     string
	// Key is stored as the period key for objectives and the week key otherwise.
	Key string
}

// Item expands n into an Item with text and key placed by kind and period.
func (n NewItem) Item() Item {
	it := Item{
		Calendar: n.Calendar,
		Year:     n.Year,
		Season:   n.Season,
		Month:    n.Month,
		Day:      n.Day,
		Kind:     n.Kind,
		Status:   StatusUndone,
	}
	it.SetText(n.Text)
	key := n.Key
	if it.IsObjective() {
		it.OrderInPeriod = &key
	} else {
		it.OrderInWeek = &key
	}
	return it
}

// ItemView is the display form of an item.
type ItemView struct {
	ID        int64         `json:"id"`
	UUID      string        `json:"uuid"`
	Calendar  int           `json:"calendar"`
	Kind      Kind          `json:"kind"`
	Text      string        `json:"text"`
	Done      bool          `json:"status"`
	Day       calendar.Day  `json:"day"`
	Objective *ObjectiveTag `json:"objective_tag,omitempty"`
}

// ObjectiveTag labels the period an objective belongs to, e.g. "Summer 2024".
type ObjectiveTag struct {
	Calendar     int           `json:"calendar"`
	CalendarName string        `json:"calendar_name"`
	Language     string        `json:"language"`
	Type         ObjectiveType `json:"type"`
	Text         string        `json:"text"`
	Year         int           `json:"year"`
	YearText     string        `json:"year_string"`
	Season       *int          `json:"season,omitempty"`
	Month        *int          `json:"month,omitempty"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
