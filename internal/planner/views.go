package planner

import (
	"strconv"

	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/models"
)

// TodayView is today rendered in the main and, when configured, secondary pair.
type TodayView struct {
	Day       calendar.Day            `json:"unix_day"`
	Main      calendar.LocalizedDate  `json:"main"`
	Secondary *calendar.LocalizedDate `json:"secondary,omitempty"`
}

// TodayInfo renders today in the configured calendars.
func (s *Service) TodayInfo() (*TodayView, error) {
	set := s.Settings()
	day := s.Today()
	main, err := calendar.Render(day, set.Main.Variant, set.Main.Language)
	if err != nil {
		return nil, err
	}
	view := &TodayView{Day: day, Main: main}
	if set.Secondary != nil {
		if sec, err := calendar.Render(day, set.Secondary.Variant, set.Secondary.Language); err == nil {
			view.Secondary = &sec
		}
	}
	return view, nil
}

// CalendarInfo returns the metadata of calendar v in lang.
func (s *Service) CalendarInfo(v calendar.Variant, lang calendar.Language) (calendar.Metadata, error) {
	return calendar.CalendarMetadata(v, lang)
}

func itemViews(items []models.Item, set Settings) []models.ItemView {
	out := make([]models.ItemView, 0, len(items))
	for i := range items {
		out = append(out, ItemView(&items[i], set))
	}
	return out
}

// ItemView renders an item with the pair settings assign to its calendar.
func ItemView(it *models.Item, set Settings) models.ItemView {
	return models.ItemView{
		ID:        it.ID,
		UUID:      it.UUID,
		Calendar:  int(it.Calendar),
		Kind:      it.Kind,
		Text:      it.Text(),
		Done:      it.Done(),
		Day:       it.Day,
		Objective: ObjectiveTag(it, set.PairFor(it.Calendar)),
	}
}

// ObjectiveTag labels an objective's period in p's language, falling back to
// English when the calendar has no names in it. It returns nil for week items.
func ObjectiveTag(it *models.Item, p Pair) *models.ObjectiveTag {
	if it.Year == nil {
		return nil
	}
	cal, err := calendar.For(it.Calendar)
	if err != nil {
		return nil
	}
	lang := p.Language
	if !cal.Supports(lang) {
		lang = calendar.English
	}
	md := cal.Metadata(lang)
	yearText := lang.LocalizeDigits(strconv.Itoa(*it.Year))

	tag := &models.ObjectiveTag{
		Calendar:     int(it.Calendar),
		CalendarName: md.Name,
		Language:     md.Language,
		Type:         it.ObjectiveType(),
		Year:         *it.Year,
		YearText:     yearText,
		Season:       it.Season,
		Month:        it.Month,
	}
	switch tag.Type {
	case models.ObjectiveSeasonal:
		tag.Text = calendar.SeasonName(*it.Season, lang) + " " + yearText
	case models.ObjectiveMonthly:
		tag.Text = cal.MonthName(*it.Month, false, lang) + " " + yearText
	default:
		tag.Text = yearText
	}
	return tag
}
