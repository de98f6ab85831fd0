// Package schedule derives renderable day grids from a trip's date
// range and normalizes raw time input. Everything here is pure.
package schedule

import (
	"strings"
	"time"

	"triphive/internal/models"

	"github.com/teambition/rrule-go"
)

// Default meridiem designators applied when the user has not picked one:
// a start time reads as morning, an end time as afternoon.
const (
	DefaultStartMeridiem = "AM"
	DefaultEndMeridiem   = "PM"
)

// Day is one calendar day of a trip schedule with its events.
type Day struct {
	Date   string         `json:"date"`
	Events []models.Event `json:"events"`
}

// DateList returns the ordered sequence of calendar days from start to
// end inclusive, one entry per day, ascending. Time-of-day on either
// bound is ignored. An end before start yields an empty list rather
// than an error; the calendar view simply renders no days.
func DateList(start, end time.Time) []time.Time {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return []time.Time{}
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start,
		Until:   end,
	})
	if err != nil {
		return []time.Time{}
	}
	return rule.All()
}

// CombineTimeAndDay concatenates a raw clock-time string with a
// meridiem designator, lowercasing the designator. No numeric parsing
// or 12/24-hour conversion happens; the result is a display string and
// must not be treated as sortable.
func CombineTimeAndDay(t, meridiem string) string {
	return t + strings.ToLower(meridiem)
}

// BuildDays produces the day grid for a trip: one Day per calendar day
// in the trip's range, each holding the events dated on it. Events
// whose date falls outside the range are dropped from the grid.
func BuildDays(trip *models.Trip, events []models.Event) ([]Day, error) {
	start, end, err := trip.DateRange()
	if err != nil {
		return nil, models.NewValidationError("Trip has malformed dates")
	}

	byDate := make(map[string][]models.Event, len(events))
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}

	dates := DateList(start, end)
	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		key := d.Format(models.DateLayout)
		evs := byDate[key]
		if evs == nil {
			evs = []models.Event{}
		}
		days = append(days, Day{Date: key, Events: evs})
	}
	return days, nil
}

// ClockOffset converts a combined display time like "0900am" into an
// offset from midnight. The second return is false when the string does
// not parse, which callers treat as "all day".
func ClockOffset(s string) (time.Duration, bool) {
	t, err := time.Parse("0304pm", strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
