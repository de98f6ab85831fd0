package schedule

import (
	"fmt"
	"time"

	"triphive/internal/models"

	ics "github.com/arran4/golang-ical"
)

// BuildCalendar serializes a trip's events as an iCalendar feed. Events
// with a parseable start time become timed entries; everything else is
// exported all-day.
func BuildCalendar(trip *models.Trip, events []models.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TripHive//Trip Schedule//EN")
	cal.SetName(trip.TripName)

	now := time.Now().UTC()
	for _, ev := range events {
		day, err := time.Parse(models.DateLayout, ev.Date)
		if err != nil {
			continue
		}

		vevent := cal.AddEvent(fmt.Sprintf("event-%d@triphive", ev.ID))
		vevent.SetDtStampTime(now)
		vevent.SetSummary(ev.Description)
		if ev.Note != "" {
			vevent.SetDescription(ev.Note)
		}

		startOffset, ok := ClockOffset(ev.StartTime)
		if !ok {
			vevent.SetAllDayStartAt(day)
			vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}

		start := day.Add(startOffset)
		vevent.SetStartAt(start)
		if endOffset, ok := ClockOffset(ev.EndTime); ok && endOffset > startOffset {
			vevent.SetEndAt(day.Add(endOffset))
		} else {
			vevent.SetEndAt(start.Add(time.Hour))
		}
	}

	return cal.Serialize()
}
