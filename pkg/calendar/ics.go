package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"
)

// ExportICS renders the items as an iCalendar document, so the dashboard
// calendar can be subscribed to from external clients.
func ExportICS(items []Item, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//ModuLink//Calendar//EN")

	for _, item := range items {
		ev := cal.AddEvent(item.UID)
		ev.SetDtStampTime(now)
		ev.SetSummary(item.Title)
		ev.SetStartAt(item.Start)
		ev.SetEndAt(item.End)
		if item.Location != "" {
			ev.SetLocation(item.Location)
		}
	}
	return cal.Serialize()
}
