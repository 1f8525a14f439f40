package calendar

import "time"

// minSlotHours is the minimum visual duration of a slot: anything shorter
// would be too small to click on.
const minSlotHours = 0.5

// IsActiveOn reports whether the item occupies any part of the given day.
// The rule is strict overlap against the half-open day [00:00, 24:00): an
// item ending exactly at midnight does not bleed into the next day. Due-only
// tasks are active exactly on the day of their due instant.
func IsActiveOn(item Item, day time.Time) bool {
	if item.Kind == KindTask && item.DueOnly {
		return SameDay(item.Start, day)
	}
	dayStart := DayStart(day)
	dayEnd := DayEnd(day)
	return item.End.After(dayStart) && item.Start.Before(dayEnd)
}

// ClipToDay computes the fractional start and end hour of the item on the
// given day, clamping multi-day items to [0, 24]. The result always spans at
// least minSlotHours: the end is extended when the clipped duration is
// shorter, and only at the very top of the day, where extending is
// impossible, the start moves back instead.
func ClipToDay(item Item, day time.Time) (startHour, endHour float64) {
	dayStart := DayStart(day)
	dayEnd := DayEnd(day)

	if item.Start.Before(dayStart) {
		startHour = 0
	} else {
		startHour = hourOfDay(item.Start)
	}
	if item.End.Before(dayEnd) {
		endHour = hourOfDay(item.End)
	} else {
		endHour = 24
	}

	if endHour-startHour < minSlotHours {
		endHour = startHour + minSlotHours
		if endHour > 24 {
			endHour = 24
			startHour = 24 - minSlotHours
		}
	}
	return startHour, endHour
}

// hourOfDay is the wall-clock hour as a fraction, e.g. 14:30 -> 14.5.
func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}
