package calendar

import (
	"sort"
	"time"
)

// Slot is the layout of one item within a single day column. Rendering
// derives pixel offsets from it: width = 100% / TotalColumns, left offset =
// Column * width, vertical extent from the hour pair.
type Slot struct {
	Item         Item
	StartHour    float64
	EndHour      float64
	Column       int
	TotalColumns int
}

// Pack assigns the items active on the given day to columns so that
// temporally overlapping items never share one. Greedy first-fit in order of
// ascending start hour: each item goes into the leftmost column whose last
// slot ended at or before the item starts, opening a new column when none
// fits. This can open more columns than the true chromatic number of the
// interval graph when items end early, which is acceptable for a calendar.
// Empty input yields empty output.
func Pack(items []Item, day time.Time) []Slot {
	slots := make([]Slot, 0, len(items))
	for _, item := range items {
		startHour, endHour := ClipToDay(item, day)
		slots = append(slots, Slot{
			Item:      item,
			StartHour: startHour,
			EndHour:   endHour,
		})
	}

	// Ties keep source order.
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartHour < slots[j].StartHour
	})

	// columnEnds[c] is the end hour of the last slot placed in column c.
	var columnEnds []float64
	for i := range slots {
		placed := false
		for c := range columnEnds {
			if columnEnds[c] <= slots[i].StartHour {
				slots[i].Column = c
				columnEnds[c] = slots[i].EndHour
				placed = true
				break
			}
		}
		if !placed {
			slots[i].Column = len(columnEnds)
			columnEnds = append(columnEnds, slots[i].EndHour)
		}
	}

	for i := range slots {
		slots[i].TotalColumns = len(columnEnds)
	}
	return slots
}
