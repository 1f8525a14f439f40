package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dayItem(uid string, startHour, endHour float64) Item {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)
	return Item{
		UID:   uid,
		Kind:  KindEvent,
		Title: uid,
		Start: day.Add(time.Duration(startHour * float64(time.Hour))),
		End:   day.Add(time.Duration(endHour * float64(time.Hour))),
	}
}

func TestPack_EmptyInput(t *testing.T) {
	slots := Pack(nil, time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local))

	assert.Empty(t, slots)
}

func TestPack_OverlappingItemsGetSeparateColumns(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)
	slots := Pack([]Item{
		dayItem("a", 9, 10),
		dayItem("b", 9.5, 10.5),
	}, day)

	assert.Len(t, slots, 2)
	assert.Equal(t, "a", slots[0].Item.UID)
	assert.Equal(t, 0, slots[0].Column)
	assert.Equal(t, "b", slots[1].Item.UID)
	assert.Equal(t, 1, slots[1].Column)
	assert.Equal(t, 2, slots[0].TotalColumns)
	assert.Equal(t, 2, slots[1].TotalColumns)
}

func TestPack_BackToBackItemsShareColumn(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)
	slots := Pack([]Item{
		dayItem("a", 9, 10),
		dayItem("b", 10, 11),
	}, day)

	assert.Len(t, slots, 2)
	assert.Equal(t, 0, slots[0].Column)
	assert.Equal(t, 0, slots[1].Column)
	assert.Equal(t, 1, slots[0].TotalColumns)
}

func TestPack_SortsByStartHour(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)
	slots := Pack([]Item{
		dayItem("late", 15, 16),
		dayItem("early", 8, 9),
		dayItem("mid", 11, 12),
	}, day)

	assert.Equal(t, "early", slots[0].Item.UID)
	assert.Equal(t, "mid", slots[1].Item.UID)
	assert.Equal(t, "late", slots[2].Item.UID)
}

func TestPack_NoOverlapWithinColumn(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)
	slots := Pack([]Item{
		dayItem("a", 9, 12),
		dayItem("b", 9, 10),
		dayItem("c", 10, 13),
		dayItem("d", 11, 11.5),
		dayItem("e", 12, 14),
		dayItem("f", 9.25, 9.75),
	}, day)

	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Column != slots[j].Column {
				continue
			}
			overlaps := slots[i].StartHour < slots[j].EndHour && slots[j].StartHour < slots[i].EndHour
			assert.False(t, overlaps, "slots %s and %s overlap in column %d",
				slots[i].Item.UID, slots[j].Item.UID, slots[i].Column)
		}
	}

	for _, slot := range slots {
		assert.Less(t, slot.Column, slot.TotalColumns)
	}
}

func TestPack_MultiDayItemOccupiesFullColumn(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)
	multiDay := timedItem(
		time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local),
		time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local),
	)
	slots := Pack([]Item{multiDay, dayItem("b", 10, 11)}, day)

	assert.Len(t, slots, 2)
	assert.Equal(t, 0.0, slots[0].StartHour)
	assert.Equal(t, 24.0, slots[0].EndHour)
	assert.Equal(t, 0, slots[0].Column)
	assert.Equal(t, 1, slots[1].Column)
}
