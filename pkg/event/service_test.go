package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modulink/modulink/internal/event_bus"
)

func TestCreateEvent(t *testing.T) {
	repo := NewRepositoryStub()
	service := NewService(repo, event_bus.NewEventBus())

	created, err := service.CreateEvent(context.Background(), Event{
		Name:      "design review",
		Location:  "room 2",
		StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
		EndTime:   time.Date(2024, 1, 3, 15, 30, 0, 0, time.Local),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.Equal(t, "design review", created.Name)
}

func TestCreateEvent_DefaultsEndTime(t *testing.T) {
	repo := NewRepositoryStub()
	service := NewService(repo, event_bus.NewEventBus())
	start := time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local)

	created, err := service.CreateEvent(context.Background(), Event{Name: "standup", StartTime: start})

	assert.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), created.EndTime)
}

func TestCreateEvent_Validation(t *testing.T) {
	testCases := []struct {
		name  string
		event Event
	}{
		{
			name:  "missing name",
			event: Event{StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local)},
		},
		{
			name:  "missing start time",
			event: Event{Name: "standup"},
		},
		{
			name: "end before start",
			event: Event{
				Name:      "standup",
				StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
				EndTime:   time.Date(2024, 1, 3, 13, 0, 0, 0, time.Local),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewService(NewRepositoryStub(), event_bus.NewEventBus())

			_, err := service.CreateEvent(context.Background(), tc.event)

			assert.ErrorIs(t, err, ErrEventInvalid)
		})
	}
}

func TestCreateEvent_PublishesOnBus(t *testing.T) {
	bus := event_bus.NewEventBus()
	service := NewService(NewRepositoryStub(), bus)

	var published []event_bus.CalendarEventChanged
	event_bus.SubscribeTyped[event_bus.CalendarEventChanged](bus, event_bus.EventCreated,
		func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
			published = append(published, e.Data)
			return nil
		})

	created, err := service.CreateEvent(context.Background(), Event{
		Name:      "standup",
		StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
	})

	assert.NoError(t, err)
	assert.Len(t, published, 1)
	assert.Equal(t, created.UID, published[0].UID)
	assert.Equal(t, "standup", published[0].Name)
}

func TestUpdateEvent(t *testing.T) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)

	created, err := service.CreateEvent(context.Background(), Event{
		Name:      "standup",
		StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
	})
	assert.NoError(t, err)

	var updatedTypes []event_bus.EventType
	bus.Subscribe(event_bus.EventUpdated, func(e event_bus.Event) error {
		updatedTypes = append(updatedTypes, e.Type)
		return nil
	})

	created.Name = "standup (moved)"
	updated, err := service.UpdateEvent(context.Background(), created)

	assert.NoError(t, err)
	assert.Equal(t, "standup (moved)", updated.Name)
	assert.Equal(t, []event_bus.EventType{event_bus.EventUpdated}, updatedTypes)

	stored, err := repo.GetEvent(context.Background(), created.UID)
	assert.NoError(t, err)
	assert.Equal(t, "standup (moved)", stored.Name)
}

func TestUpdateEvent_MissingUID(t *testing.T) {
	service := NewService(NewRepositoryStub(), event_bus.NewEventBus())

	_, err := service.UpdateEvent(context.Background(), Event{
		Name:      "standup",
		StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
	})

	assert.ErrorIs(t, err, ErrEventInvalid)
}

func TestDeleteEvent(t *testing.T) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)

	created, err := service.CreateEvent(context.Background(), Event{
		Name:      "standup",
		StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
	})
	assert.NoError(t, err)

	var deleted []event_bus.CalendarEventChanged
	event_bus.SubscribeTyped[event_bus.CalendarEventChanged](bus, event_bus.EventDeleted,
		func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
			deleted = append(deleted, e.Data)
			return nil
		})

	assert.NoError(t, service.DeleteEvent(context.Background(), created.UID))
	assert.Len(t, deleted, 1)
	assert.Equal(t, created.UID, deleted[0].UID)

	_, err = repo.GetEvent(context.Background(), created.UID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	service := NewService(NewRepositoryStub(), event_bus.NewEventBus())

	err := service.DeleteEvent(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetEvents_RangeBoundaries(t *testing.T) {
	repo := NewRepositoryStub()
	service := NewService(repo, event_bus.NewEventBus())

	mustCreate := func(name string, start, end time.Time) {
		_, err := service.CreateEvent(context.Background(), Event{Name: name, StartTime: start, EndTime: end})
		assert.NoError(t, err)
	}
	mustCreate("inside",
		time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
		time.Date(2024, 1, 3, 15, 0, 0, 0, time.Local))
	mustCreate("ends at range start",
		time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local))
	mustCreate("starts at range end",
		time.Date(2024, 1, 9, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 9, 1, 0, 0, 0, time.Local))
	mustCreate("straddles range start",
		time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local),
		time.Date(2024, 1, 2, 1, 0, 0, 0, time.Local))

	events, err := service.GetEvents(context.Background(),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 9, 0, 0, 0, 0, time.Local))

	assert.NoError(t, err)
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"inside", "straddles range start"}, names)
}
