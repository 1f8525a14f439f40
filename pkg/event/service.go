package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modulink/modulink/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventInvalid  = errors.New("event data invalid")
)

// defaultDuration is assumed for events created without an explicit end time.
const defaultDuration = time.Hour

type Service interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	DeleteEvent(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) CreateEvent(ctx context.Context, event Event) (Event, error) {
	if err := validate(&event); err != nil {
		return Event{}, err
	}

	stored, err := s.repo.StoreEvent(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publish(ctx, event_bus.EventCreated, stored)
	return stored, nil
}

func (s *ServiceImpl) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	return s.repo.GetEvents(ctx, from, to)
}

func (s *ServiceImpl) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	if event.UID == "" {
		return Event{}, fmt.Errorf("%w: missing uid", ErrEventInvalid)
	}
	if err := validate(&event); err != nil {
		return Event{}, err
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return Event{}, err
	}

	s.publish(ctx, event_bus.EventUpdated, event)
	return event, nil
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, uid string) error {
	event, err := s.repo.GetEvent(ctx, uid)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, uid); err != nil {
		return err
	}

	s.publish(ctx, event_bus.EventDeleted, event)
	return nil
}

// validate fills the defaulting policy in place: a missing end becomes
// start + 1h. A reversed range is rejected rather than silently repaired.
func validate(event *Event) error {
	if event.Name == "" {
		return fmt.Errorf("%w: name is required", ErrEventInvalid)
	}
	if event.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrEventInvalid)
	}
	if event.EndTime.IsZero() {
		event.EndTime = event.StartTime.Add(defaultDuration)
	}
	if event.EndTime.Before(event.StartTime) {
		return fmt.Errorf("%w: end time before start time", ErrEventInvalid)
	}
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, event Event) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.CalendarEventChanged{
		UID:       event.UID,
		Name:      event.Name,
		Location:  event.Location,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
	}))
	if err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
