package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu     sync.RWMutex
	items  map[string]Event // uid -> event
	nextId int

	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:  make(map[string]Event),
		nextId: 1,
	}
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, event Event) (Event, error) {
	if r.FailWith != nil {
		return Event{}, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.UID == "" {
		event.UID = fmt.Sprintf("event-%d", r.nextId)
	}
	r.items[event.UID] = event
	r.nextId++
	return event, nil
}

func (r *RepositoryStub) GetEvent(ctx context.Context, uid string) (Event, error) {
	if r.FailWith != nil {
		return Event{}, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.items[uid]
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Event
	for _, event := range r.items {
		if event.StartTime.Before(to) && event.EndTime.After(from) {
			result = append(result, event)
		}
	}

	// Sort by start time (simple bubble sort for small slices)
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[i].StartTime.After(result[j].StartTime) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, event Event) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[event.UID]; !ok {
		return ErrEventNotFound
	}
	r.items[event.UID] = event
	return nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, uid string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[uid]; !ok {
		return ErrEventNotFound
	}
	delete(r.items, uid)
	return nil
}
