package task

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu     sync.RWMutex
	items  map[string]Task // uid -> task
	nextId int

	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:  make(map[string]Task),
		nextId: 1,
	}
}

func (r *RepositoryStub) StoreTask(ctx context.Context, task Task) (Task, error) {
	if r.FailWith != nil {
		return Task{}, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.UID == "" {
		task.UID = fmt.Sprintf("task-%d", r.nextId)
	}
	r.items[task.UID] = task
	r.nextId++
	return task, nil
}

func (r *RepositoryStub) GetTask(ctx context.Context, uid string) (Task, error) {
	if r.FailWith != nil {
		return Task{}, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.items[uid]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (r *RepositoryStub) GetTasks(ctx context.Context, from, to time.Time) ([]Task, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Task
	for _, task := range r.items {
		if task.IsDueOnly() {
			if !task.DueTime.Before(from) && task.DueTime.Before(to) {
				result = append(result, task)
			}
		} else if task.StartTime.Before(to) && task.DueTime.After(from) {
			result = append(result, task)
		}
	}

	// Sort by due time (simple bubble sort for small slices)
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[i].DueTime.After(result[j].DueTime) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (r *RepositoryStub) UpdateTask(ctx context.Context, task Task) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[task.UID]; !ok {
		return ErrTaskNotFound
	}
	r.items[task.UID] = task
	return nil
}

func (r *RepositoryStub) DeleteTask(ctx context.Context, uid string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[uid]; !ok {
		return ErrTaskNotFound
	}
	delete(r.items, uid)
	return nil
}
