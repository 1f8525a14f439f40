package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modulink/modulink/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskInvalid  = errors.New("task data invalid")
)

type Service interface {
	CreateTask(ctx context.Context, task Task) (Task, error)
	GetTasks(ctx context.Context, from, to time.Time) ([]Task, error)
	UpdateTask(ctx context.Context, task Task) (Task, error)
	DeleteTask(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) CreateTask(ctx context.Context, task Task) (Task, error) {
	if err := validate(task); err != nil {
		return Task{}, err
	}

	stored, err := s.repo.StoreTask(ctx, task)
	if err != nil {
		return Task{}, fmt.Errorf("failed to store task: %w", err)
	}

	s.publish(ctx, event_bus.TaskCreated, stored)
	return stored, nil
}

func (s *ServiceImpl) GetTasks(ctx context.Context, from, to time.Time) ([]Task, error) {
	return s.repo.GetTasks(ctx, from, to)
}

func (s *ServiceImpl) UpdateTask(ctx context.Context, task Task) (Task, error) {
	if task.UID == "" {
		return Task{}, fmt.Errorf("%w: missing uid", ErrTaskInvalid)
	}
	if err := validate(task); err != nil {
		return Task{}, err
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return Task{}, err
	}

	s.publish(ctx, event_bus.TaskUpdated, task)
	return task, nil
}

func (s *ServiceImpl) DeleteTask(ctx context.Context, uid string) error {
	task, err := s.repo.GetTask(ctx, uid)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTask(ctx, uid); err != nil {
		return err
	}

	s.publish(ctx, event_bus.TaskDeleted, task)
	return nil
}

func validate(task Task) error {
	if task.Name == "" {
		return fmt.Errorf("%w: name is required", ErrTaskInvalid)
	}
	if task.DueTime.IsZero() {
		return fmt.Errorf("%w: due time is required", ErrTaskInvalid)
	}
	if task.StartTime != nil && task.DueTime.Before(*task.StartTime) {
		return fmt.Errorf("%w: due time before start time", ErrTaskInvalid)
	}
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, task Task) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.CalendarTaskChanged{
		UID:     task.UID,
		Name:    task.Name,
		DueTime: task.DueTime,
	}))
	if err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
