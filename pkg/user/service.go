package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/modulink/modulink/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
	RefreshDirectory(ctx context.Context) error
}

// ServiceImpl serves the user directory. Listing goes through an in-memory
// cache that lives until a mutation invalidates it or a scheduled refresh
// reloads it, so participant pickers do not hit the database on every render.
type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus

	mu     sync.RWMutex
	cached []User
}

func NewService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{repo: repo, bus: bus}
	event_bus.SubscribeTyped[event_bus.UserDirectoryChanged](
		bus,
		event_bus.UserChanged,
		func(e event_bus.EventT[event_bus.UserDirectoryChanged]) error {
			log.Debugf("user directory changed (user %d), dropping cache", e.Data.UserId)
			s.invalidate()
			return nil
		},
	)
	return s
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	user.Id = id
	s.publishChanged(ctx, id)
	return user, nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	s.publishChanged(ctx, user.Id)
	return updated, nil
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, id int) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.publishChanged(ctx, id)
	return nil
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.mu.Lock()
	s.cached = users
	s.mu.Unlock()
	return users, nil
}

// RefreshDirectory reloads the cache from storage. It is called on a schedule
// to pick up changes made outside this process.
func (s *ServiceImpl) RefreshDirectory(ctx context.Context) error {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh user directory: %w", err)
	}

	s.mu.Lock()
	s.cached = users
	s.mu.Unlock()
	log.Debugf("user directory refreshed: %d users", len(users))
	return nil
}

func (s *ServiceImpl) invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *ServiceImpl) publishChanged(ctx context.Context, userId int) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.UserChanged, event_bus.UserDirectoryChanged{UserId: userId}))
	if err != nil {
		log.Errorf("failed to publish user change: %v", err)
	}
}
