package user

import (
	"context"
	"sync"
)

type RepoStub struct {
	mu     sync.RWMutex
	users  map[int]User
	nextId int

	FailWith error
}

func NewRepoStub() *RepoStub {
	return &RepoStub{
		users:  make(map[int]User),
		nextId: 1,
	}
}

func (r *RepoStub) CreateUser(ctx context.Context, user User) (int, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Id = r.nextId
	r.users[user.Id] = user
	r.nextId++
	return user.Id, nil
}

func (r *RepoStub) GetUser(ctx context.Context, id int) (User, error) {
	if r.FailWith != nil {
		return User{}, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *RepoStub) UpdateUser(ctx context.Context, user User) (User, error) {
	if r.FailWith != nil {
		return User{}, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Id]; !ok {
		return User{}, ErrUserNotFound
	}
	r.users[user.Id] = user
	return user, nil
}

func (r *RepoStub) DeleteUser(ctx context.Context, id int) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *RepoStub) GetAllUsers(ctx context.Context) ([]User, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	// Sort by id (simple insertion sort for small slices)
	for i := 1; i < len(users); i++ {
		for j := i; j > 0 && users[j-1].Id > users[j].Id; j-- {
			users[j-1], users[j] = users[j], users[j-1]
		}
	}
	return users, nil
}
