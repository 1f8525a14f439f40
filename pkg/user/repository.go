package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (first_name, last_name, email) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.FirstName, user.LastName, user.Email)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, fmt.Errorf("could not execute query: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read inserted user id: %w", err)
	}
	return int(id), nil
}

func (r *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, first_name, last_name, email FROM users WHERE id = ?`

	var user User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.Id, &user.FirstName, &user.LastName, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, fmt.Errorf("could not query user: %w", err)
	}
	return user, nil
}

func (r *RepoImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	query := `UPDATE users SET first_name = ?, last_name = ?, email = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, user.FirstName, user.LastName, user.Email, user.Id)
	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, fmt.Errorf("could not execute query: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *RepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Errorf("failed to delete user: %v", err)
		return fmt.Errorf("could not execute query: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, first_name, last_name, email FROM users ORDER BY last_name, first_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to query users: %v", err)
		return nil, fmt.Errorf("could not query users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0, 10)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.Id, &user.FirstName, &user.LastName, &user.Email); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
