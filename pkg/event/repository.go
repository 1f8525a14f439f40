package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, uid string) (Event, error)
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, uid string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, event Event) (Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Event{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if event.UID == "" {
		event.UID = uuid.New().String()
	}

	query := `INSERT INTO calendar_event (uid, name, location, start_time, end_time) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		event.UID, event.Name, event.Location, event.StartTime.UnixMilli(), event.EndTime.UnixMilli())
	if err != nil {
		log.Errorf("failed to store event: %v", err)
		return Event{}, fmt.Errorf("could not execute query: %w", err)
	}
	eventId, err := result.LastInsertId()
	if err != nil {
		return Event{}, fmt.Errorf("could not read inserted event id: %w", err)
	}

	if err := insertParticipants(ctx, tx, eventId, event.ParticipantIds); err != nil {
		return Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return Event{}, fmt.Errorf("commit transaction: %w", err)
	}
	return event, nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, uid string) (Event, error) {
	query := `SELECT e.id, e.uid, e.name, e.location, e.start_time, e.end_time, p.user_id
			  FROM calendar_event e
			  LEFT JOIN event_participant p ON p.event_id = e.id
			  WHERE e.uid = ?`

	rows, err := r.db.QueryContext(ctx, query, uid)
	if err != nil {
		log.Errorf("failed to query event: %v", err)
		return Event{}, fmt.Errorf("could not query event: %w", err)
	}
	defer rows.Close()

	events, err := scanEventRows(rows)
	if err != nil {
		return Event{}, err
	}
	if len(events) == 0 {
		return Event{}, ErrEventNotFound
	}
	return events[0], nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	// Strict overlap with [from, to): an event ending exactly at `from`
	// or starting exactly at `to` is not part of the range.
	query := `SELECT e.id, e.uid, e.name, e.location, e.start_time, e.end_time, p.user_id
			  FROM calendar_event e
			  LEFT JOIN event_participant p ON p.event_id = e.id
			  WHERE e.start_time < ? AND e.end_time > ?
			  ORDER BY e.start_time, e.id`

	rows, err := r.db.QueryContext(ctx, query, to.UnixMilli(), from.UnixMilli())
	if err != nil {
		log.Errorf("failed to query events: %v", err)
		return nil, fmt.Errorf("could not query calendar events: %w", err)
	}
	defer rows.Close()

	return scanEventRows(rows)
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, event Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	query := `UPDATE calendar_event SET name = ?, location = ?, start_time = ?, end_time = ? WHERE uid = ?`
	result, err := tx.ExecContext(ctx, query,
		event.Name, event.Location, event.StartTime.UnixMilli(), event.EndTime.UnixMilli(), event.UID)
	if err != nil {
		log.Errorf("failed to update event: %v", err)
		return fmt.Errorf("could not execute query: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	var eventId int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM calendar_event WHERE uid = ?`, event.UID).Scan(&eventId); err != nil {
		return fmt.Errorf("could not resolve event id: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_participant WHERE event_id = ?`, eventId); err != nil {
		return fmt.Errorf("could not clear participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, eventId, event.ParticipantIds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, uid string) error {
	query := `DELETE FROM calendar_event WHERE uid = ?`

	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		log.Errorf("failed to delete event: %v", err)
		return fmt.Errorf("could not execute query: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, eventId int64, participantIds []int) error {
	for _, userId := range participantIds {
		_, err := tx.ExecContext(ctx, `INSERT INTO event_participant (event_id, user_id) VALUES (?, ?)`, eventId, userId)
		if err != nil {
			log.Errorf("failed to store participant %d: %v", userId, err)
			return fmt.Errorf("could not store participant: %w", err)
		}
	}
	return nil
}

// scanEventRows folds joined event/participant rows into events. Rows must be
// ordered by event id so participants of one event arrive together.
func scanEventRows(rows *sql.Rows) ([]Event, error) {
	events := make([]Event, 0, 10)
	var lastId int64 = -1
	for rows.Next() {
		var id int64
		var uid, name, location string
		var startMillis, endMillis int64
		var participantId sql.NullInt64
		if err := rows.Scan(&id, &uid, &name, &location, &startMillis, &endMillis, &participantId); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		if id != lastId {
			events = append(events, Event{
				UID:       uid,
				Name:      name,
				Location:  location,
				StartTime: time.UnixMilli(startMillis),
				EndTime:   time.UnixMilli(endMillis),
			})
			lastId = id
		}
		if participantId.Valid {
			last := &events[len(events)-1]
			last.ParticipantIds = append(last.ParticipantIds, int(participantId.Int64))
		}
	}
	return events, rows.Err()
}
