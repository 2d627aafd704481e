package sqlstore

import (
	"context"
	"errors"

	"event-manager/internal/events/core/domain"
	"event-manager/internal/events/core/ports"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

const (
	listEventsSQL = `
SELECT id, event_name, start_date, end_date
FROM events
ORDER BY id;
`
	getEventSQL = `
SELECT id, event_name, start_date, end_date
FROM events
WHERE id = ?;
`
	insertEventSQL = `
INSERT INTO events (event_name, start_date, end_date)
VALUES (?, ?, ?)
RETURNING id;
`
	updateEventSQL = `
UPDATE events
SET event_name = ?, start_date = ?, end_date = ?
WHERE id = ?;
`
	deleteEventSQL = `
DELETE FROM events
WHERE id = ?;
`
)

func (r *EventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listEventsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id domain.EventID) (domain.Event, bool, error) {
	n, ok := id.Int64()
	if !ok {
		return domain.Event{}, false, nil
	}

	rows, err := r.db.QueryContext(ctx, getEventSQL, n)
	if err != nil {
		return domain.Event{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Event{}, false, rows.Err()
	}
	e, err := scanEvent(rows)
	if err != nil {
		return domain.Event{}, false, err
	}
	return e, true, nil
}

func (r *EventRepository) InsertEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, insertEventSQL, e.EventName, e.StartDate, e.EndDate)
	if err != nil {
		return domain.Event{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{}, errors.New("insert returned no id")
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return domain.Event{}, err
	}

	e.ID = domain.IDFromInt(id)
	return e, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, e domain.Event) (bool, error) {
	n, ok := e.ID.Int64()
	if !ok {
		return false, nil
	}
	return r.exec(ctx, updateEventSQL, e.EventName, e.StartDate, e.EndDate, n)
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id domain.EventID) (bool, error) {
	n, ok := id.Int64()
	if !ok {
		return false, nil
	}
	return r.exec(ctx, deleteEventSQL, n)
}

// exec reports whether the statement touched a row.
func (r *EventRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanEvent(rows RowScanner) (domain.Event, error) {
	var (
		id int64
		e  domain.Event
	)
	if err := rows.Scan(&id, &e.EventName, &e.StartDate, &e.EndDate); err != nil {
		return domain.Event{}, err
	}
	e.ID = domain.IDFromInt(id)
	return e, nil
}
