package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unievents/unievents/internal/model"
	"github.com/unievents/unievents/internal/service"
)

// EventRepository provides data access for events using pgx. Localities are
// stored in the event row, so capacity updates are single-row writes.
type EventRepository struct {
	pool PoolInterface
}

// NewEventRepository creates an EventRepository with the given pool.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// NewEventRepositoryWithPool creates an EventRepository with a custom pool
// interface. Primarily used for testing.
func NewEventRepositoryWithPool(pool PoolInterface) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, organizer_id, name, description, address, city, state, type, starts_at, localities`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Name,
		&event.Description,
		&event.Address,
		&event.City,
		&event.State,
		&event.Type,
		&event.StartsAt,
		&event.Localities,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Insert stores a new event and fills in its generated id. A duplicate name
// maps to service.ErrEventNameExists.
func (r *EventRepository) Insert(ctx context.Context, event *model.Event) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (organizer_id, name, description, address, city, state, type, starts_at, localities)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		event.OrganizerID, event.Name, event.Description, event.Address, event.City,
		event.State, event.Type, event.StartsAt, event.Localities,
	).Scan(&event.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrEventNameExists
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by id. Returns nil, nil when not found.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return event, nil
}

// NameExists reports whether an event already uses the name.
func (r *EventRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check event name: %w", err)
	}
	return exists, nil
}

// List returns events matching the filter. Zero-valued filter fields match
// everything.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}
	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(" AND city = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY starts_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// SellTickets increments ticketsSold for a locality as one conditional write.
// The update only applies while the locality still covers the quantity, so
// two concurrent confirmations cannot oversell. Reports false when the
// precondition fails.
func (r *EventRepository) SellTickets(ctx context.Context, eventID, localityName string, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET localities = (
			SELECT jsonb_agg(
				CASE WHEN l->>'name' = $2
				THEN jsonb_set(l, '{tickets_sold}', to_jsonb((l->>'tickets_sold')::int + $3::int))
				ELSE l END)
			FROM jsonb_array_elements(localities) AS l
		 )
		 WHERE id = $1 AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(localities) AS l
			WHERE l->>'name' = $2
			  AND (l->>'capacity_max')::int - (l->>'tickets_sold')::int >= $3::int
		 )`,
		eventID, localityName, quantity)
	if err != nil {
		return false, fmt.Errorf("sell tickets: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
