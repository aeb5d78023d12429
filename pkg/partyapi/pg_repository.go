package partyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/partyplanner/partyplanner/pkg/party"
	log "github.com/sirupsen/logrus"
)

// dbtx is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgRepository struct {
	db dbtx
}

func NewPgRepository(db dbtx) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) List(ctx context.Context) ([]party.Event, error) {
	query := `SELECT id, name, description, location, date, attendees FROM party_event ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]party.Event, 0, 10)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("could not read events: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (r *pgRepository) Get(ctx context.Context, id int) (party.Event, error) {
	query := `SELECT id, name, description, location, date, attendees FROM party_event WHERE id = $1`

	e, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return party.Event{}, ErrEventNotFound
		}
		log.Error(err)
		return party.Event{}, err
	}
	return e, nil
}

func (r *pgRepository) Create(ctx context.Context, newEvent party.NewEvent) (party.Event, error) {
	query := `INSERT INTO party_event (name, description, location, date)
				VALUES ($1, $2, $3, $4)
				RETURNING id, name, description, location, date, attendees`

	e, err := scanEvent(r.db.QueryRow(ctx, query, newEvent.Name, newEvent.Description, newEvent.Location, newEvent.Date))
	if err != nil {
		err := fmt.Errorf("could not insert event: %w", err)
		log.Error(err)
		return party.Event{}, err
	}
	return e, nil
}

func (r *pgRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM party_event WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

// AddAttendees appends attendee values to the stored jsonb list.
func (r *pgRepository) AddAttendees(ctx context.Context, id int, attendees ...party.Attendee) error {
	raw, err := json.Marshal(attendees)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE party_event SET attendees = attendees || $2::jsonb WHERE id = $1`, id, string(raw))
	if err != nil {
		err := fmt.Errorf("could not add attendees: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (party.Event, error) {
	var e party.Event
	var attendees []byte
	if err := row.Scan(&e.Id, &e.Name, &e.Description, &e.Location, &e.Date, &attendees); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return party.Event{}, err
		}
		return party.Event{}, fmt.Errorf("could not scan event: %w", err)
	}
	if err := json.Unmarshal(attendees, &e.Attendees); err != nil {
		return party.Event{}, fmt.Errorf("could not decode attendees of event %d: %w", e.Id, err)
	}
	return e, nil
}
