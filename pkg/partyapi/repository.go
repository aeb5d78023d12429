package partyapi

import (
	"context"
	"embed"
	"errors"

	"github.com/partyplanner/partyplanner/pkg/party"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	List(ctx context.Context) ([]party.Event, error)
	Get(ctx context.Context, id int) (party.Event, error)
	Create(ctx context.Context, event party.NewEvent) (party.Event, error)
	Delete(ctx context.Context, id int) error
	AddAttendees(ctx context.Context, id int, attendees ...party.Attendee) error
}
