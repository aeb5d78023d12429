package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/partyplanner/partyplanner/pkg/party"
	"github.com/partyplanner/partyplanner/pkg/state"
	log "github.com/sirupsen/logrus"
)

// isoInstant matches the browser's Date.toISOString output.
const isoInstant = "2006-01-02T15:04:05.000Z07:00"

// Planner turns user intents into store calls and state mutations. A failed call is logged and
// leaves the state as it was; nothing is returned to the caller.
type Planner struct {
	client party.Client
	state  *state.State
}

func NewPlanner(client party.Client, s *state.State) *Planner {
	return &Planner{client: client, state: s}
}

// EventForm carries the values of the creation form as submitted.
type EventForm struct {
	Name        string
	Description string
	Location    string
	Date        string
}

func (p *Planner) LoadEvents(ctx context.Context) {
	events, err := p.client.ListEvents(ctx)
	if err != nil {
		log.Errorf("Failed to fetch events: %v", err)
		return
	}
	p.state.SetEvents(ctx, events)
}

func (p *Planner) SelectEvent(ctx context.Context, id int) {
	event, err := p.client.GetEvent(ctx, id)
	if err != nil {
		log.Errorf("Failed to fetch event: %v", err)
		return
	}
	p.state.SetSelected(ctx, event)
}

func (p *Planner) CreateEvent(ctx context.Context, form EventForm) {
	date, err := ToISOInstant(form.Date)
	if err != nil {
		log.Errorf("Failed to create event: %v", err)
		return
	}
	event, err := p.client.CreateEvent(ctx, party.NewEvent{
		Name:        form.Name,
		Description: form.Description,
		Location:    form.Location,
		Date:        date,
	})
	if err != nil {
		log.Errorf("Failed to create event: %v", err)
		return
	}
	p.state.AppendEvent(ctx, event)
}

func (p *Planner) DeleteEvent(ctx context.Context, id int) {
	if err := p.client.DeleteEvent(ctx, id); err != nil {
		log.Errorf("Failed to delete event: %v", err)
		return
	}
	p.state.RemoveEvent(ctx, id)
}

// ToISOInstant converts a date input value (YYYY-MM-DD, read as UTC midnight) or an RFC 3339
// timestamp to a UTC instant with millisecond precision.
func ToISOInstant(value string) (string, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return "", fmt.Errorf("invalid date %q: %w", value, err)
		}
	}
	return t.UTC().Format(isoInstant), nil
}
