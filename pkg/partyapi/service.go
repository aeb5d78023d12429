package partyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/partyplanner/partyplanner/pkg/party"
	log "github.com/sirupsen/logrus"
)

var ErrNameRequired = errors.New("name is required")

type Service interface {
	ListEvents(ctx context.Context) ([]party.Event, error)
	GetEvent(ctx context.Context, id int) (party.Event, error)
	CreateEvent(ctx context.Context, event party.NewEvent) (party.Event, error)
	DeleteEvent(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListEvents(ctx context.Context) ([]party.Event, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) GetEvent(ctx context.Context, id int) (party.Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) CreateEvent(ctx context.Context, event party.NewEvent) (party.Event, error) {
	if strings.TrimSpace(event.Name) == "" {
		return party.Event{}, ErrNameRequired
	}
	return s.repo.Create(ctx, event)
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

type seedEvent struct {
	event     party.NewEvent
	attendees []party.Attendee
}

// plainAttendee is an attendee stored as a bare JSON string rather than a record.
func plainAttendee(name string) party.Attendee {
	raw, _ := json.Marshal(name)
	return party.Attendee{Raw: raw}
}

var seedEvents = []seedEvent{
	{
		event: party.NewEvent{
			Name:        "Winter Solstice Bash",
			Description: "Longest night of the year, warm drinks and a bonfire.",
			Location:    "Riverside Park",
			Date:        "2025-12-21T00:00:00.000Z",
		},
		attendees: []party.Attendee{party.Named("Ada"), plainAttendee("Grace"), party.Named("Linus")},
	},
	{
		event: party.NewEvent{
			Name:        "New Year's Eve Rooftop",
			Description: "Countdown with a view.",
			Location:    "Harbor Tower",
			Date:        "2025-12-31T00:00:00.000Z",
		},
	},
	{
		event: party.NewEvent{
			Name:        "Board Game Night",
			Description: "Bring your favourite game.",
			Location:    "Community Hall",
			Date:        "2026-01-09T00:00:00.000Z",
		},
		attendees: []party.Attendee{plainAttendee("Ken"), plainAttendee("Barbara")},
	},
}

// Seed stores a small set of demo parties when the repository is empty.
func (s *ServiceImpl) Seed(ctx context.Context) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("could not check existing events: %w", err)
	}
	if len(existing) > 0 {
		log.Debugf("Skipping seed, %d events already stored", len(existing))
		return nil
	}

	for _, seed := range seedEvents {
		created, err := s.repo.Create(ctx, seed.event)
		if err != nil {
			return fmt.Errorf("could not seed event %q: %w", seed.event.Name, err)
		}
		if len(seed.attendees) == 0 {
			continue
		}
		if err := s.repo.AddAttendees(ctx, created.Id, seed.attendees...); err != nil {
			return fmt.Errorf("could not seed attendees of event %d: %w", created.Id, err)
		}
	}
	log.Infof("Seeded %d events", len(seedEvents))
	return nil
}
