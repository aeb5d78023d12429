package partyapi

import (
	"context"
	"sort"
	"sync"

	"github.com/partyplanner/partyplanner/pkg/party"
)

type memoryRepository struct {
	mu     sync.RWMutex
	events map[int]party.Event
	nextId int
}

// NewMemoryRepository keeps parties in process memory. Ids are assigned in increasing order.
func NewMemoryRepository(seed ...party.Event) Repository {
	r := &memoryRepository{events: map[int]party.Event{}, nextId: 1}
	for _, e := range seed {
		if e.Id == 0 {
			e.Id = r.nextId
		}
		r.events[e.Id] = e
		if e.Id >= r.nextId {
			r.nextId = e.Id + 1
		}
	}
	return r
}

func (r *memoryRepository) List(ctx context.Context) ([]party.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]party.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Id < events[j].Id })
	return events, nil
}

func (r *memoryRepository) Get(ctx context.Context, id int) (party.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return party.Event{}, ErrEventNotFound
	}
	return e, nil
}

func (r *memoryRepository) Create(ctx context.Context, newEvent party.NewEvent) (party.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := party.Event{
		Id:          r.nextId,
		Name:        newEvent.Name,
		Description: newEvent.Description,
		Location:    newEvent.Location,
		Date:        newEvent.Date,
		Attendees:   party.ListOf(),
	}
	r.events[e.Id] = e
	r.nextId++
	return e, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *memoryRepository) AddAttendees(ctx context.Context, id int, attendees ...party.Attendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}
	items := make([]party.Attendee, 0, len(e.Attendees.Items)+len(attendees))
	items = append(items, e.Attendees.Items...)
	items = append(items, attendees...)
	e.Attendees = party.ListOf(items...)
	r.events[id] = e
	return nil
}
