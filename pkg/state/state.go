package state

import (
	"context"
	"sync"

	"github.com/partyplanner/partyplanner/internal/bus"
	"github.com/partyplanner/partyplanner/pkg/party"
	log "github.com/sirupsen/logrus"
)

// Snapshot is a copy of the state at one version. It is safe to read without locking.
type Snapshot struct {
	Version  uint64
	Events   []party.Event
	Selected *party.Event
}

// State holds the parties known to the client and the one currently selected. Every mutation bumps
// the version and publishes bus.StateChanged once the lock is released.
type State struct {
	mu       sync.RWMutex
	version  uint64
	events   []party.Event
	selected *party.Event
	bus      *bus.Bus
}

func New(b *bus.Bus) *State {
	return &State{bus: b, events: []party.Event{}}
}

// SetEvents replaces the whole collection.
func (s *State) SetEvents(ctx context.Context, events []party.Event) {
	s.mutate(ctx, func() {
		s.events = append([]party.Event{}, events...)
	})
}

// AppendEvent adds a single record to the end of the collection.
func (s *State) AppendEvent(ctx context.Context, event party.Event) {
	s.mutate(ctx, func() {
		s.events = append(s.events, event)
	})
}

func (s *State) SetSelected(ctx context.Context, event party.Event) {
	s.mutate(ctx, func() {
		s.selected = &event
	})
}

// RemoveEvent drops the event with the given id and clears the selection, whichever event was selected.
func (s *State) RemoveEvent(ctx context.Context, id int) {
	s.mutate(ctx, func() {
		kept := make([]party.Event, 0, len(s.events))
		for _, e := range s.events {
			if e.Id != id {
				kept = append(kept, e)
			}
		}
		s.events = kept
		s.selected = nil
	})
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		Version: s.version,
		Events:  append([]party.Event{}, s.events...),
	}
	if s.selected != nil {
		selected := *s.selected
		snapshot.Selected = &selected
	}
	return snapshot
}

func (s *State) mutate(ctx context.Context, fn func()) {
	s.mu.Lock()
	fn()
	s.version++
	version := s.version
	s.mu.Unlock()

	log.Debugf("state changed to version %d", version)
	if s.bus == nil {
		return
	}
	// Detached from cancellation: a render must follow the mutation even if the request went away.
	if err := s.bus.Publish(bus.NewMessage(context.WithoutCancel(ctx), bus.StateChanged, version)); err != nil {
		log.Errorf("failed to publish state change %d: %v", version, err)
	}
}
