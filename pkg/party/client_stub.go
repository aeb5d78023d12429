package party

import (
	"context"
	"fmt"
	"sync"
)

// ClientStub is an in-memory Client. Setting one of the *Err fields makes the matching call fail.
type ClientStub struct {
	mu     sync.RWMutex
	events []Event
	nextId int

	ListErr   error
	GetErr    error
	CreateErr error
	DeleteErr error

	Created []NewEvent
	Deleted []int
}

func NewClientStub(events ...Event) *ClientStub {
	stub := &ClientStub{nextId: 1}
	for _, e := range events {
		stub.events = append(stub.events, e)
		if e.Id >= stub.nextId {
			stub.nextId = e.Id + 1
		}
	}
	return stub
}

func (c *ClientStub) ListEvents(ctx context.Context) ([]Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ListErr != nil {
		return nil, c.ListErr
	}
	result := make([]Event, len(c.events))
	copy(result, c.events)
	return result, nil
}

func (c *ClientStub) GetEvent(ctx context.Context, id int) (Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.GetErr != nil {
		return Event{}, c.GetErr
	}
	for _, e := range c.events {
		if e.Id == id {
			return e, nil
		}
	}
	return Event{}, fmt.Errorf("%w: event %d not found", ErrRequestFailed, id)
}

func (c *ClientStub) CreateEvent(ctx context.Context, newEvent NewEvent) (Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Created = append(c.Created, newEvent)
	if c.CreateErr != nil {
		return Event{}, c.CreateErr
	}
	event := Event{
		Id:          c.nextId,
		Name:        newEvent.Name,
		Description: newEvent.Description,
		Location:    newEvent.Location,
		Date:        newEvent.Date,
		Attendees:   ListOf(),
	}
	c.nextId++
	c.events = append(c.events, event)
	return event, nil
}

func (c *ClientStub) DeleteEvent(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Deleted = append(c.Deleted, id)
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	kept := c.events[:0]
	for _, e := range c.events {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	c.events = kept
	return nil
}
