package party

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrRequestFailed is the only failure kind the client reports. Transport errors, non-2xx statuses
// and malformed envelopes all wrap it.
var ErrRequestFailed = errors.New("party api request failed")

var errMissingData = errors.New("envelope has no data")

type Client interface {
	ListEvents(ctx context.Context) ([]Event, error)                // GET /events
	GetEvent(ctx context.Context, id int) (Event, error)            // GET /events/{id}
	CreateEvent(ctx context.Context, event NewEvent) (Event, error) // POST /events
	DeleteEvent(ctx context.Context, id int) error                  // DELETE /events/{id}
}

type ClientImpl struct {
	eventsUrl  string
	httpClient *http.Client
}

// NewClient returns a client for the events collection at eventsUrl.
// A zero timeout leaves requests unbounded.
func NewClient(eventsUrl string, timeout time.Duration) *ClientImpl {
	return &ClientImpl{
		eventsUrl:  eventsUrl,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope is the {data: ...} wrapper the API puts around every payload.
type envelope[T any] struct {
	Data *T `json:"data"`
}

func (c *ClientImpl) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := send(c, ctx, http.MethodGet, c.eventsUrl, nil, &events); err != nil {
		log.Errorf("Failed to fetch events: %v", err)
		return nil, err
	}
	return events, nil
}

func (c *ClientImpl) GetEvent(ctx context.Context, id int) (Event, error) {
	var event Event
	if err := send(c, ctx, http.MethodGet, c.eventUrl(id), nil, &event); err != nil {
		log.Errorf("Failed to fetch event %d: %v", id, err)
		return Event{}, err
	}
	return event, nil
}

func (c *ClientImpl) CreateEvent(ctx context.Context, newEvent NewEvent) (Event, error) {
	body, err := json.Marshal(newEvent)
	if err != nil {
		return Event{}, fmt.Errorf("%w: encoding request: %w", ErrRequestFailed, err)
	}
	var event Event
	if err := send(c, ctx, http.MethodPost, c.eventsUrl, body, &event); err != nil {
		log.Errorf("Failed to create event: %v", err)
		return Event{}, err
	}
	return event, nil
}

func (c *ClientImpl) DeleteEvent(ctx context.Context, id int) error {
	if err := send[struct{}](c, ctx, http.MethodDelete, c.eventUrl(id), nil, nil); err != nil {
		log.Errorf("Failed to delete event %d: %v", id, err)
		return err
	}
	return nil
}

func (c *ClientImpl) eventUrl(id int) string {
	return c.eventsUrl + "/" + strconv.Itoa(id)
}

// send sends the request and, when out is not nil, decodes the envelope's data into it.
func send[T any](c *ClientImpl, ctx context.Context, method, url string, body []byte, out *T) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: creating request: %w", ErrRequestFailed, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("%s %s", method, url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: executing request: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s returned status %d", ErrRequestFailed, method, url, resp.StatusCode)
	}
	if out == nil {
		return nil
	}

	var response envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrRequestFailed, err)
	}
	if response.Data == nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, errMissingData)
	}
	*out = *response.Data
	return nil
}
