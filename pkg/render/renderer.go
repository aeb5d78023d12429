package render

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/partyplanner/partyplanner/internal/bus"
	"github.com/partyplanner/partyplanner/pkg/state"
	"github.com/partyplanner/partyplanner/pkg/view"
	log "github.com/sirupsen/logrus"
)

const page = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Party Planner</title>
</head>
<body>
<div id="app"></div>
</body>
</html>`

const skeleton = `
<h1>Party Planner</h1>
<main>
  <section>
    <h2>Upcoming Parties</h2>
    <div id="event-list"></div>
  </section>
  <section id="selected">
    <h2>Party Details</h2>
    <div id="event-details"></div>
  </section>
</main>`

const formSection = `
<section id="new-party">
  <h2>Add a new party</h2>
  <div id="event-form"></div>
</section>`

// Renderer owns the page and rebuilds the whole #app subtree from a state snapshot.
type Renderer struct {
	mu         sync.Mutex
	state      *state.State
	createForm bool
	doc        *goquery.Document
	rendered   bool
	version    uint64
	markup     string
}

// NewRenderer parses the page shell. With createForm the skeleton gets the party creation form.
func NewRenderer(s *state.State, createForm bool) (*Renderer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Renderer{state: s, createForm: createForm, doc: doc}, nil
}

// Subscribe re-renders after every state change published on b.
func (r *Renderer) Subscribe(b *bus.Bus) (unsubscribe func()) {
	return bus.SubscribeTyped(b, bus.StateChanged, func(ctx context.Context, version uint64) error {
		_, err := r.Render()
		return err
	})
}

// Render rebuilds the page from the current snapshot. It reports false when that snapshot was
// already rendered.
func (r *Renderer) Render() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.state.Snapshot()
	if r.rendered && snapshot.Version == r.version {
		log.Tracef("snapshot %d already rendered", snapshot.Version)
		return false, nil
	}

	markup := skeleton
	if r.createForm {
		markup = strings.Replace(markup, "</main>", formSection+"\n</main>", 1)
	}
	app := r.doc.Find("#app")
	if app.Length() == 0 {
		return false, fmt.Errorf("page has no #app element")
	}
	app.SetHtml(markup)

	app.Find("#event-list").ReplaceWithNodes(view.EventList(snapshot.Events))
	app.Find("#event-details").ReplaceWithNodes(view.EventDetails(snapshot.Selected))
	if r.createForm {
		app.Find("#event-form").ReplaceWithNodes(view.EventForm())
	}

	html, err := r.doc.Html()
	if err != nil {
		return false, fmt.Errorf("failed to serialize page: %w", err)
	}
	r.markup = html
	r.version = snapshot.Version
	r.rendered = true
	log.Debugf("rendered snapshot %d", snapshot.Version)
	return true, nil
}

// Markup is the page as of the last render.
func (r *Renderer) Markup() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markup
}

// Version is the state version of the last render.
func (r *Renderer) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}
