package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/partyplanner/partyplanner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startApplication serves the application with the local party API and points its client at itself.
func startApplication(t *testing.T, createForm bool) *Application {
	t.Helper()
	var app *Application
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := config.Application{
		Server:   config.Server{Addr: ":0"},
		Api:      config.Api{BaseUrl: server.URL + "/api", Cohort: config.DefaultCohort},
		Frontend: config.Frontend{CreateForm: createForm},
		MockApi:  config.MockApi{Enabled: true, Storage: config.StorageMemory, Seed: true},
	}
	var err error
	app, err = newApplication(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(app.deps.Close)
	return app
}

func page(t *testing.T, app *Application) *goquery.Document {
	t.Helper()
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	return doc
}

func TestApplication(t *testing.T) {
	t.Run("should render the seeded parties after the initial load", func(t *testing.T) {
		app := startApplication(t, true)

		assert.Equal(t, 0, page(t, app).Find("ul.event-list li").Length())

		app.deps.Planner.LoadEvents(context.Background())

		doc := page(t, app)
		assert.Equal(t, 3, doc.Find("ul.event-list li").Length())
		assert.Equal(t, "Winter Solstice Bash", doc.Find("ul.event-list li a").First().Text())
		assert.Equal(t, 1, doc.Find("form.event-form").Length())
	})

	t.Run("should select, create and delete through the page routes", func(t *testing.T) {
		app := startApplication(t, true)
		app.deps.Planner.LoadEvents(context.Background())

		rr := httptest.NewRecorder()
		app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/1", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Contains(t, page(t, app).Find("section.event-details h3").Text(), "Winter Solstice Bash")

		form := url.Values{
			"name":        {"Gala"},
			"description": {"Black tie"},
			"location":    {"Hall"},
			"date":        {"2025-12-01"},
		}
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr = httptest.NewRecorder()
		app.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusSeeOther, rr.Code)

		events := app.deps.State.Snapshot().Events
		require.Len(t, events, 4)
		assert.Equal(t, "2025-12-01T00:00:00.000Z", events[3].Date)

		rr = httptest.NewRecorder()
		app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/events/1/delete", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)

		snapshot := app.deps.State.Snapshot()
		assert.Len(t, snapshot.Events, 3)
		assert.Nil(t, snapshot.Selected)
	})

	t.Run("should not serve the creation route when the form is disabled", func(t *testing.T) {
		app := startApplication(t, false)

		rr := httptest.NewRecorder()
		app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/events", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, 0, page(t, app).Find("form.event-form").Length())
	})

	t.Run("should export a party as a calendar file", func(t *testing.T) {
		app := startApplication(t, true)

		rr := httptest.NewRecorder()
		app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/1/calendar.ics", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "SUMMARY:Winter Solstice Bash")
	})
}

func TestRequestLogging(t *testing.T) {
	handler := requestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("should generate a request id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Len(t, rr.Header().Get(RequestIdHeader), 36)
	})

	t.Run("should keep an incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIdHeader, "abc-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(RequestIdHeader))
	})
}
