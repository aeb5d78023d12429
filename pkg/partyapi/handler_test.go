package partyapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/partyplanner/partyplanner/pkg/party"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cohort = "2506-FTB-CT-WEB-PT"

func newRouter(repo Repository) *mux.Router {
	handler := NewHandler(NewService(repo))
	r := mux.NewRouter()
	r.HandleFunc("/api/{cohort}/events", handler.ListEvents).Methods("GET")
	r.HandleFunc("/api/{cohort}/events", handler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/{cohort}/events/{eventId}", handler.GetEvent).Methods("GET")
	r.HandleFunc("/api/{cohort}/events/{eventId}", handler.DeleteEvent).Methods("DELETE")
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func serve(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func TestHandler(t *testing.T) {
	base := "/api/" + cohort + "/events"

	t.Run("should list events inside a data envelope", func(t *testing.T) {
		r := newRouter(NewMemoryRepository(party.Event{Id: 1, Name: "A", Attendees: party.ListOf()}))

		rr, env := serve(t, r, http.MethodGet, base, "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Nil(t, env.Error)
		var events []party.Event
		require.NoError(t, json.Unmarshal(env.Data, &events))
		require.Len(t, events, 1)
		assert.Equal(t, "A", events[0].Name)
	})

	t.Run("should return not found for unknown and malformed ids", func(t *testing.T) {
		r := newRouter(NewMemoryRepository())

		for _, path := range []string{base + "/42", base + "/abc"} {
			rr, env := serve(t, r, http.MethodGet, path, "")
			assert.Equal(t, http.StatusNotFound, rr.Code, path)
			require.NotNil(t, env.Error, path)
			assert.Equal(t, "not_found", env.Error.Code)
			assert.Equal(t, "null", string(env.Data))
		}

		rr, _ := serve(t, r, http.MethodDelete, base+"/42", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("should create with a server assigned id", func(t *testing.T) {
		r := newRouter(NewMemoryRepository())

		rr, env := serve(t, r, http.MethodPost, base,
			`{"name":"Gala","description":"d","location":"l","date":"2025-12-01T00:00:00.000Z"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var created party.Event
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.Equal(t, 1, created.Id)
		assert.Equal(t, "Gala", created.Name)
		assert.True(t, created.Attendees.Listed)
		assert.Empty(t, created.Attendees.Items)
	})

	t.Run("should reject invalid bodies", func(t *testing.T) {
		r := newRouter(NewMemoryRepository())

		rr, env := serve(t, r, http.MethodPost, base, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "bad_request", env.Error.Code)

		rr, env = serve(t, r, http.MethodPost, base, `{"description":"no name"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, ErrNameRequired.Error(), env.Error.Message)
	})

	t.Run("should delete with no content", func(t *testing.T) {
		repo := NewMemoryRepository(party.Event{Id: 3, Name: "C"})
		r := newRouter(repo)

		rr, _ := serve(t, r, http.MethodDelete, base+"/3", "")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		_, err := repo.Get(context.Background(), 3)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestHandler_RoundTripWithClient(t *testing.T) {
	server := httptest.NewServer(newRouter(NewMemoryRepository()))
	defer server.Close()
	client := party.NewClient(server.URL+"/api/"+cohort+"/events", 0)
	ctx := context.Background()

	created, err := client.CreateEvent(ctx, party.NewEvent{Name: "Gala", Date: "2025-12-01T00:00:00.000Z"})
	require.NoError(t, err)

	events, err := client.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, created, events[0])

	fetched, err := client.GetEvent(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	require.NoError(t, client.DeleteEvent(ctx, created.Id))

	_, err = client.GetEvent(ctx, created.Id)
	assert.ErrorIs(t, err, party.ErrRequestFailed)
	err = client.DeleteEvent(ctx, created.Id)
	assert.ErrorIs(t, err, party.ErrRequestFailed)
}
