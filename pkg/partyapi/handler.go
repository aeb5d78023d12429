package partyapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/partyplanner/partyplanner/internal/rest"
	"github.com/partyplanner/partyplanner/pkg/party"
	log "github.com/sirupsen/logrus"
)

// Handler serves the party API under /api/{cohort}/events. All cohorts share one store.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Listing events of cohort %s", mux.Vars(r)["cohort"])
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.ErrCodeInternalError, err.Error())
		return
	}
	rest.WriteData(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventId(w, r)
	if !ok {
		return
	}
	event, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteData(w, http.StatusOK, event)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var newEvent party.NewEvent
	if err := json.NewDecoder(r.Body).Decode(&newEvent); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrCodeBadRequest, "Invalid request body")
		return
	}
	event, err := h.service.CreateEvent(r.Context(), newEvent)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Infof("Created event %d", event.Id)
	rest.WriteData(w, http.StatusCreated, event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventId(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func eventId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		rest.WriteError(w, http.StatusNotFound, rest.ErrCodeNotFound, "Event not found")
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, rest.ErrCodeNotFound, "Event not found")
	case errors.Is(err, ErrNameRequired):
		rest.WriteError(w, http.StatusBadRequest, rest.ErrCodeBadRequest, err.Error())
	default:
		log.Errorf("party api failure: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, rest.ErrCodeInternalError, "Internal server error")
	}
}
