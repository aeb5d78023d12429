package planner

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/partyplanner/partyplanner/internal/rest"
	"github.com/partyplanner/partyplanner/internal/utils"
	"github.com/partyplanner/partyplanner/pkg/party"
	log "github.com/sirupsen/logrus"
)

// Page is the rendered document served at the root.
type Page interface {
	Markup() string
}

// Handler maps browser interactions to planner operations. Every action answers with a redirect to
// the page, which by then reflects whatever the action changed.
type Handler struct {
	planner *Planner
	client  party.Client
	page    Page
	clock   utils.Clock
}

func NewHandler(planner *Planner, client party.Client, page Page, clock utils.Clock) *Handler {
	return &Handler{planner: planner, client: client, page: page, clock: clock}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.page.Markup())); err != nil {
		log.Errorf("failed to write page: %v", err)
	}
}

func (h *Handler) SelectEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventId(w, r)
	if !ok {
		return
	}
	log.Tracef("Selecting event %d", id)
	h.planner.SelectEvent(r.Context(), id)
	http.Redirect(w, r, "/#selected", http.StatusSeeOther)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	form := EventForm{
		Name:        strings.TrimSpace(r.PostForm.Get("name")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
		Location:    strings.TrimSpace(r.PostForm.Get("location")),
		Date:        strings.TrimSpace(r.PostForm.Get("date")),
	}
	if missing := missingFields(form); len(missing) > 0 {
		http.Error(w, "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
		return
	}
	log.Debugf("Creating event %q", form.Name)
	h.planner.CreateEvent(r.Context(), form)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventId(w, r)
	if !ok {
		return
	}
	log.Debugf("Deleting event %d", id)
	h.planner.DeleteEvent(r.Context(), id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ExportCalendar serves one party as an .ics download without touching the state.
func (h *Handler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := eventId(w, r)
	if !ok {
		return
	}
	event, err := h.client.GetEvent(r.Context(), id)
	if err != nil {
		rest.WriteError(w, http.StatusBadGateway, rest.ErrCodeBadGateway, "Could not fetch the party")
		return
	}
	ics, err := party.ToICS(event, h.clock.Now())
	if err != nil {
		log.Errorf("Failed to export event %d: %v", id, err)
		rest.WriteError(w, http.StatusInternalServerError, rest.ErrCodeInternalError, "Could not export the party")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="party-%d.ics"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(ics); err != nil {
		log.Errorf("failed to write calendar: %v", err)
	}
}

func eventId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func missingFields(form EventForm) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", form.Name},
		{"description", form.Description},
		{"location", form.Location},
		{"date", form.Date},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
