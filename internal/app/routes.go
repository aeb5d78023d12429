package app

import (
	"github.com/gorilla/mux"
	"github.com/partyplanner/partyplanner/internal/config"
)

// RegisterRoutes registers the page, its actions and, when enabled, the local party API.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Party API emulation
	if deps.PartyApiHandler != nil {
		r.HandleFunc("/api/{cohort}/events", deps.PartyApiHandler.ListEvents).Methods("GET")
		r.HandleFunc("/api/{cohort}/events", deps.PartyApiHandler.CreateEvent).Methods("POST")
		r.HandleFunc("/api/{cohort}/events/{eventId}", deps.PartyApiHandler.GetEvent).Methods("GET")
		r.HandleFunc("/api/{cohort}/events/{eventId}", deps.PartyApiHandler.DeleteEvent).Methods("DELETE")
	}

	// Planner page
	r.HandleFunc("/", deps.PlannerHandler.Home).Methods("GET")
	r.HandleFunc("/events/{eventId:[0-9]+}", deps.PlannerHandler.SelectEvent).Methods("GET")
	r.HandleFunc("/events/{eventId:[0-9]+}/delete", deps.PlannerHandler.DeleteEvent).Methods("POST")
	r.HandleFunc("/events/{eventId:[0-9]+}/calendar.ics", deps.PlannerHandler.ExportCalendar).Methods("GET")
	if cfg.Frontend.CreateForm {
		r.HandleFunc("/events", deps.PlannerHandler.CreateEvent).Methods("POST")
	}
}
