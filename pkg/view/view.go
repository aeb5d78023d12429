// Package view builds the DOM fragments of the party planner from a state snapshot.
// Builders never touch the network; interactions are expressed as links and forms
// handled by the planner routes.
package view

import (
	"fmt"

	"github.com/partyplanner/partyplanner/pkg/party"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	SelectPrompt = "Please select a party to see the details."
	NoAttendees  = "No attendees listed"
)

// EventPath is the link activating a list row.
func EventPath(id int) string {
	return fmt.Sprintf("/events/%d", id)
}

func DeletePath(id int) string {
	return fmt.Sprintf("/events/%d/delete", id)
}

func CalendarPath(id int) string {
	return fmt.Sprintf("/events/%d/calendar.ics", id)
}

const CreatePath = "/events"

// EventList renders one selectable row per event, in the given order.
func EventList(events []party.Event) *html.Node {
	ul := el(atom.Ul, attrs("class", "event-list"))
	for _, e := range events {
		ul.AppendChild(eventListItem(e))
	}
	return ul
}

func eventListItem(e party.Event) *html.Node {
	return el(atom.Li, nil,
		el(atom.A, attrs("href", EventPath(e.Id)+"#selected"), text(e.Name)),
	)
}

// EventDetails renders the selected event, or a prompt when nothing is selected.
func EventDetails(selected *party.Event) *html.Node {
	section := el(atom.Section, attrs("class", "event-details"))
	if selected == nil {
		section.AppendChild(el(atom.P, nil, text(SelectPrompt)))
		return section
	}

	section.AppendChild(el(atom.H3, nil, text(fmt.Sprintf("%s #%d", selected.Name, selected.Id))))
	section.AppendChild(el(atom.P, nil, el(atom.Strong, nil, text("Date:")), text(" "+selected.Date)))
	section.AppendChild(el(atom.P, nil, el(atom.Strong, nil, text("Location:")), text(" "+selected.Location)))
	section.AppendChild(el(atom.P, nil, text(selected.Description)))
	section.AppendChild(el(atom.H4, nil, text("Attendees:")))
	section.AppendChild(attendeeList(selected.Attendees))
	section.AppendChild(el(atom.P, nil,
		el(atom.A, attrs("href", CalendarPath(selected.Id), "class", "calendar-link"), text("Add to calendar")),
	))
	section.AppendChild(el(atom.Form, attrs("method", "post", "action", DeletePath(selected.Id), "class", "delete-form"),
		el(atom.Button, attrs("type", "submit"), text("Delete party")),
	))
	return section
}

func attendeeList(attendees party.Attendees) *html.Node {
	ul := el(atom.Ul, attrs("class", "attendees"))
	if !attendees.Listed {
		ul.AppendChild(el(atom.Li, nil, text(NoAttendees)))
		return ul
	}
	for _, a := range attendees.Items {
		ul.AppendChild(el(atom.Li, nil, text(a.Label())))
	}
	return ul
}

// EventForm renders the creation form. Fields are always empty, so every render resets it.
func EventForm() *html.Node {
	form := el(atom.Form, attrs("method", "post", "action", CreatePath, "class", "event-form"))
	form.AppendChild(field("Name", "name", "text"))
	form.AppendChild(field("Description", "description", "text"))
	form.AppendChild(field("Location", "location", "text"))
	form.AppendChild(field("Date", "date", "date"))
	form.AppendChild(el(atom.Button, attrs("type", "submit"), text("Add party")))
	return form
}

func field(label, name, inputType string) *html.Node {
	return el(atom.Label, nil,
		text(label),
		el(atom.Input, attrs("type", inputType, "name", name, "required", "")),
	)
}
