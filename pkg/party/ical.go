package party

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const productId = "-//Party Planner//partyplanner//EN"

// calendarNamespace scopes the UIDs of exported parties so that re-exports of the same party
// update the existing calendar entry instead of adding a new one.
var calendarNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://partyplanner/events"))

// CalendarUID is the stable iCalendar UID of a party.
func CalendarUID(id int) string {
	return uuid.NewSHA1(calendarNamespace, []byte(strconv.Itoa(id))).String()
}

// ToICS encodes the event as an iCalendar document with a single VEVENT.
func ToICS(event Event, now time.Time) ([]byte, error) {
	start, err := time.Parse(time.RFC3339, event.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid event date %q: %w", event.Date, err)
	}

	vevent := ical.NewComponent(ical.CompEvent)
	vevent.Props.SetText(ical.PropUID, CalendarUID(event.Id))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	vevent.Props.SetText(ical.PropSummary, event.Name)
	if event.Description != "" {
		vevent.Props.SetText(ical.PropDescription, event.Description)
	}
	if event.Location != "" {
		vevent.Props.SetText(ical.PropLocation, event.Location)
	}
	for _, attendee := range event.Attendees.Items {
		p := ical.NewProp(ical.PropAttendee)
		p.Params.Set(ical.ParamCommonName, attendee.Label())
		// no e-mail addresses are known for party guests
		p.Value = "invalid:nomail"
		vevent.Props.Add(p)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productId)
	cal.Children = append(cal.Children, vevent)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode event to iCal format: %w", err)
	}
	return buf.Bytes(), nil
}
