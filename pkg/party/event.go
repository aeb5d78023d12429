package party

import (
	"bytes"
	"encoding/json"
)

// Event is a party record as served by the party API.
type Event struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Attendees   Attendees `json:"attendees"`
}

// NewEvent is the body of a create request. The server assigns the id.
type NewEvent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
}

// Attendee is either a record with a name field or any other JSON value, usually a bare name.
type Attendee struct {
	Name string
	Raw  json.RawMessage
}

// Label is the name field when set, otherwise the attendee value itself.
func (a Attendee) Label() string {
	if a.Name != "" {
		return a.Name
	}
	var s string
	if err := json.Unmarshal(a.Raw, &s); err == nil {
		return s
	}
	return string(a.Raw)
}

func (a *Attendee) UnmarshalJSON(data []byte) error {
	a.Raw = append(json.RawMessage(nil), data...)
	a.Name = ""
	var record struct {
		Name any `json:"name"`
	}
	if err := json.Unmarshal(data, &record); err == nil {
		if name, ok := record.Name.(string); ok {
			a.Name = name
		}
	}
	return nil
}

func (a Attendee) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		return a.Raw, nil
	}
	return json.Marshal(struct {
		Name string `json:"name"`
	}{a.Name})
}

// Attendees keeps track of whether the wire value was a list at all.
// Listed is false for an absent field, null, or any non-array value.
type Attendees struct {
	Listed bool
	Items  []Attendee
}

// ListOf builds a listed Attendees value.
func ListOf(items ...Attendee) Attendees {
	if items == nil {
		items = []Attendee{}
	}
	return Attendees{Listed: true, Items: items}
}

// Named builds an attendee record.
func Named(name string) Attendee {
	raw, _ := json.Marshal(struct {
		Name string `json:"name"`
	}{name})
	return Attendee{Name: name, Raw: raw}
}

func (a *Attendees) UnmarshalJSON(data []byte) error {
	a.Listed = false
	a.Items = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var items []Attendee
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil
	}
	a.Listed = true
	a.Items = items
	if a.Items == nil {
		a.Items = []Attendee{}
	}
	return nil
}

func (a Attendees) MarshalJSON() ([]byte, error) {
	if !a.Listed {
		return []byte("null"), nil
	}
	if a.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.Items)
}
