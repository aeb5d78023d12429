package party

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendees_UnmarshalJSON(t *testing.T) {
	t.Run("should decode names and records", func(t *testing.T) {
		var event Event
		err := json.Unmarshal([]byte(`{"id":1,"name":"Gala","attendees":["Ann",{"name":"Bob","id":7}]}`), &event)
		require.NoError(t, err)

		require.True(t, event.Attendees.Listed)
		require.Len(t, event.Attendees.Items, 2)
		assert.Equal(t, "Ann", event.Attendees.Items[0].Label())
		assert.Equal(t, "Bob", event.Attendees.Items[1].Label())
	})

	t.Run("should mark missing attendees as not listed", func(t *testing.T) {
		var event Event
		err := json.Unmarshal([]byte(`{"id":1,"name":"Gala"}`), &event)
		require.NoError(t, err)
		assert.False(t, event.Attendees.Listed)
	})

	t.Run("should mark non-array attendees as not listed", func(t *testing.T) {
		for _, raw := range []string{`null`, `"Ann"`, `{"name":"Bob"}`, `42`} {
			var event Event
			err := json.Unmarshal([]byte(`{"id":1,"attendees":`+raw+`}`), &event)
			require.NoError(t, err, raw)
			assert.False(t, event.Attendees.Listed, raw)
		}
	})

	t.Run("should keep an empty list listed", func(t *testing.T) {
		var event Event
		err := json.Unmarshal([]byte(`{"id":1,"attendees":[]}`), &event)
		require.NoError(t, err)
		assert.True(t, event.Attendees.Listed)
		assert.Empty(t, event.Attendees.Items)
	})
}

func TestAttendee_Label(t *testing.T) {
	var attendees []Attendee
	err := json.Unmarshal([]byte(`[{"name":""}, 12, {"guest":"x"}]`), &attendees)
	require.NoError(t, err)

	assert.Equal(t, `{"name":""}`, attendees[0].Label())
	assert.Equal(t, "12", attendees[1].Label())
	assert.Equal(t, `{"guest":"x"}`, attendees[2].Label())
	assert.Equal(t, "Cleo", Named("Cleo").Label())
}

func TestAttendees_MarshalJSON(t *testing.T) {
	event := Event{Id: 3, Name: "Gala", Attendees: ListOf(Named("Bob"))}
	body, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Gala","description":"","location":"","date":"","attendees":[{"name":"Bob"}]}`, string(body))

	body, err = json.Marshal(Event{Id: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"name":"","description":"","location":"","date":"","attendees":null}`, string(body))
}
