package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CustomEventTitle names an event picked by a free-form date.
const CustomEventTitle = "Custom Date"

// Event is an externally curated market event.
type Event struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// EventList is the decoded /events body, which is either `{events:[...]}`
// or a bare array.
type EventList struct {
	Events []Event
	// Wrapped records whether the body used the `{events:[...]}` form.
	Wrapped bool
}

// UnmarshalJSON accepts both shapes and null.
func (l *EventList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*l = EventList{}
		return nil
	case b[0] == '[':
		var events []Event
		if err := json.Unmarshal(b, &events); err != nil {
			return fmt.Errorf("decode event list: %w", err)
		}
		*l = EventList{Events: events}
		return nil
	case b[0] == '{':
		var wrapped struct {
			Events []Event `json:"events"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return fmt.Errorf("decode event envelope: %w", err)
		}
		*l = EventList{Events: wrapped.Events, Wrapped: true}
		return nil
	default:
		return fmt.Errorf("decode events: unexpected JSON %q", truncate(b, 32))
	}
}

// Find returns the event at date, if listed.
func (l EventList) Find(date string) (Event, bool) {
	for _, e := range l.Events {
		if e.Date == date {
			return e, true
		}
	}
	return Event{}, false
}

// EventImpact is one row of /events/impact: average price in the 30 days
// before and after an event.
type EventImpact struct {
	Date               string   `json:"date"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Category           string   `json:"category,omitempty"`
	BeforeAvg          *float64 `json:"before_avg"`
	AfterAvg           *float64 `json:"after_avg"`
	PriceChangePercent *float64 `json:"price_change_percent"`
}

// EventImpacts is the /events/impact envelope.
type EventImpacts struct {
	Impacts []EventImpact `json:"impacts"`
	Count   int           `json:"count"`
}
