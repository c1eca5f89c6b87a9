package histstore

import (
	"encoding/json"
	"fmt"
)

// EntryAdded is sent when a calculation is recorded. Events delivered while
// replaying the log on startup have Replay set.
type EntryAdded struct {
	ID     ID
	Entry  Entry
	Replay bool `json:"-"`
}

// HistoryCleared is sent when the history is erased.
type HistoryCleared struct{}

// IOError is sent when reading or writing the log fails.
type IOError struct {
	Err error
}

type Event interface {
	evType() string
}

func (*EntryAdded) evType() string     { return "add" }
func (*HistoryCleared) evType() string { return "clear" }
func (*IOError) evType() string        { return "ioerror" }

// eventTypes lists the events stored in the log.
var eventTypes = map[string]func() Event{
	"add":   func() Event { return new(EntryAdded) },
	"clear": func() Event { return new(HistoryCleared) },
}

// record is one line of the log.
type record struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

func writeEvent(enc *json.Encoder, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return enc.Encode(&record{Type: ev.evType(), Event: body})
}

func readEvent(dec *json.Decoder) (Event, error) {
	var rec record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	mk, ok := eventTypes[rec.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", rec.Type)
	}
	ev := mk()
	if len(rec.Event) > 0 {
		if err := json.Unmarshal(rec.Event, ev); err != nil {
			return nil, fmt.Errorf("invalid %q event: %w", rec.Type, err)
		}
	}
	return ev, nil
}
