// Package storage persists the categories, stock and profile records on
// either the privileged host store or the local key-value store.
package storage

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/preppal-io/prep-pal/domain/stock"
)

// State classifies what a provider found for a record.
type State int

const (
	// Absent means nothing is stored under the record.
	Absent State = iota
	// Empty means a value is stored but carries no data.
	Empty
	// Present means the record holds data.
	Present
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	case Present:
		return "present"
	}
	return "unknown"
}

// Payload is the result of a provider lookup.
type Payload struct {
	State State
	Data  []byte
}

// Provider is a storage backend. Implementations hold no state between calls.
type Provider interface {
	// Name identifies the backend.
	Name() string
	// Lookup fetches the stored bytes for a record. A missing record is not
	// an error; it is reported as Absent.
	Lookup(ctx context.Context, record stock.Record) (Payload, error)
	// Store replaces the record with data.
	Store(ctx context.Context, record stock.Record, data []byte) error
	// Remove deletes the record. Removing an absent record succeeds.
	Remove(ctx context.Context, record stock.Record) error
}

// Classify turns raw stored bytes into a Payload. Blank input, JSON null
// and an object with no keys are Empty. Anything else is Present, including
// bytes that fail to parse; decoding reports those.
func Classify(data []byte) Payload {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Payload{State: Empty}
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err == nil {
		switch v := decoded.(type) {
		case nil:
			return Payload{State: Empty}
		case map[string]any:
			if len(v) == 0 {
				return Payload{State: Empty}
			}
		}
	}
	return Payload{State: Present, Data: trimmed}
}
