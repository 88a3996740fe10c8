package store

import (
	"encoding/json"
	"fmt"

	"outlay/internal/core"
)

// State is the full persisted application state: the record collection,
// the category set and the active filters, serialized as one JSON blob
// under a single well-known key.
type State struct {
	Expenses   []core.Record   `json:"expenses"`
	Categories []string        `json:"categories"`
	Filters    core.FilterSpec `json:"filters"`
}

// DefaultState returns the built-in state used before any data exists:
// no expenses, the seed categories and the all-time filter.
func DefaultState() State {
	return State{
		Expenses:   []core.Record{},
		Categories: core.DefaultCategories(),
		Filters:    core.DefaultFilters(),
	}
}

func decodeState(blob []byte) (State, error) {
	var st State
	if err := json.Unmarshal(blob, &st); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	// Missing fields fall back to defaults.
	if st.Expenses == nil {
		st.Expenses = []core.Record{}
	}
	if len(st.Categories) == 0 {
		st.Categories = core.DefaultCategories()
	}
	if st.Filters.Range == "" {
		st.Filters.Range = core.RangeAll
	}
	return st, nil
}

func (s State) encode() ([]byte, error) {
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return blob, nil
}

func (s State) clone() State {
	out := State{
		Expenses:   make([]core.Record, len(s.Expenses)),
		Categories: append([]string(nil), s.Categories...),
		Filters:    s.Filters,
	}
	for i, r := range s.Expenses {
		if r.UpdatedAt != nil {
			updated := *r.UpdatedAt
			r.UpdatedAt = &updated
		}
		out.Expenses[i] = r
	}
	return out
}
