// Package stories holds the search result model and the reducer that
// drives its fetch lifecycle.
package stories

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Story is a single search hit. Identity is ObjectID.
type Story struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
	ObjectID    string `json:"objectID"`
}

// UnmarshalJSON accepts objectID as a JSON string or a number. Algolia
// sends strings; mocked responses use numbers.
func (s *Story) UnmarshalJSON(b []byte) error {
	type plain Story
	aux := struct {
		*plain
		ObjectID json.RawMessage `json:"objectID"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	id, err := decodeObjectID(aux.ObjectID)
	if err != nil {
		return err
	}
	s.ObjectID = id
	return nil
}

// decodeObjectID turns a raw objectID into its string form. Missing or null is "".
func decodeObjectID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", fmt.Errorf("objectID: %w", err)
		}
		return id, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("objectID must be a string or number: %w", err)
	}
	return n.String(), nil
}

// State is the stories container mutated only through Reduce.
type State struct {
	Data      []Story
	Page      int
	IsLoading bool
	IsError   bool
}

// Initial returns the state a session starts with.
func Initial() State {
	return State{}
}
