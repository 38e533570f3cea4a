package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an entity identity. The backend is inconsistent about whether
// ids cross the wire as JSON numbers or strings, so decoding accepts
// both and the client always holds the string form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// trimDate reduces an ISO timestamp to its YYYY-MM-DD prefix. The
// backend sometimes returns full timestamps where the model wants a
// calendar day.
func trimDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
