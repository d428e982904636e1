package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// Tags is the ordered tag list of a note. Decoding never yields nil and any
// non-array JSON value decodes to an empty list.
type Tags []string

// UnmarshalJSON accepts an array of strings. Scalars inside the array are
// stringified, nulls dropped; anything that is not an array becomes empty.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		*t = Tags{}
		return nil
	}

	out := make(Tags, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, v)
		case float64, bool:
			out = append(out, fmt.Sprint(v))
		}
	}
	*t = out
	return nil
}

// MarshalJSON writes [] for a nil list.
func (t Tags) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Strings())
}

// Strings returns a non-nil copy suitable for a TEXT[] parameter.
func (t Tags) Strings() []string {
	out := make([]string, len(t))
	copy(out, t)
	return out
}

// Scan reads the column either as JSON (array_to_json) or as a postgres
// array literal.
func (t *Tags) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("Tags.Scan: unsupported type %T", src)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*t = Tags{}
		return nil
	}
	if raw[0] == '[' {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("Tags.Scan: %w", err)
		}
		*t = append(Tags{}, list...)
		return nil
	}

	var arr pq.StringArray
	if err := arr.Scan(raw); err != nil {
		return fmt.Errorf("Tags.Scan: %w", err)
	}
	*t = append(Tags{}, arr...)
	return nil
}
