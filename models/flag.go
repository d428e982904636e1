package models

import (
	"encoding/json"
	"strings"
)

// Flag is a boolean stored as a 0/1 integer column. Incoming JSON may carry a
// number, a bool or a "true"/"1" string; outgoing JSON is always 0 or 1.
type Flag int

// UnmarshalJSON normalizes any truthy input to 1 and everything else to 0.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case bool:
		*f = FlagOf(v)
	case float64:
		*f = FlagOf(v != 0)
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		*f = FlagOf(s == "true" || s == "1")
	default:
		*f = 0
	}
	return nil
}

// MarshalJSON always writes 0 or 1.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f.normalized()))
}

// Bool reports whether the flag is set.
func (f Flag) Bool() bool { return f != 0 }

// Int64 returns 0 or 1 for binding as a query parameter.
func (f Flag) Int64() int64 { return int64(f.normalized()) }

func (f Flag) normalized() Flag {
	if f != 0 {
		return 1
	}
	return 0
}

// FlagOf converts a bool into a Flag.
func FlagOf(b bool) Flag {
	if b {
		return 1
	}
	return 0
}

// ParseFlag reads a flag from a query-string value. ok is false when the value
// is empty or not one of 1, 0, true, false.
func ParseFlag(raw string) (flag Flag, ok bool) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "1", "true":
		return 1, true
	case "0", "false":
		return 0, true
	}
	return 0, false
}

// NoteFlag names one of the three independent note toggles.
type NoteFlag string

const (
	FlagMarked   NoteFlag = "is_marked"
	FlagFavorite NoteFlag = "is_favorite"
	FlagArchived NoteFlag = "is_archived"
)

// Valid reports whether n is one of the known flag columns.
func (n NoteFlag) Valid() bool {
	switch n {
	case FlagMarked, FlagFavorite, FlagArchived:
		return true
	}
	return false
}

// FlagResult is the response body of a single-flag patch: {id, <flag>: value}.
type FlagResult struct {
	ID    int64
	Name  NoteFlag
	Value Flag
}

// MarshalJSON writes the flag under its own column name.
func (r FlagResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"id":           r.ID,
		string(r.Name): r.Value.normalized(),
	})
}
