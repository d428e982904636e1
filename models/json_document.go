package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONDocument keeps a JSONB column as raw JSON.
type JSONDocument []byte

// Scan implements sql.Scanner.
func (d *JSONDocument) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append(JSONDocument(nil), v...)
	case string:
		*d = JSONDocument(v)
	default:
		return fmt.Errorf("JSONDocument.Scan: unsupported type %T", src)
	}
	return nil
}

// MarshalJSON writes the document verbatim, or null when empty.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of the raw value. A JSON null clears it.
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = nil
		return nil
	}
	if !json.Valid(data) {
		return fmt.Errorf("JSONDocument: invalid json")
	}
	*d = append(JSONDocument(nil), data...)
	return nil
}

// Param returns the value to bind for a JSONB column: nil or a JSON string.
func (d JSONDocument) Param() interface{} {
	if len(d) == 0 {
		return nil
	}
	return string(d)
}
