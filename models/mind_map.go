package models

import (
	"encoding/json"
	"fmt"
)

// MindMapNode is one positioned node of a mind map.
type MindMapNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// MindMapLink connects two nodes by id.
type MindMapLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// MindMap is the structured graph stored in notes.mind_map.
type MindMap struct {
	Nodes []MindMapNode `json:"nodes"`
	Links []MindMapLink `json:"links"`
}

// Scan implements sql.Scanner for the JSONB column.
func (m *MindMap) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = MindMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("MindMap.Scan: unsupported type %T", src)
	}
	if err := json.Unmarshal(raw, m); err != nil {
		return fmt.Errorf("MindMap.Scan: %w", err)
	}
	return nil
}

// Param encodes the map for a JSONB parameter. A nil map binds NULL.
func (m *MindMap) Param() (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	out := *m
	if out.Nodes == nil {
		out.Nodes = []MindMapNode{}
	}
	if out.Links == nil {
		out.Links = []MindMapLink{}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
