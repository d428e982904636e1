package models

import "time"

// DefaultRelationType is used when a relation is added without a type.
const DefaultRelationType = "related"

// NoteRelation links two notes.
type NoteRelation struct {
	ID            int64     `json:"id" db:"id"`
	NoteID        int64     `json:"note_id" db:"note_id"`
	RelatedNoteID int64     `json:"related_note_id" db:"related_note_id"`
	RelationType  string    `json:"relation_type" db:"relation_type"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// RelationInput is the body of POST /api/notes/{id}/relations.
type RelationInput struct {
	RelatedNoteID int64  `json:"related_note_id" validate:"required,gt=0"`
	RelationType  string `json:"relation_type" validate:"omitempty,max=50"`
}
