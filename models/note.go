package models

import "time"

// Note is a row of the notes table.
type Note struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Content      *string    `json:"content" db:"content"`
	DraftContent *string    `json:"draft_content" db:"draft_content"`
	Category     *string    `json:"category" db:"category"`
	Tags         Tags       `json:"tags" db:"tags"`
	NotebookID   *int64     `json:"notebook_id" db:"notebook_id"`
	IsFavorite   Flag       `json:"is_favorite" db:"is_favorite"`
	IsArchived   Flag       `json:"is_archived" db:"is_archived"`
	IsMarked     Flag       `json:"is_marked" db:"is_marked"`
	AISummary    *string    `json:"ai_summary" db:"ai_summary"`
	MindMap      *MindMap   `json:"mind_map" db:"mind_map"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastSavedAt  *time.Time `json:"last_saved_at" db:"last_saved_at"`
}

// NoteInput is the body of POST /api/notes and PUT /api/notes/{id}.
// Absent optional fields keep their zero value; the repository applies the
// create defaults.
type NoteInput struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Content      *string  `json:"content"`
	DraftContent *string  `json:"draft_content"`
	Category     *string  `json:"category" validate:"omitempty,max=50"`
	Tags         Tags     `json:"tags"`
	NotebookID   *int64   `json:"notebook_id"`
	IsFavorite   Flag     `json:"is_favorite"`
	IsArchived   Flag     `json:"is_archived"`
	IsMarked     Flag     `json:"is_marked"`
	AISummary    *string  `json:"ai_summary"`
	MindMap      *MindMap `json:"mind_map"`
}

// NoteFilter holds the optional equality filters of the notes list.
type NoteFilter struct {
	Category   *string
	IsFavorite *Flag
	IsArchived *Flag
	NotebookID *int64
}

// DraftInput is the body of PATCH /api/notes/{id}/draft.
type DraftInput struct {
	DraftContent *string `json:"draft_content"`
}

// DraftResult is returned by a draft patch.
type DraftResult struct {
	ID           int64  `json:"id"`
	DraftContent string `json:"draft_content"`
}

// SummaryResult is returned after generating a summary.
type SummaryResult struct {
	ID        int64  `json:"id"`
	AISummary string `json:"ai_summary"`
}

// MindMapResult is returned after generating a mind map.
type MindMapResult struct {
	ID      int64   `json:"id"`
	MindMap MindMap `json:"mind_map"`
}
