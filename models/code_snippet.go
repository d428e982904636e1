package models

import "time"

// CodeSnippet is an executable block attached to a note.
type CodeSnippet struct {
	ID          int64        `json:"id" db:"id"`
	NoteID      int64        `json:"note_id" db:"note_id"`
	Language    string       `json:"language" db:"language"`
	CodeContent string       `json:"code_content" db:"code_content"`
	RunParams   JSONDocument `json:"run_params" db:"run_params"`
	Output      *string      `json:"output" db:"output"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// CodeSnippetInput is the body of snippet create and update calls. Output is
// only written by updates; an omitted output clears the stored run result.
type CodeSnippetInput struct {
	Language    string       `json:"language" validate:"required,max=50"`
	CodeContent string       `json:"code_content" validate:"required"`
	RunParams   JSONDocument `json:"run_params"`
	Output      *string      `json:"output"`
}

// RunResult is returned after running a snippet.
type RunResult struct {
	ID     int64  `json:"id"`
	Output string `json:"output"`
}
