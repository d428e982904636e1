package models

import "time"

// DefaultColor is the fallback accent color of notebooks and events.
const DefaultColor = "#3B82F6"

// Notebook groups notes.
type Notebook struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	IsDefault   Flag      `json:"is_default" db:"is_default"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NotebookInput is the body of notebook create and update calls.
type NotebookInput struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	Color       string  `json:"color" validate:"omitempty,max=20"`
	IsDefault   Flag    `json:"is_default"`
}

// ApplyDefaults fills color when it was left blank.
func (in *NotebookInput) ApplyDefaults() {
	if in.Color == "" {
		in.Color = DefaultColor
	}
	if in.Description == nil {
		empty := ""
		in.Description = &empty
	}
}
