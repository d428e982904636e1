package controllers

import (
	"context"
	"net/http"

	"flowsync_server/models"
)

type CodeSnippetStore interface {
	List(ctx context.Context, noteID int64) ([]models.CodeSnippet, error)
	Get(ctx context.Context, noteID, id int64) (*models.CodeSnippet, error)
	Create(ctx context.Context, noteID int64, in models.CodeSnippetInput) (*models.CodeSnippet, error)
	Update(ctx context.Context, noteID, id int64, in models.CodeSnippetInput) (*models.CodeSnippet, error)
	Delete(ctx context.Context, noteID, id int64) error
	Run(ctx context.Context, noteID, id int64) (*models.RunResult, error)
}

// CodeSnippetController serves /api/notes/{note_id}/code-snippets.
type CodeSnippetController struct {
	store CodeSnippetStore
}

func NewCodeSnippetController(store CodeSnippetStore) *CodeSnippetController {
	return &CodeSnippetController{store: store}
}

// ids reads note_id and, when withID is set, the snippet id.
func (c *CodeSnippetController) ids(w http.ResponseWriter, r *http.Request, withID bool) (noteID, id int64, ok bool) {
	if noteID, ok = pathID(w, r, "note_id"); !ok {
		return
	}
	if withID {
		id, ok = pathID(w, r, "id")
	}
	return
}

func (c *CodeSnippetController) List(w http.ResponseWriter, r *http.Request) {
	noteID, _, ok := c.ids(w, r, false)
	if !ok {
		return
	}
	snippets, err := c.store.List(r.Context(), noteID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, snippets)
}

func (c *CodeSnippetController) Get(w http.ResponseWriter, r *http.Request) {
	noteID, id, ok := c.ids(w, r, true)
	if !ok {
		return
	}
	snippet, err := c.store.Get(r.Context(), noteID, id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, snippet)
}

func (c *CodeSnippetController) Create(w http.ResponseWriter, r *http.Request) {
	noteID, _, ok := c.ids(w, r, false)
	if !ok {
		return
	}
	var in models.CodeSnippetInput
	if !decodeJSON(w, r, &in) {
		return
	}
	snippet, err := c.store.Create(r.Context(), noteID, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, snippet)
}

func (c *CodeSnippetController) Update(w http.ResponseWriter, r *http.Request) {
	noteID, id, ok := c.ids(w, r, true)
	if !ok {
		return
	}
	var in models.CodeSnippetInput
	if !decodeJSON(w, r, &in) {
		return
	}
	snippet, err := c.store.Update(r.Context(), noteID, id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, snippet)
}

func (c *CodeSnippetController) Delete(w http.ResponseWriter, r *http.Request) {
	noteID, id, ok := c.ids(w, r, true)
	if !ok {
		return
	}
	if err := c.store.Delete(r.Context(), noteID, id); err != nil {
		respondErr(w, r, err)
		return
	}
	respondDeleted(w, "Code snippet")
}

// Run handles POST .../code-snippets/{id}/run.
func (c *CodeSnippetController) Run(w http.ResponseWriter, r *http.Request) {
	noteID, id, ok := c.ids(w, r, true)
	if !ok {
		return
	}
	res, err := c.store.Run(r.Context(), noteID, id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
