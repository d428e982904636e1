package controllers

import (
	"context"
	"net/http"

	"flowsync_server/models"
)

type NotebookStore interface {
	List(ctx context.Context) ([]models.Notebook, error)
	Get(ctx context.Context, id int64) (*models.Notebook, error)
	Create(ctx context.Context, in models.NotebookInput) (*models.Notebook, error)
	Update(ctx context.Context, id int64, in models.NotebookInput) (*models.Notebook, error)
	Delete(ctx context.Context, id int64) error
}

// NotebookController serves /api/notebooks.
type NotebookController struct {
	store NotebookStore
}

func NewNotebookController(store NotebookStore) *NotebookController {
	return &NotebookController{store: store}
}

func (c *NotebookController) List(w http.ResponseWriter, r *http.Request) {
	notebooks, err := c.store.List(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, notebooks)
}

func (c *NotebookController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	nb, err := c.store.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nb)
}

func (c *NotebookController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NotebookInput
	if !decodeJSON(w, r, &in) {
		return
	}
	nb, err := c.store.Create(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, nb)
}

func (c *NotebookController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.NotebookInput
	if !decodeJSON(w, r, &in) {
		return
	}
	nb, err := c.store.Update(r.Context(), id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nb)
}

func (c *NotebookController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.store.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	respondDeleted(w, "Notebook")
}
