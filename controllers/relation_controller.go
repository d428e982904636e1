package controllers

import (
	"context"
	"net/http"

	"flowsync_server/models"
)

type RelationStore interface {
	List(ctx context.Context, noteID int64) ([]models.NoteRelation, error)
	Add(ctx context.Context, noteID int64, in models.RelationInput) (*models.NoteRelation, error)
	Remove(ctx context.Context, noteID, relatedNoteID int64) error
}

// RelationController serves /api/notes/{id}/relations.
type RelationController struct {
	store RelationStore
}

func NewRelationController(store RelationStore) *RelationController {
	return &RelationController{store: store}
}

func (c *RelationController) List(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	relations, err := c.store.List(r.Context(), noteID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, relations)
}

func (c *RelationController) Add(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.RelationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rel, err := c.store.Add(r.Context(), noteID, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rel)
}

func (c *RelationController) Remove(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	relatedID, ok := pathID(w, r, "related_note_id")
	if !ok {
		return
	}
	if err := c.store.Remove(r.Context(), noteID, relatedID); err != nil {
		respondErr(w, r, err)
		return
	}
	respondDeleted(w, "Relation")
}
