package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"flowsync_server/models"
)

// NoteStore is the part of data.NoteRepository the handlers use.
type NoteStore interface {
	List(ctx context.Context, f models.NoteFilter, sortBy, order string) ([]models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Create(ctx context.Context, in models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, id int64, in models.NoteInput) (*models.Note, error)
	PatchDraft(ctx context.Context, id int64, draft string) (*models.DraftResult, error)
	PatchFlag(ctx context.Context, id int64, flag models.NoteFlag, value models.Flag) (*models.FlagResult, error)
	GenerateSummary(ctx context.Context, id int64) (*models.SummaryResult, error)
	GenerateMindMap(ctx context.Context, id int64) (*models.MindMapResult, error)
	Search(ctx context.Context, text string, notebookID *int64) ([]models.Note, error)
	Delete(ctx context.Context, id int64) error
}

// NotesController serves /api/notes.
type NotesController struct {
	store NoteStore
}

func NewNotesController(store NoteStore) *NotesController {
	return &NotesController{store: store}
}

// List handles GET /api/notes.
func (c *NotesController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f models.NoteFilter
	if v := q.Get("category"); v != "" {
		f.Category = &v
	}
	if flag, ok := models.ParseFlag(q.Get("is_favorite")); ok {
		f.IsFavorite = &flag
	}
	if flag, ok := models.ParseFlag(q.Get("is_archived")); ok {
		f.IsArchived = &flag
	}
	notebookID, ok := queryID(w, r, "notebook_id")
	if !ok {
		return
	}
	f.NotebookID = notebookID

	notes, err := c.store.List(r.Context(), f, q.Get("sort_by"), q.Get("order"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, notes)
}

// Search handles GET /api/notes/search.
func (c *NotesController) Search(w http.ResponseWriter, r *http.Request) {
	notebookID, ok := queryID(w, r, "notebook_id")
	if !ok {
		return
	}
	notes, err := c.store.Search(r.Context(), r.URL.Query().Get("query"), notebookID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, notes)
}

func (c *NotesController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	note, err := c.store.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (c *NotesController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	note, err := c.store.Create(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (c *NotesController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.NoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	note, err := c.store.Update(r.Context(), id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// PatchDraft handles PATCH /api/notes/{id}/draft.
func (c *NotesController) PatchDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.DraftInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.DraftContent == nil {
		respondError(w, http.StatusBadRequest, "draft_content is required")
		return
	}
	res, err := c.store.PatchDraft(r.Context(), id, *in.DraftContent)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// PatchFlag returns the handler for one of the flag toggles. The body carries
// the value under the flag's own name, e.g. {"is_favorite": 1}.
func (c *NotesController) PatchFlag(flag models.NoteFlag) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var body map[string]json.RawMessage
		if !decodeJSON(w, r, &body) {
			return
		}
		raw, present := body[string(flag)]
		if !present {
			respondError(w, http.StatusBadRequest, string(flag)+" is required")
			return
		}
		var value models.Flag
		if err := json.Unmarshal(raw, &value); err != nil {
			respondError(w, http.StatusBadRequest, "invalid "+string(flag))
			return
		}
		res, err := c.store.PatchFlag(r.Context(), id, flag, value)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// GenerateSummary handles POST /api/notes/{id}/summary.
func (c *NotesController) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := c.store.GenerateSummary(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// GenerateMindMap handles POST /api/notes/{id}/mind-map.
func (c *NotesController) GenerateMindMap(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := c.store.GenerateMindMap(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (c *NotesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.store.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	respondDeleted(w, "Note")
}

// flagRoutes maps the PATCH path suffix to the column it toggles.
var flagRoutes = map[string]models.NoteFlag{
	"mark":     models.FlagMarked,
	"favorite": models.FlagFavorite,
	"archive":  models.FlagArchived,
}
