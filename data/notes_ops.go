package data

import (
	"context"
	"fmt"
	"log"
	"strings"

	"flowsync_server/models"
	"flowsync_server/services"
)

const noteColumns = `id, title, content, draft_content, category, tags, notebook_id, is_favorite, is_archived, is_marked, ai_summary, mind_map, created_at, updated_at, last_saved_at`

// noteSortColumns is the allow-list for ORDER BY; user input never reaches
// the SQL text directly.
var noteSortColumns = map[string]string{
	"updated_at": "updated_at",
	"created_at": "created_at",
	"title":      "title",
	"is_marked":  "is_marked",
}

// NoteSortColumn maps a requested sort key to a column, falling back to
// updated_at for anything unknown.
func NoteSortColumn(sortBy string) string {
	if col, ok := noteSortColumns[strings.ToLower(strings.TrimSpace(sortBy))]; ok {
		return col
	}
	return "updated_at"
}

// SortDirection returns ASC only for an explicit "asc".
func SortDirection(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return "ASC"
	}
	return "DESC"
}

// NoteRepository reads and writes the notes table.
type NoteRepository struct {
	gw        *Gateway
	summaries services.SummaryGenerator
	mindMaps  services.MindMapGenerator
}

// NewNoteRepository builds a repository. Nil generators fall back to the
// deterministic stand-ins.
func NewNoteRepository(gw *Gateway, summaries services.SummaryGenerator, mindMaps services.MindMapGenerator) *NoteRepository {
	if summaries == nil {
		summaries = services.TemplateSummarizer{}
	}
	if mindMaps == nil {
		mindMaps = services.FixedMindMapper{}
	}
	return &NoteRepository{gw: gw, summaries: summaries, mindMaps: mindMaps}
}

// List returns the notes matching every provided filter.
func (r *NoteRepository) List(ctx context.Context, f models.NoteFilter, sortBy, order string) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE 1=1`
	var params []interface{}

	if f.Category != nil {
		query += ` AND category = ?`
		params = append(params, *f.Category)
	}
	if f.IsFavorite != nil {
		query += ` AND is_favorite = ?`
		params = append(params, f.IsFavorite.Int64())
	}
	if f.IsArchived != nil {
		query += ` AND is_archived = ?`
		params = append(params, f.IsArchived.Int64())
	}
	if f.NotebookID != nil {
		query += ` AND notebook_id = ?`
		params = append(params, *f.NotebookID)
	}

	dir := SortDirection(order)
	query += fmt.Sprintf(` ORDER BY %s %s, id %s`, NoteSortColumn(sortBy), dir, dir)

	notes := []models.Note{}
	if err := r.gw.Select(ctx, &notes, query, params...); err != nil {
		return nil, fmt.Errorf("ListNotes: %w", err)
	}
	return notes, nil
}

// Get returns one note or a NotFoundError.
func (r *NoteRepository) Get(ctx context.Context, id int64) (*models.Note, error) {
	var notes []models.Note
	if err := r.gw.Select(ctx, &notes, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("GetNote: id %d: %w", id, err)
	}
	if len(notes) == 0 {
		return nil, newNotFound("note", id)
	}
	return &notes[0], nil
}

// Create inserts a note with defaults for omitted fields and returns the
// stored row.
func (r *NoteRepository) Create(ctx context.Context, in models.NoteInput) (*models.Note, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	mindMap, err := in.MindMap.Param()
	if err != nil {
		return nil, newValidationError("mind_map: %v", err)
	}

	id, err := r.gw.InsertRow(ctx,
		`INSERT INTO notes (title, content, draft_content, category, tags, notebook_id, is_favorite, is_archived, is_marked, ai_summary, mind_map, last_saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		in.Title, in.Content, stringOr(in.DraftContent, ""), stringOr(in.Category, ""), in.Tags.Strings(), in.NotebookID,
		in.IsFavorite.Int64(), in.IsArchived.Int64(), in.IsMarked.Int64(), in.AISummary, mindMap)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, newValidationError("notebook %d does not exist", derefID(in.NotebookID))
		}
		return nil, fmt.Errorf("CreateNote: %w", err)
	}
	log.Printf("CreateNote: created note %d", id)
	return r.Get(ctx, id)
}

// Update replaces the editable fields of a note. draft_content is only
// written when provided.
func (r *NoteRepository) Update(ctx context.Context, id int64, in models.NoteInput) (*models.Note, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	mindMap, err := in.MindMap.Param()
	if err != nil {
		return nil, newValidationError("mind_map: %v", err)
	}

	n, err := r.gw.UpdateRow(ctx,
		`UPDATE notes SET title = ?, content = ?, draft_content = COALESCE(?, draft_content), category = ?, tags = ?, notebook_id = ?,
		 is_favorite = ?, is_archived = ?, is_marked = ?, ai_summary = ?, mind_map = ?, last_saved_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		in.Title, in.Content, in.DraftContent, in.Category, in.Tags.Strings(), in.NotebookID,
		in.IsFavorite.Int64(), in.IsArchived.Int64(), in.IsMarked.Int64(), in.AISummary, mindMap, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, newValidationError("notebook %d does not exist", derefID(in.NotebookID))
		}
		return nil, fmt.Errorf("UpdateNote: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound("note", id)
	}
	log.Printf("UpdateNote: updated note %d", id)
	return r.Get(ctx, id)
}

// PatchDraft stores unsaved edits without touching content.
func (r *NoteRepository) PatchDraft(ctx context.Context, id int64, draft string) (*models.DraftResult, error) {
	n, err := r.gw.UpdateRow(ctx,
		`UPDATE notes SET draft_content = ?, last_saved_at = CURRENT_TIMESTAMP WHERE id = ?`, draft, id)
	if err != nil {
		return nil, fmt.Errorf("PatchDraft: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound("note", id)
	}
	return &models.DraftResult{ID: id, DraftContent: draft}, nil
}

// PatchFlag sets one of the three note toggles.
func (r *NoteRepository) PatchFlag(ctx context.Context, id int64, flag models.NoteFlag, value models.Flag) (*models.FlagResult, error) {
	if !flag.Valid() {
		return nil, newValidationError("unknown flag %q", flag)
	}
	n, err := r.gw.UpdateRow(ctx,
		fmt.Sprintf(`UPDATE notes SET %s = ? WHERE id = ?`, flag), value.Int64(), id)
	if err != nil {
		return nil, fmt.Errorf("PatchFlag: id %d %s: %w", id, flag, err)
	}
	if n == 0 {
		return nil, newNotFound("note", id)
	}
	return &models.FlagResult{ID: id, Name: flag, Value: models.FlagOf(value.Bool())}, nil
}

// GenerateSummary asks the summary generator for a summary and stores it.
func (r *NoteRepository) GenerateSummary(ctx context.Context, id int64) (*models.SummaryResult, error) {
	note, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := r.summaries.Summarize(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("GenerateSummary: id %d: %w", id, err)
	}
	n, err := r.gw.UpdateRow(ctx, `UPDATE notes SET ai_summary = ? WHERE id = ?`, summary, id)
	if err != nil {
		return nil, fmt.Errorf("GenerateSummary: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound("note", id)
	}
	return &models.SummaryResult{ID: id, AISummary: summary}, nil
}

// GenerateMindMap asks the mind map generator for a graph and stores it.
func (r *NoteRepository) GenerateMindMap(ctx context.Context, id int64) (*models.MindMapResult, error) {
	note, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mm, err := r.mindMaps.Generate(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("GenerateMindMap: id %d: %w", id, err)
	}
	param, err := mm.Param()
	if err != nil {
		return nil, fmt.Errorf("GenerateMindMap: id %d: %w", id, err)
	}
	n, err := r.gw.UpdateRow(ctx, `UPDATE notes SET mind_map = ? WHERE id = ?`, param, id)
	if err != nil {
		return nil, fmt.Errorf("GenerateMindMap: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound("note", id)
	}
	return &models.MindMapResult{ID: id, MindMap: mm}, nil
}

// Search runs a plain-text full-text query over title and content. Query
// syntax characters in the input are treated as ordinary text.
func (r *NoteRepository) Search(ctx context.Context, text string, notebookID *int64) ([]models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("search query is required")
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE ` + searchDocument + ` @@ plainto_tsquery('simple', ?)`
	params := []interface{}{text}
	if notebookID != nil {
		query += ` AND notebook_id = ?`
		params = append(params, *notebookID)
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	notes := []models.Note{}
	if err := r.gw.Select(ctx, &notes, query, params...); err != nil {
		return nil, fmt.Errorf("SearchNotes: %w", err)
	}
	return notes, nil
}

// Delete removes a note; its relations and snippets go with it.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.gw.DeleteRow(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteNote: id %d: %w", id, err)
	}
	if n == 0 {
		return newNotFound("note", id)
	}
	log.Printf("DeleteNote: deleted note %d", id)
	return nil
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
