package controllers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"flowsync_server/data"
	"flowsync_server/models"
	"flowsync_server/services"
)

// fakeNotes is an in-memory NoteStore with the repository's error types.
type fakeNotes struct {
	mu     sync.Mutex
	nextID int64
	notes  map[int64]*models.Note
	fail   error
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{notes: make(map[int64]*models.Note)}
}

func (f *fakeNotes) List(_ context.Context, filter models.NoteFilter, _, _ string) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	var out []models.Note
	for _, n := range f.notes {
		if filter.IsFavorite != nil && n.IsFavorite != *filter.IsFavorite {
			continue
		}
		if filter.Category != nil && (n.Category == nil || *n.Category != *filter.Category) {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeNotes) Get(_ context.Context, id int64) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok {
		return nil, &data.NotFoundError{Resource: "note", ID: id}
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotes) Create(_ context.Context, in models.NoteInput) (*models.Note, error) {
	if err := models.Validate(&in); err != nil {
		return nil, &data.ValidationError{Message: err.Error()}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now()
	n := &models.Note{
		ID: f.nextID, Title: in.Title, Content: in.Content, Tags: append(models.Tags{}, in.Tags...),
		IsFavorite: in.IsFavorite, IsArchived: in.IsArchived, IsMarked: in.IsMarked,
		Category: in.Category, NotebookID: in.NotebookID, CreatedAt: now, UpdatedAt: now,
	}
	f.notes[n.ID] = n
	cp := *n
	return &cp, nil
}

func (f *fakeNotes) Update(ctx context.Context, id int64, in models.NoteInput) (*models.Note, error) {
	if err := models.Validate(&in); err != nil {
		return nil, &data.ValidationError{Message: err.Error()}
	}
	f.mu.Lock()
	n, ok := f.notes[id]
	if ok {
		n.Title, n.Content = in.Title, in.Content
	}
	f.mu.Unlock()
	if !ok {
		return nil, &data.NotFoundError{Resource: "note", ID: id}
	}
	return f.Get(ctx, id)
}

func (f *fakeNotes) PatchDraft(_ context.Context, id int64, draft string) (*models.DraftResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok {
		return nil, &data.NotFoundError{Resource: "note", ID: id}
	}
	n.DraftContent = &draft
	return &models.DraftResult{ID: id, DraftContent: draft}, nil
}

func (f *fakeNotes) PatchFlag(_ context.Context, id int64, flag models.NoteFlag, value models.Flag) (*models.FlagResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok {
		return nil, &data.NotFoundError{Resource: "note", ID: id}
	}
	v := models.FlagOf(value.Bool())
	switch flag {
	case models.FlagFavorite:
		n.IsFavorite = v
	case models.FlagArchived:
		n.IsArchived = v
	case models.FlagMarked:
		n.IsMarked = v
	}
	return &models.FlagResult{ID: id, Name: flag, Value: v}, nil
}

func (f *fakeNotes) GenerateSummary(ctx context.Context, id int64) (*models.SummaryResult, error) {
	n, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s, _ := services.TemplateSummarizer{}.Summarize(ctx, n)
	return &models.SummaryResult{ID: id, AISummary: s}, nil
}

func (f *fakeNotes) GenerateMindMap(ctx context.Context, id int64) (*models.MindMapResult, error) {
	n, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mm, _ := services.FixedMindMapper{}.Generate(ctx, n)
	return &models.MindMapResult{ID: id, MindMap: mm}, nil
}

func (f *fakeNotes) Search(_ context.Context, text string, _ *int64) ([]models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &data.ValidationError{Message: "search query is required"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Note
	for _, n := range f.notes {
		if strings.Contains(strings.ToLower(n.Title), strings.ToLower(text)) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotes) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.notes[id]; !ok {
		return &data.NotFoundError{Resource: "note", ID: id}
	}
	delete(f.notes, id)
	return nil
}

// fakeRecords is an in-memory Records[T] keyed by insertion order.
type fakeRecords[T models.Record] struct {
	mu      sync.Mutex
	rows    map[int64]T
	nextID  int64
	filters map[string]string
}

func newFakeRecords[T models.Record]() *fakeRecords[T] {
	return &fakeRecords[T]{rows: make(map[int64]T)}
}

func (f *fakeRecords[T]) List(_ context.Context, filters map[string]string) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = filters
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []T
	for _, id := range ids {
		out = append(out, f.rows[id])
	}
	return out, nil
}

func (f *fakeRecords[T]) Get(_ context.Context, id int64) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.rows[id]
	if !ok {
		return nil, &data.NotFoundError{Resource: "record", ID: id}
	}
	return &rec, nil
}

func (f *fakeRecords[T]) Create(_ context.Context, rec *T) (*T, error) {
	if d, ok := any(rec).(models.Defaulter); ok {
		d.ApplyDefaults()
	}
	if err := models.Validate(rec); err != nil {
		return nil, &data.ValidationError{Message: err.Error()}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.rows[f.nextID] = *rec
	return rec, nil
}

func (f *fakeRecords[T]) Update(_ context.Context, id int64, rec *T) (*T, error) {
	if err := models.Validate(rec); err != nil {
		return nil, &data.ValidationError{Message: err.Error()}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return nil, &data.NotFoundError{Resource: "record", ID: id}
	}
	f.rows[id] = *rec
	return rec, nil
}

func (f *fakeRecords[T]) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return &data.NotFoundError{Resource: "record", ID: id}
	}
	delete(f.rows, id)
	return nil
}

type fakeTasks struct {
	*fakeRecords[models.Task]
	status string
}

func (f *fakeTasks) UpdateStatus(_ context.Context, id int64, in models.TaskStatusInput) (*models.Task, error) {
	if err := models.Validate(&in); err != nil {
		return nil, &data.ValidationError{Message: err.Error()}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.rows[id]
	if !ok {
		return nil, &data.NotFoundError{Resource: "Task", ID: id}
	}
	task.Status = &in.Status
	f.rows[id] = task
	f.status = in.Status
	return &task, nil
}

type fakeTrackings struct {
	*fakeRecords[models.TimeTracking]
	stoppedAt time.Time
}

func (f *fakeTrackings) Stop(_ context.Context, id int64, now time.Time) (*models.StopResult, error) {
	if id != 1 {
		return nil, &data.NotFoundError{Resource: "Time tracking record", ID: id}
	}
	f.stoppedAt = now
	return &models.StopResult{ID: id, EndTime: now.UTC().Format(time.RFC3339), Duration: 60}, nil
}

type fakeRelations struct {
	added []models.RelationInput
}

func (f *fakeRelations) List(context.Context, int64) ([]models.NoteRelation, error) {
	return nil, nil
}

func (f *fakeRelations) Add(_ context.Context, noteID int64, in models.RelationInput) (*models.NoteRelation, error) {
	if in.RelatedNoteID == noteID {
		return nil, &data.ValidationError{Message: "a note cannot be related to itself"}
	}
	for _, prev := range f.added {
		if prev.RelatedNoteID == in.RelatedNoteID {
			return nil, &data.ConflictError{Message: "already related"}
		}
	}
	f.added = append(f.added, in)
	return &models.NoteRelation{ID: int64(len(f.added)), NoteID: noteID, RelatedNoteID: in.RelatedNoteID, RelationType: models.DefaultRelationType}, nil
}

func (f *fakeRelations) Remove(_ context.Context, noteID, relatedNoteID int64) error {
	return &data.NotFoundError{Resource: "relation"}
}

type fakeSnippets struct{}

func (fakeSnippets) List(context.Context, int64) ([]models.CodeSnippet, error) {
	return []models.CodeSnippet{}, nil
}

func (fakeSnippets) Get(_ context.Context, noteID, id int64) (*models.CodeSnippet, error) {
	return &models.CodeSnippet{ID: id, NoteID: noteID, Language: "go"}, nil
}

func (fakeSnippets) Create(_ context.Context, noteID int64, in models.CodeSnippetInput) (*models.CodeSnippet, error) {
	return &models.CodeSnippet{ID: 1, NoteID: noteID, Language: in.Language, CodeContent: in.CodeContent}, nil
}

func (fakeSnippets) Update(_ context.Context, noteID, id int64, in models.CodeSnippetInput) (*models.CodeSnippet, error) {
	return &models.CodeSnippet{ID: id, NoteID: noteID, Language: in.Language}, nil
}

func (fakeSnippets) Delete(context.Context, int64, int64) error { return nil }

func (fakeSnippets) Run(_ context.Context, noteID, id int64) (*models.RunResult, error) {
	if noteID != 1 {
		return nil, &data.NotFoundError{Resource: "code snippet", ID: id}
	}
	return &models.RunResult{ID: id, Output: "Execution result:\nHello, World!"}, nil
}

type fakeNotebooks struct{}

func (fakeNotebooks) List(context.Context) ([]models.Notebook, error) { return nil, nil }

func (fakeNotebooks) Get(_ context.Context, id int64) (*models.Notebook, error) {
	return nil, &data.NotFoundError{Resource: "notebook", ID: id}
}

func (fakeNotebooks) Create(_ context.Context, in models.NotebookInput) (*models.Notebook, error) {
	in.ApplyDefaults()
	return &models.Notebook{ID: 1, Title: in.Title, Color: in.Color, Description: in.Description}, nil
}

func (fakeNotebooks) Update(_ context.Context, id int64, in models.NotebookInput) (*models.Notebook, error) {
	return &models.Notebook{ID: id, Title: in.Title}, nil
}

func (fakeNotebooks) Delete(context.Context, int64) error { return nil }

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

var errBoom = errors.New("connection refused")
