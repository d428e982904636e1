package data

import (
	"context"
	"fmt"
	"log"

	"flowsync_server/models"
	"flowsync_server/services"
)

const snippetColumns = `id, note_id, language, code_content, run_params, output, created_at, updated_at`

// CodeSnippetRepository manages the code blocks attached to notes. Every
// operation is scoped by the owning note.
type CodeSnippetRepository struct {
	gw     *Gateway
	runner services.CodeRunner
}

func NewCodeSnippetRepository(gw *Gateway, runner services.CodeRunner) *CodeSnippetRepository {
	if runner == nil {
		runner = services.EchoRunner{}
	}
	return &CodeSnippetRepository{gw: gw, runner: runner}
}

func (r *CodeSnippetRepository) List(ctx context.Context, noteID int64) ([]models.CodeSnippet, error) {
	snippets := []models.CodeSnippet{}
	err := r.gw.Select(ctx, &snippets,
		`SELECT `+snippetColumns+` FROM code_snippets WHERE note_id = ? ORDER BY created_at DESC, id DESC`, noteID)
	if err != nil {
		return nil, fmt.Errorf("ListCodeSnippets: note %d: %w", noteID, err)
	}
	return snippets, nil
}

func (r *CodeSnippetRepository) Get(ctx context.Context, noteID, id int64) (*models.CodeSnippet, error) {
	var snippets []models.CodeSnippet
	err := r.gw.Select(ctx, &snippets,
		`SELECT `+snippetColumns+` FROM code_snippets WHERE note_id = ? AND id = ?`, noteID, id)
	if err != nil {
		return nil, fmt.Errorf("GetCodeSnippet: note %d id %d: %w", noteID, id, err)
	}
	if len(snippets) == 0 {
		return nil, newNotFound("code snippet", id)
	}
	return &snippets[0], nil
}

func (r *CodeSnippetRepository) Create(ctx context.Context, noteID int64, in models.CodeSnippetInput) (*models.CodeSnippet, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	id, err := r.gw.InsertRow(ctx,
		`INSERT INTO code_snippets (note_id, language, code_content, run_params) VALUES (?, ?, ?, ?)`,
		noteID, in.Language, in.CodeContent, in.RunParams.Param())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, newNotFound("note", noteID)
		}
		return nil, fmt.Errorf("CreateCodeSnippet: note %d: %w", noteID, err)
	}
	log.Printf("CreateCodeSnippet: created snippet %d for note %d", id, noteID)
	return r.Get(ctx, noteID, id)
}

func (r *CodeSnippetRepository) Update(ctx context.Context, noteID, id int64, in models.CodeSnippetInput) (*models.CodeSnippet, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	n, err := r.gw.UpdateRow(ctx,
		`UPDATE code_snippets SET language = ?, code_content = ?, run_params = ?, output = ? WHERE note_id = ? AND id = ?`,
		in.Language, in.CodeContent, in.RunParams.Param(), in.Output, noteID, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateCodeSnippet: note %d id %d: %w", noteID, id, err)
	}
	if n == 0 {
		return nil, newNotFound("code snippet", id)
	}
	return r.Get(ctx, noteID, id)
}

func (r *CodeSnippetRepository) Delete(ctx context.Context, noteID, id int64) error {
	n, err := r.gw.DeleteRow(ctx, `DELETE FROM code_snippets WHERE note_id = ? AND id = ?`, noteID, id)
	if err != nil {
		return fmt.Errorf("DeleteCodeSnippet: note %d id %d: %w", noteID, id, err)
	}
	if n == 0 {
		return newNotFound("code snippet", id)
	}
	return nil
}

// Run executes a snippet through the code runner and stores its output.
func (r *CodeSnippetRepository) Run(ctx context.Context, noteID, id int64) (*models.RunResult, error) {
	snippet, err := r.Get(ctx, noteID, id)
	if err != nil {
		return nil, err
	}
	output, err := r.runner.Run(ctx, snippet)
	if err != nil {
		return nil, fmt.Errorf("RunCodeSnippet: id %d: %w", id, err)
	}
	n, err := r.gw.UpdateRow(ctx,
		`UPDATE code_snippets SET output = ? WHERE note_id = ? AND id = ?`, output, noteID, id)
	if err != nil {
		return nil, fmt.Errorf("RunCodeSnippet: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound("code snippet", id)
	}
	return &models.RunResult{ID: id, Output: output}, nil
}
