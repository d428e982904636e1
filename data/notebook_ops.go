package data

import (
	"context"
	"fmt"
	"log"

	"flowsync_server/models"
)

const notebookColumns = `id, title, description, color, is_default, created_at, updated_at`

// NotebookRepository manages notebooks.
type NotebookRepository struct {
	gw *Gateway
}

func NewNotebookRepository(gw *Gateway) *NotebookRepository {
	return &NotebookRepository{gw: gw}
}

// List returns every notebook, most recently updated first.
func (r *NotebookRepository) List(ctx context.Context) ([]models.Notebook, error) {
	notebooks := []models.Notebook{}
	if err := r.gw.Select(ctx, &notebooks, `SELECT `+notebookColumns+` FROM notebooks ORDER BY updated_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("ListNotebooks: %w", err)
	}
	return notebooks, nil
}

func (r *NotebookRepository) Get(ctx context.Context, id int64) (*models.Notebook, error) {
	var notebooks []models.Notebook
	if err := r.gw.Select(ctx, &notebooks, `SELECT `+notebookColumns+` FROM notebooks WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("GetNotebook: id %d: %w", id, err)
	}
	if len(notebooks) == 0 {
		return nil, newNotFound("notebook", id)
	}
	return &notebooks[0], nil
}

func (r *NotebookRepository) Create(ctx context.Context, in models.NotebookInput) (*models.Notebook, error) {
	in.ApplyDefaults()
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	id, err := r.gw.InsertRow(ctx,
		`INSERT INTO notebooks (title, description, color, is_default) VALUES (?, ?, ?, ?)`,
		in.Title, in.Description, in.Color, in.IsDefault.Int64())
	if err != nil {
		return nil, fmt.Errorf("CreateNotebook: %w", err)
	}
	log.Printf("CreateNotebook: created notebook %d", id)
	return r.Get(ctx, id)
}

func (r *NotebookRepository) Update(ctx context.Context, id int64, in models.NotebookInput) (*models.Notebook, error) {
	in.ApplyDefaults()
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	n, err := r.gw.UpdateRow(ctx,
		`UPDATE notebooks SET title = ?, description = ?, color = ?, is_default = ? WHERE id = ?`,
		in.Title, in.Description, in.Color, in.IsDefault.Int64(), id)
	if err != nil {
		return nil, fmt.Errorf("UpdateNotebook: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound("notebook", id)
	}
	return r.Get(ctx, id)
}

// Delete removes a notebook. Its notes stay and lose their notebook_id.
func (r *NotebookRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.gw.DeleteRow(ctx, `DELETE FROM notebooks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteNotebook: id %d: %w", id, err)
	}
	if n == 0 {
		return newNotFound("notebook", id)
	}
	log.Printf("DeleteNotebook: deleted notebook %d", id)
	return nil
}
