package data

import (
	"context"
	"fmt"
	"log"
	"strings"

	"flowsync_server/models"
)

const relationColumns = `id, note_id, related_note_id, relation_type, created_at`

// RelationRepository manages note_relations.
type RelationRepository struct {
	gw *Gateway
}

func NewRelationRepository(gw *Gateway) *RelationRepository {
	return &RelationRepository{gw: gw}
}

// List returns the outgoing relations of a note.
func (r *RelationRepository) List(ctx context.Context, noteID int64) ([]models.NoteRelation, error) {
	relations := []models.NoteRelation{}
	err := r.gw.Select(ctx, &relations,
		`SELECT `+relationColumns+` FROM note_relations WHERE note_id = ? ORDER BY created_at, id`, noteID)
	if err != nil {
		return nil, fmt.Errorf("ListRelations: note %d: %w", noteID, err)
	}
	return relations, nil
}

// Add links two notes. A pair may only be linked once.
func (r *RelationRepository) Add(ctx context.Context, noteID int64, in models.RelationInput) (*models.NoteRelation, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if in.RelatedNoteID == noteID {
		return nil, newValidationError("a note cannot be related to itself")
	}
	relationType := strings.TrimSpace(in.RelationType)
	if relationType == "" {
		relationType = models.DefaultRelationType
	}

	id, err := r.gw.InsertRow(ctx,
		`INSERT INTO note_relations (note_id, related_note_id, relation_type) VALUES (?, ?, ?)`,
		noteID, in.RelatedNoteID, relationType)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return nil, &NotFoundError{Resource: "note"}
		case isUniqueViolation(err):
			return nil, &ConflictError{Message: fmt.Sprintf("notes %d and %d are already related", noteID, in.RelatedNoteID)}
		}
		return nil, fmt.Errorf("AddRelation: note %d: %w", noteID, err)
	}
	log.Printf("AddRelation: linked note %d -> %d (%s)", noteID, in.RelatedNoteID, relationType)

	var rows []models.NoteRelation
	if err := r.gw.Select(ctx, &rows, `SELECT `+relationColumns+` FROM note_relations WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("AddRelation: reload %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, newNotFound("relation", id)
	}
	return &rows[0], nil
}

// Remove deletes the relation from noteID to relatedNoteID.
func (r *RelationRepository) Remove(ctx context.Context, noteID, relatedNoteID int64) error {
	n, err := r.gw.DeleteRow(ctx,
		`DELETE FROM note_relations WHERE note_id = ? AND related_note_id = ?`, noteID, relatedNoteID)
	if err != nil {
		return fmt.Errorf("RemoveRelation: note %d: %w", noteID, err)
	}
	if n == 0 {
		return &NotFoundError{Resource: "relation"}
	}
	return nil
}
