// Package services holds the external collaborators the repositories call
// out to. The implementations here are deterministic stand-ins.
package services

import (
	"context"
	"fmt"

	"flowsync_server/models"
)

// SummaryGenerator produces a short summary of a note.
type SummaryGenerator interface {
	Summarize(ctx context.Context, note *models.Note) (string, error)
}

// MindMapGenerator derives a mind map from a note.
type MindMapGenerator interface {
	Generate(ctx context.Context, note *models.Note) (models.MindMap, error)
}

// TemplateSummarizer fills a fixed sentence with the note title.
type TemplateSummarizer struct{}

func (TemplateSummarizer) Summarize(_ context.Context, note *models.Note) (string, error) {
	if note == nil {
		return "", fmt.Errorf("Summarize: nil note")
	}
	return fmt.Sprintf("This is a summary about %s, covering the main content and key points.", note.Title), nil
}

// FixedMindMapper returns a root node labelled with the title and three key
// point children.
type FixedMindMapper struct{}

func (FixedMindMapper) Generate(_ context.Context, note *models.Note) (models.MindMap, error) {
	if note == nil {
		return models.MindMap{}, fmt.Errorf("Generate: nil note")
	}
	return models.MindMap{
		Nodes: []models.MindMapNode{
			{ID: "1", Label: note.Title, X: 0, Y: 0},
			{ID: "2", Label: "Key point 1", X: -100, Y: -100},
			{ID: "3", Label: "Key point 2", X: 100, Y: -100},
			{ID: "4", Label: "Key point 3", X: 0, Y: 100},
		},
		Links: []models.MindMapLink{
			{Source: "1", Target: "2"},
			{Source: "1", Target: "3"},
			{Source: "1", Target: "4"},
		},
	}, nil
}
