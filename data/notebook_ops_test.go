package data

import (
	"context"
	"testing"

	"flowsync_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebookLifecycle(t *testing.T) {
	gw := requirePostgres(t)
	ctx := context.Background()
	notebooks := NewNotebookRepository(gw)
	notes := NewNoteRepository(gw, nil, nil)

	nb, err := notebooks.Create(ctx, models.NotebookInput{Title: "Ideas"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, nb.Color)
	require.NotNil(t, nb.Description)
	assert.Equal(t, "", *nb.Description)
	assert.Equal(t, models.Flag(0), nb.IsDefault)

	updated, err := notebooks.Update(ctx, nb.ID, models.NotebookInput{Title: "Ideas 2", Color: "#000000", IsDefault: 1})
	require.NoError(t, err)
	assert.Equal(t, "#000000", updated.Color)
	assert.Equal(t, models.Flag(1), updated.IsDefault)

	note := createNote(t, notes, models.NoteInput{Title: "filed", NotebookID: &nb.ID})

	list, err := notebooks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, notebooks.Delete(ctx, nb.ID))
	orphan, err := notes.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.NotebookID)

	_, err = notebooks.Get(ctx, nb.ID)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(notebooks.Delete(ctx, nb.ID)))

	_, err = notebooks.Create(ctx, models.NotebookInput{})
	assert.True(t, IsValidation(err))
}
