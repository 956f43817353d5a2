package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"closetapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string {
	return &s
}

func shirtFields() models.GarmentFields {
	return models.GarmentFields{
		Name:     str("White shirt"),
		Category: str("상의"),
		Type:     str("shirt"),
		Color:    str("white"),
		Style:    str("formal"),
		Material: str("면"),
		Season:   str("사계절"),
	}
}

func newFileStore(t *testing.T) (*FileGarmentStore, string) {
	path := filepath.Join(t.TempDir(), "closet.json")
	s, err := NewFileGarmentStore(path, NewLabelLookup())
	require.NoError(t, err)
	return s, path
}

func TestFileStoreCreateAndList(t *testing.T) {
	ctx := context.Background()
	s, path := newFileStore(t)

	created, err := s.Create(ctx, "", "", shirtFields())
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.Equal(t, models.SeasonAllSeason, created.Season)
	assert.Equal(t, models.MaterialCotton, created.Material)
	assert.Equal(t, models.CategoryTop, created.Category)

	second, err := s.Create(ctx, "", "", shirtFields())
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)

	// a fresh store sees what the first one wrote
	reloaded, err := NewFileGarmentStore(path, NewLabelLookup())
	require.NoError(t, err)
	garments, err := reloaded.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, garments, 2)
	assert.Equal(t, "White shirt", garments[0].Name)
}

func TestFileStoreCreateRequiresFields(t *testing.T) {
	s, _ := newFileStore(t)
	fields := shirtFields()
	fields.Season = nil

	_, err := s.Create(context.Background(), "", "", fields)
	var validation *models.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "season", validation.Field)
}

func TestFileStoreCreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	_, err := s.Create(ctx, "", "7", shirtFields())
	require.NoError(t, err)
	_, err = s.Create(ctx, "", "7", shirtFields())
	assert.ErrorIs(t, err, models.ErrConflict)

	next, err := s.Create(ctx, "", "", shirtFields())
	require.NoError(t, err)
	assert.Equal(t, "8", next.ID)
}

func TestFileStoreUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)
	created, err := s.Create(ctx, "", "", shirtFields())
	require.NoError(t, err)

	updated, err := s.Update(ctx, "", created.ID, models.GarmentFields{Color: str("black")})
	require.NoError(t, err)
	assert.Equal(t, "black", updated.Color)
	assert.Equal(t, "White shirt", updated.Name)

	_, err = s.Update(ctx, "", "99", models.GarmentFields{Color: str("red")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.Update(ctx, "", "abc", models.GarmentFields{Color: str("red")})
	assert.True(t, models.IsValidation(err))
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)
	created, err := s.Create(ctx, "", "", shirtFields())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "", created.ID))
	assert.ErrorIs(t, s.Delete(ctx, "", created.ID), models.ErrNotFound)

	n, err := s.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestFileStoreOwnerScoping(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)
	alice, err := s.Create(ctx, "alice", "", shirtFields())
	require.NoError(t, err)
	_, err = s.Create(ctx, "bob", "", shirtFields())
	require.NoError(t, err)

	mine, err := s.ListAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].ID)

	all, err := s.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.Get(ctx, "bob", alice.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "bob", alice.ID), models.ErrNotFound)
}

func TestFileStoreSetLabelStatus(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)
	created, err := s.Create(ctx, "", "", shirtFields())
	require.NoError(t, err)
	assert.Equal(t, models.LabelStatusIdle, created.LabelStatus)

	require.NoError(t, s.SetLabelStatus(ctx, created.ID, models.LabelStatusFailed, str("no image")))
	got, err := s.Get(ctx, "", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LabelStatusFailed, got.LabelStatus)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closet.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileGarmentStore(path, NewLabelLookup())
	assert.Error(t, err)
}
