package store

import (
	"context"
	"testing"

	"closetapi/dbhelper"
	"closetapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGormStore(t *testing.T) *GormGarmentStore {
	db, ok, err := dbhelper.SetupTestDB()
	if !ok {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	require.NoError(t, err)
	cleaner := dbhelper.SetupCleaner(db)
	cleaner()
	t.Cleanup(cleaner)
	return NewGormGarmentStore(db, NewLabelLookup())
}

func TestGormStoreCrud(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	created, err := s.Create(ctx, "", "", shirtFields())
	require.NoError(t, err)
	assert.Equal(t, models.SeasonAllSeason, created.Season)

	got, err := s.Get(ctx, "", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "White shirt", got.Name)

	updated, err := s.Update(ctx, "", created.ID, models.GarmentFields{Style: str("casual")})
	require.NoError(t, err)
	assert.Equal(t, "casual", updated.Style)
	assert.Equal(t, "white", updated.Color)

	garments, err := s.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, garments, 1)

	require.NoError(t, s.Delete(ctx, "", created.ID))
	_, err = s.Get(ctx, "", created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "", created.ID), models.ErrNotFound)
}

func TestGormStoreDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	_, err := s.Create(ctx, "", "900001", shirtFields())
	require.NoError(t, err)
	_, err = s.Create(ctx, "", "900001", shirtFields())
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestGormStoreOwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	alice, err := s.Create(ctx, "alice", "", shirtFields())
	require.NoError(t, err)
	_, err = s.Create(ctx, "bob", "", shirtFields())
	require.NoError(t, err)

	n, err := s.Count(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Update(ctx, "bob", alice.ID, models.GarmentFields{Color: str("red")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
