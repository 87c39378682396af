package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cupid-backend/internal/db"
	"cupid-backend/internal/repository"
)

func TestPreferenceDefaultsWhenAbsent(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewPreferenceRepository(dbase)

	prefs, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, repository.DefaultMaxDistanceKm, prefs.MaxDistanceKm)
	assert.Equal(t, repository.DefaultMinAge, prefs.MinAge)
	assert.Equal(t, repository.DefaultMaxAge, prefs.MaxAge)
	assert.Empty(t, prefs.PreferredGenderIDs)
}

func TestPreferencePutReplacesGenderSet(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewPreferenceRepository(dbase)

	require.NoError(t, repo.Put(ctx, 42, &repository.Preferences{
		MaxDistanceKm:      25,
		MinAge:             21,
		MaxAge:             40,
		PreferredGenderIDs: []uint64{1, 2},
	}))

	// second write replaces, not appends
	require.NoError(t, repo.Put(ctx, 42, &repository.Preferences{
		MaxDistanceKm:      30,
		MinAge:             21,
		MaxAge:             40,
		PreferredGenderIDs: []uint64{2},
	}))

	prefs, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 30, prefs.MaxDistanceKm)
	assert.Equal(t, []uint64{2}, prefs.PreferredGenderIDs)

	var edges int64
	dbase.Model(&db.PreferredGender{}).Count(&edges)
	assert.Equal(t, int64(1), edges)
}
