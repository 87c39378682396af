package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cupid-backend/internal/db"
	"cupid-backend/internal/repository"
)

func TestCanonicalPair(t *testing.T) {
	lo, hi := repository.CanonicalPair(9, 3)
	assert.Equal(t, uint64(3), lo)
	assert.Equal(t, uint64(9), hi)

	lo, hi = repository.CanonicalPair(3, 9)
	assert.Equal(t, uint64(3), lo)
	assert.Equal(t, uint64(9), hi)
}

func TestEnsureMatchIdempotent(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	match, created, err := repo.Ensure(ctx, 9, 3)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(3), match.User1ID)
	assert.Equal(t, uint64(9), match.User2ID)

	// second detection, reversed argument order
	again, created, err := repo.Ensure(ctx, 3, 9)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, match.ID, again.ID)

	// exactly one match row and one conversation
	var matchCount, convCount int64
	require.NoError(t, dbase.Model(&db.Match{}).Count(&matchCount).Error)
	require.NoError(t, dbase.Model(&db.Conversation{}).Count(&convCount).Error)
	assert.Equal(t, int64(1), matchCount)
	assert.Equal(t, int64(1), convCount)
}

func TestEnsureMatchCreatesConversation(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	match, _, err := repo.Ensure(ctx, 1, 2)
	require.NoError(t, err)

	conv, err := repo.GetConversation(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ID, conv.MatchID)
}

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	match, _, err := repo.Ensure(ctx, 1, 2)
	require.NoError(t, err)
	conv, err := repo.GetConversation(ctx, match.ID)
	require.NoError(t, err)

	msg := db.Message{ConversationID: conv.ID, SenderID: 1, Content: "hey"}
	require.NoError(t, dbase.Create(&msg).Error)

	require.NoError(t, repo.DeleteCascade(ctx, match.ID))

	var matches, convs, msgs int64
	dbase.Model(&db.Match{}).Count(&matches)
	dbase.Model(&db.Conversation{}).Count(&convs)
	dbase.Model(&db.Message{}).Count(&msgs)
	assert.Zero(t, matches)
	assert.Zero(t, convs)
	assert.Zero(t, msgs)
}
