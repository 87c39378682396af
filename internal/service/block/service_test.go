package block_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/cache"
	"cupid-backend/internal/config"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/repository"
	"cupid-backend/internal/service/block"
)

func setupService(t *testing.T) (*block.Service, *gorm.DB) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(db.AllModels...))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(cfg, dbase, redisCache, logger)
	return block.NewService(appCtx), dbase
}

// seedMatchedPair creates the full interaction state between users 1
// and 2: mutual swipes, match, conversation and a message.
func seedMatchedPair(t *testing.T, dbase *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	swipes := repository.NewSwipeRepository(dbase)
	require.NoError(t, swipes.Upsert(ctx, 1, 2, true))
	require.NoError(t, swipes.Upsert(ctx, 2, 1, true))

	match, _, err := repository.NewMatchRepository(dbase).Ensure(ctx, 1, 2)
	require.NoError(t, err)

	conv, err := repository.NewMatchRepository(dbase).GetConversation(ctx, match.ID)
	require.NoError(t, err)

	msg := db.Message{ConversationID: conv.ID, SenderID: 1, Content: "hi"}
	require.NoError(t, dbase.Create(&msg).Error)
}

func TestBlockCascadesMatchTeardown(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)
	seedMatchedPair(t, dbase)

	require.NoError(t, svc.Block(ctx, 1, 2, "spam"))

	// relation recorded
	var blocks int64
	dbase.Model(&db.BlockRelation{}).Count(&blocks)
	assert.Equal(t, int64(1), blocks)

	// no orphaned rows remain
	var matches, convs, msgs, swipes int64
	dbase.Model(&db.Match{}).Count(&matches)
	dbase.Model(&db.Conversation{}).Count(&convs)
	dbase.Model(&db.Message{}).Count(&msgs)
	dbase.Model(&db.Swipe{}).Count(&swipes)
	assert.Zero(t, matches)
	assert.Zero(t, convs)
	assert.Zero(t, msgs)
	assert.Zero(t, swipes)
}

func TestBlockWithoutMatchStillRemovesSwipes(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	require.NoError(t, repository.NewSwipeRepository(dbase).Upsert(ctx, 1, 2, true))

	require.NoError(t, svc.Block(ctx, 1, 2, ""))

	var swipes int64
	dbase.Model(&db.Swipe{}).Count(&swipes)
	assert.Zero(t, swipes)
}

func TestBlockValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	err := svc.Block(ctx, 1, 0, "")
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.Map(err).Kind)

	err = svc.Block(ctx, 1, 1, "")
	assert.Equal(t, svcErr.KindSelfBlock, svcErr.Map(err).Kind)
}

func TestBlockDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.Block(ctx, 1, 2, "first"))

	err := svc.Block(ctx, 1, 2, "again")
	require.Error(t, err)
	assert.Equal(t, svcErr.KindAlreadyBlocked, svcErr.Map(err).Kind)

	// the reverse direction is a distinct relation and still allowed
	require.NoError(t, svc.Block(ctx, 2, 1, "back"))
}

func TestListBlocked(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.Block(ctx, 1, 2, "spam"))
	require.NoError(t, svc.Block(ctx, 1, 3, ""))

	blocks, err := svc.ListBlocked(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}
