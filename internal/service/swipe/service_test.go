package swipe_test

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
	"cupid-backend/internal/service/swipe"
)

// setupService spins up an in-memory SQLite DB plus miniredis and
// wires a swipe Service. Each test gets its own isolated state.
func setupService(t *testing.T) (*swipe.Service, *gorm.DB) {
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
	return swipe.NewService(appCtx), dbase
}

func TestSwipeMutualLikeRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	// first like: no match yet
	res, err := svc.Swipe(ctx, 1, 2, true)
	require.NoError(t, err)
	assert.False(t, res.IsMatch)
	assert.Nil(t, res.MatchID)

	// reciprocal like completes the pair
	res, err = svc.Swipe(ctx, 2, 1, true)
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	require.NotNil(t, res.MatchID)

	// exactly one canonical match row plus its conversation
	var matches []db.Match
	require.NoError(t, dbase.Find(&matches).Error)
	require.Len(t, matches, 1)
	assert.Equal(t, uint64(1), matches[0].User1ID)
	assert.Equal(t, uint64(2), matches[0].User2ID)

	var convCount int64
	require.NoError(t, dbase.Model(&db.Conversation{}).Count(&convCount).Error)
	assert.Equal(t, int64(1), convCount)
}

func TestSwipeRepeatedMutualLikeStaysSingleMatch(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	_, err := svc.Swipe(ctx, 1, 2, true)
	require.NoError(t, err)
	res, err := svc.Swipe(ctx, 2, 1, true)
	require.NoError(t, err)
	assert.True(t, res.IsMatch)

	// a duplicate reciprocal like must not create a second row
	res, err = svc.Swipe(ctx, 2, 1, true)
	require.NoError(t, err)
	assert.True(t, res.IsMatch)

	var matchCount, convCount int64
	require.NoError(t, dbase.Model(&db.Match{}).Count(&matchCount).Error)
	require.NoError(t, dbase.Model(&db.Conversation{}).Count(&convCount).Error)
	assert.Equal(t, int64(1), matchCount)
	assert.Equal(t, int64(1), convCount)
}

func TestSwipePassNeverMatches(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Swipe(ctx, 1, 2, true)
	require.NoError(t, err)

	res, err := svc.Swipe(ctx, 2, 1, false)
	require.NoError(t, err)
	assert.False(t, res.IsMatch)
}

func TestSwipeInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Swipe(ctx, 0, 2, true)
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.Map(err).Kind)

	_, err = svc.Swipe(ctx, 1, 1, true)
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.Map(err).Kind)
}

func TestSwipeBlockedPairRejected(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	require.NoError(t, dbase.Create(&db.BlockRelation{BlockerID: 2, BlockedID: 1}).Error)

	// blocked in the opposite direction still rejects
	_, err := svc.Swipe(ctx, 1, 2, true)
	require.Error(t, err)
	assert.Equal(t, svcErr.KindBlockedPair, svcErr.Map(err).Kind)

	// and no swipe row was written
	var count int64
	require.NoError(t, dbase.Model(&db.Swipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCountLikedYouCacheFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Swipe(ctx, 2, 1, true)
	require.NoError(t, err)
	_, err = svc.Swipe(ctx, 3, 1, true)
	require.NoError(t, err)

	// cold path computes from the DB, warm path hits the cache
	count, err := svc.CountLikedYou(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = svc.CountLikedYou(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
