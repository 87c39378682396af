package admin_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/config"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/service/admin"
)

func setupService(t *testing.T) (*admin.Service, *gorm.DB) {
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

	gender := db.Gender{ID: 1, Name: "male"}
	require.NoError(t, dbase.Create(&gender).Error)
	for i := uint64(1); i <= 2; i++ {
		user := db.User{
			ID: i, Username: fmt.Sprintf("user%d", i),
			Email: fmt.Sprintf("u%d@test.com", i), PasswordHash: "x",
			DateOfBirth: time.Now().AddDate(-30, 0, 0), GenderID: 1,
			Active: true, Role: db.RoleUser,
		}
		require.NoError(t, dbase.Create(&user).Error)
	}

	cfg := config.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(cfg, dbase, nil, logger)
	return admin.NewService(appCtx), dbase
}

func TestFileAndResolveReport(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	report, err := svc.FileReport(ctx, 1, 2, "spam")
	require.NoError(t, err)
	assert.Equal(t, db.ReportStatusOpen, report.Status)

	open, err := svc.ListReports(ctx, db.ReportStatusOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)

	require.NoError(t, svc.ResolveReport(ctx, report.ID))

	open, err = svc.ListReports(ctx, db.ReportStatusOpen)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestFileReportValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.FileReport(ctx, 1, 1, "self")
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.Map(err).Kind)

	_, err = svc.FileReport(ctx, 1, 404, "ghost")
	assert.Equal(t, svcErr.KindUserNotFound, svcErr.Map(err).Kind)

	_, err = svc.FileReport(ctx, 1, 2, "")
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.Map(err).Kind)
}

func TestListOwnReports(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.FileReport(ctx, 1, 2, "spam")
	require.NoError(t, err)
	_, err = svc.FileReport(ctx, 2, 1, "rude")
	require.NoError(t, err)

	mine, err := svc.ListOwnReports(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint64(2), mine[0].ReportedID)
}

func TestModerationFlags(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	require.NoError(t, svc.SetActive(ctx, 2, false))
	require.NoError(t, svc.SetVerified(ctx, 2, true))

	var user db.User
	require.NoError(t, dbase.First(&user, 2).Error)
	assert.False(t, user.Active)
	assert.True(t, user.Verified)

	err := svc.SetActive(ctx, 404, false)
	assert.Equal(t, svcErr.KindUserNotFound, svcErr.Map(err).Kind)
}
