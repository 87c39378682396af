package auth_test

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
	"cupid-backend/internal/service/auth"
)

func setupService(t *testing.T) (*auth.Service, *gorm.DB) {
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

	gender := db.Gender{ID: 1, Name: "female"}
	require.NoError(t, dbase.Create(&gender).Error)

	cfg := config.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// auth never touches Redis
	appCtx := app.New(cfg, dbase, nil, logger)
	return auth.NewService(appCtx), dbase
}

func validInput() auth.RegisterInput {
	return auth.RegisterInput{
		Username:    "maria",
		Email:       "maria@test.com",
		Password:    "supersecret",
		DateOfBirth: time.Now().UTC().AddDate(-28, 0, -30),
		GenderID:    1,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	user, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, db.RoleUser, user.Role)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	session, err := svc.Login(ctx, "maria@test.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.NotEmpty(t, session.Token)
}

func TestRegisterRejectsUnderage(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	in := validInput()
	in.DateOfBirth = time.Now().UTC().AddDate(-17, 0, 0)

	_, err := svc.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.Map(err).Kind)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validInput())
	require.Error(t, err)
	assert.Equal(t, svcErr.KindAlreadyExists, svcErr.Map(err).Kind)
}

func TestLoginWrongCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	// unknown email and wrong password produce the same kind
	_, err = svc.Login(ctx, "nobody@test.com", "supersecret")
	assert.Equal(t, svcErr.KindUnauthorized, svcErr.Map(err).Kind)

	_, err = svc.Login(ctx, "maria@test.com", "wrongpass")
	assert.Equal(t, svcErr.KindUnauthorized, svcErr.Map(err).Kind)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	user, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, dbase.Model(user).Update("active", false).Error)

	_, err = svc.Login(ctx, "maria@test.com", "supersecret")
	assert.Equal(t, svcErr.KindForbidden, svcErr.Map(err).Kind)
}
