package service

import (
	"context"
	"io"
	"testing"

	"fastfoodbot/internal/config"
	"fastfoodbot/internal/database"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserService(t *testing.T) (*UserService, *database.DB) {
	t.Helper()

	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Bot:       config.BotConfig{DefaultLanguage: models.LangUz},
		Managers:  []int64{777},
		Blacklist: []int64{666},
	}
	return NewUserService(db, cfg, &logger), db
}

func TestUserServiceRoles(t *testing.T) {
	svc, _ := setupUserService(t)

	assert.True(t, svc.IsManager(777))
	assert.False(t, svc.IsManager(123))
	assert.True(t, svc.IsBlacklisted(666))
	assert.False(t, svc.IsBlacklisted(123))
}

func TestSaveUserDefaults(t *testing.T) {
	svc, db := setupUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveUser(ctx, &models.User{TelegramID: 123, Username: "ali"}))

	user, err := db.GetUserByTelegramID(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, models.LangUz, user.LanguageCode)
	assert.False(t, user.IsBlacklisted)
}

func TestSaveUserBlacklistFlag(t *testing.T) {
	svc, db := setupUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveUser(ctx, &models.User{TelegramID: 666, Username: "banned"}))

	user, err := db.GetUserByTelegramID(ctx, 666)
	require.NoError(t, err)
	assert.True(t, user.IsBlacklisted)
}

func TestUpdateUserLanguage(t *testing.T) {
	svc, db := setupUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveUser(ctx, &models.User{TelegramID: 123}))
	require.NoError(t, svc.UpdateUserLanguage(ctx, 123, models.LangRu))

	user, err := db.GetUserByTelegramID(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, models.LangRu, user.LanguageCode)
}
