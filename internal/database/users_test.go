package database

import (
	"context"
	"os"
	"testing"
	"time"

	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

func TestCreateOrUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user := &models.User{
		TelegramID:   12345,
		Username:     "testuser",
		FirstName:    "Test",
		LastName:     "User",
		Phone:        "998901234567",
		LanguageCode: models.LangUz,
		LastActivity: time.Now(),
	}

	// Create
	err := db.CreateOrUpdateUser(ctx, user)
	require.NoError(t, err)

	got, err := db.GetUserByTelegramID(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, "testuser", got.Username)
	assert.Equal(t, models.LangUz, got.LanguageCode)
	assert.Equal(t, "998901234567", got.Phone)

	// Update: повторный /start обновляет имя, но не затирает телефон и язык
	user.Username = "renamed"
	err = db.CreateOrUpdateUser(ctx, user)
	require.NoError(t, err)

	got, err = db.GetUserByTelegramID(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Username)
	assert.Equal(t, "998901234567", got.Phone)
}

func TestGetUserByTelegramID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetUserByTelegramID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserLanguageAndPhone(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user := &models.User{TelegramID: 42, FirstName: "A", LanguageCode: models.LangUz, LastActivity: time.Now()}
	require.NoError(t, db.CreateOrUpdateUser(ctx, user))

	require.NoError(t, db.UpdateUserLanguage(ctx, 42, models.LangRu))
	require.NoError(t, db.UpdateUserPhone(ctx, 42, "998935550011"))

	got, err := db.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, models.LangRu, got.LanguageCode)
	assert.Equal(t, "998935550011", got.Phone)
}

func TestGetAllUsersAndCount(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		user := &models.User{TelegramID: i, FirstName: "U", LanguageCode: models.LangUz, LastActivity: time.Now()}
		require.NoError(t, db.CreateOrUpdateUser(ctx, user))
	}

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	count, err := db.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
