package repository

import (
	"context"
	"testing"
	"time"

	"fastfoodbot/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisSessionRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetSession", func(t *testing.T) {
		session := &models.Session{
			UserID:   123,
			Language: models.LangRu,
			Step:     models.StepAwaitingPhone,
			Cart: []models.CartLine{
				{ProductID: 1, NameUz: "Cola", NameRu: "Кола", Price: 8000, Quantity: 2},
			},
		}

		err := repo.SetSession(ctx, session)
		require.NoError(t, err)

		got, err := repo.GetSession(ctx, 123)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, session.UserID, got.UserID)
		assert.Equal(t, session.Step, got.Step)
		require.Len(t, got.Cart, 1)
		assert.Equal(t, int64(2), got.Cart[0].Quantity)
	})

	t.Run("GetNonExistentSession", func(t *testing.T) {
		got, err := repo.GetSession(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearSession", func(t *testing.T) {
		session := &models.Session{UserID: 456, Step: models.StepAwaitingAddress}
		repo.SetSession(ctx, session)

		err := repo.ClearSession(ctx, 456)
		require.NoError(t, err)

		got, _ := repo.GetSession(ctx, 456)
		assert.Nil(t, got)
	})

	t.Run("SessionTTL", func(t *testing.T) {
		session := &models.Session{UserID: 777}
		require.NoError(t, repo.SetSession(ctx, session))

		s.FastForward(2 * time.Hour)

		got, err := repo.GetSession(ctx, 777)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("RateLimit", func(t *testing.T) {
		userID := int64(789)
		limit := 2
		window := time.Second

		allowed, err := repo.CheckRateLimit(ctx, userID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, userID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, userID, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)

		// окно истекло, лимит сбрасывается
		s.FastForward(2 * time.Second)
		allowed, err = repo.CheckRateLimit(ctx, userID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestRedisSessionRepository_NilClient(t *testing.T) {
	repo := NewRedisSessionRepository(nil, time.Hour)
	ctx := context.Background()

	_, err := repo.GetSession(ctx, 1)
	assert.Error(t, err)

	err = repo.SetSession(ctx, &models.Session{UserID: 1})
	assert.Error(t, err)

	err = repo.ClearSession(ctx, 1)
	assert.Error(t, err)

	_, err = repo.CheckRateLimit(ctx, 1, 10, time.Minute)
	assert.Error(t, err)
}
