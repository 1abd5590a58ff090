package repository

import (
	"context"
	"testing"
	"time"

	"fastfoodbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetSession", func(t *testing.T) {
		session := &models.Session{UserID: 1, Language: models.LangUz, Step: models.StepAwaitingComment}
		require.NoError(t, repo.SetSession(ctx, session))

		got, err := repo.GetSession(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, models.StepAwaitingComment, got.Step)
	})

	t.Run("GetNonExistentSession", func(t *testing.T) {
		got, err := repo.GetSession(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearSession", func(t *testing.T) {
		repo.SetSession(ctx, &models.Session{UserID: 2})
		require.NoError(t, repo.ClearSession(ctx, 2))

		got, _ := repo.GetSession(ctx, 2)
		assert.Nil(t, got)
	})
}

func TestMemorySessionRepository_RateLimit(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	allowed, err := repo.CheckRateLimit(ctx, 1, 2, 50*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _ = repo.CheckRateLimit(ctx, 1, 2, 50*time.Millisecond)
	assert.True(t, allowed)

	allowed, _ = repo.CheckRateLimit(ctx, 1, 2, 50*time.Millisecond)
	assert.False(t, allowed)

	time.Sleep(60 * time.Millisecond)

	allowed, _ = repo.CheckRateLimit(ctx, 1, 2, 50*time.Millisecond)
	assert.True(t, allowed)
}
