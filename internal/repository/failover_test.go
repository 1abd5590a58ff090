package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetSession(ctx context.Context, userID int64) (*models.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockRepo) SetSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockRepo) ClearSession(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockRepo) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverSessionRepository(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverSessionRepository(primary, fallback, &logger)

		session := &models.Session{UserID: 1}
		primary.On("GetSession", ctx, int64(1)).Return(session, nil).Once()

		got, err := repo.GetSession(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		primary.AssertExpectations(t)
		fallback.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("FallbackOnPrimaryError", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverSessionRepository(primary, fallback, &logger)

		session := &models.Session{UserID: 2}
		primary.On("GetSession", ctx, int64(2)).Return(nil, errors.New("redis down")).Once()
		fallback.On("GetSession", ctx, int64(2)).Return(session, nil).Once()

		got, err := repo.GetSession(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("StaysOnFallbackWhileDown", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverSessionRepository(primary, fallback, &logger)

		session := &models.Session{UserID: 3}
		primary.On("SetSession", ctx, session).Return(errors.New("redis down")).Once()
		fallback.On("SetSession", ctx, session).Return(nil).Twice()

		// Первая запись роняет primary, вторая идет сразу в fallback
		assert.NoError(t, repo.SetSession(ctx, session))
		assert.NoError(t, repo.SetSession(ctx, session))
		primary.AssertNumberOfCalls(t, "SetSession", 1)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoversAfterProbeInterval", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverSessionRepository(primary, fallback, &logger)

		repo.isDown.Store(true)
		repo.lastCheck = time.Now().Add(-2 * time.Minute)

		session := &models.Session{UserID: 4}
		primary.On("GetSession", ctx, int64(4)).Return(session, nil).Once()

		got, err := repo.GetSession(ctx, 4)
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		assert.False(t, repo.isDown.Load())
	})

	t.Run("RateLimitFallback", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverSessionRepository(primary, fallback, &logger)

		primary.On("CheckRateLimit", ctx, int64(5), 10, time.Minute).Return(false, errors.New("redis down")).Once()
		fallback.On("CheckRateLimit", ctx, int64(5), 10, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, 5, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})
}
