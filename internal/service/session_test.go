package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fastfoodbot/internal/config"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) GetSession(ctx context.Context, userID int64) (*models.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessionRepo) SetSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) ClearSession(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSessionRepo) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, limit, window)
	return args.Bool(0), args.Error(1)
}

func testBotConfig() config.BotConfig {
	return config.BotConfig{
		DefaultLanguage:   models.LangUz,
		RateLimitMessages: 20,
		RateLimitWindow:   60,
	}
}

func TestSessionService_GetOrCreateSession(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("ExistingSession", func(t *testing.T) {
		repo := new(mockSessionRepo)
		svc := NewSessionService(repo, testBotConfig(), &logger)

		existing := &models.Session{UserID: 1, Language: models.LangRu}
		repo.On("GetSession", ctx, int64(1)).Return(existing, nil).Once()

		got, err := svc.GetOrCreateSession(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, models.LangRu, got.Language)
	})

	t.Run("NewSessionGetsDefaultLanguage", func(t *testing.T) {
		repo := new(mockSessionRepo)
		svc := NewSessionService(repo, testBotConfig(), &logger)

		repo.On("GetSession", ctx, int64(2)).Return(nil, nil).Once()

		got, err := svc.GetOrCreateSession(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.UserID)
		assert.Equal(t, models.LangUz, got.Language)
		assert.True(t, got.CartIsEmpty())
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(mockSessionRepo)
		svc := NewSessionService(repo, testBotConfig(), &logger)

		repo.On("GetSession", ctx, int64(3)).Return(nil, errors.New("boom")).Once()

		_, err := svc.GetOrCreateSession(ctx, 3)
		assert.Error(t, err)
	})
}

func TestSessionService_SetLanguage(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	repo := new(mockSessionRepo)
	svc := NewSessionService(repo, testBotConfig(), &logger)

	repo.On("GetSession", ctx, int64(1)).Return(nil, nil).Once()
	repo.On("SetSession", ctx, mock.MatchedBy(func(s *models.Session) bool {
		return s.UserID == 1 && s.Language == models.LangRu
	})).Return(nil).Once()

	err := svc.SetLanguage(ctx, 1, models.LangRu)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSessionService_CheckRateLimit(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	repo := new(mockSessionRepo)
	svc := NewSessionService(repo, testBotConfig(), &logger)

	repo.On("CheckRateLimit", ctx, int64(1), 20, time.Minute).Return(true, nil).Once()

	allowed, err := svc.CheckRateLimit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, allowed)
	repo.AssertExpectations(t)
}
