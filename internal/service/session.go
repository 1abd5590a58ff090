package service

import (
	"context"
	"time"

	"fastfoodbot/internal/config"
	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
)

// SessionService управляет сессиями пользователей поверх хранилища.
// Отсутствующая сессия не ошибка: создается новая с языком по умолчанию.
type SessionService struct {
	repo            domain.SessionRepository
	defaultLanguage string
	rateLimit       int
	rateWindow      time.Duration
	logger          *zerolog.Logger
}

func NewSessionService(repo domain.SessionRepository, cfg config.BotConfig, logger *zerolog.Logger) *SessionService {
	return &SessionService{
		repo:            repo,
		defaultLanguage: cfg.DefaultLanguage,
		rateLimit:       cfg.RateLimitMessages,
		rateWindow:      time.Duration(cfg.RateLimitWindow) * time.Second,
		logger:          logger,
	}
}

func (s *SessionService) GetOrCreateSession(ctx context.Context, userID int64) (*models.Session, error) {
	session, err := s.repo.GetSession(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get session")
		return nil, err
	}
	if session == nil {
		session = &models.Session{
			UserID:   userID,
			Language: s.defaultLanguage,
		}
	}
	if session.Language == "" {
		session.Language = s.defaultLanguage
	}
	return session, nil
}

func (s *SessionService) SaveSession(ctx context.Context, session *models.Session) error {
	return s.repo.SetSession(ctx, session)
}

func (s *SessionService) ClearSession(ctx context.Context, userID int64) error {
	return s.repo.ClearSession(ctx, userID)
}

func (s *SessionService) SetLanguage(ctx context.Context, userID int64, language string) error {
	session, err := s.GetOrCreateSession(ctx, userID)
	if err != nil {
		return err
	}
	session.Language = language
	return s.repo.SetSession(ctx, session)
}

func (s *SessionService) CheckRateLimit(ctx context.Context, userID int64) (bool, error) {
	return s.repo.CheckRateLimit(ctx, userID, s.rateLimit, s.rateWindow)
}
