package service

import (
	"context"

	"fastfoodbot/internal/config"
	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo         domain.Repository
	config       *config.Config
	logger       *zerolog.Logger
	managersMap  map[int64]bool
	blacklistMap map[int64]bool
}

func NewUserService(repo domain.Repository, config *config.Config, logger *zerolog.Logger) *UserService {
	managersMap := make(map[int64]bool)
	for _, id := range config.Managers {
		managersMap[id] = true
	}

	blacklistMap := make(map[int64]bool)
	for _, id := range config.Blacklist {
		blacklistMap[id] = true
	}

	return &UserService{
		repo:         repo,
		config:       config,
		logger:       logger,
		managersMap:  managersMap,
		blacklistMap: blacklistMap,
	}
}

func (s *UserService) IsManager(userID int64) bool {
	return s.managersMap[userID]
}

func (s *UserService) IsBlacklisted(userID int64) bool {
	return s.blacklistMap[userID]
}

func (s *UserService) SaveUser(ctx context.Context, user *models.User) error {
	user.IsBlacklisted = s.IsBlacklisted(user.TelegramID)
	if user.LanguageCode == "" {
		user.LanguageCode = s.config.Bot.DefaultLanguage
	}
	return s.repo.CreateOrUpdateUser(ctx, user)
}

func (s *UserService) UpdateUserLanguage(ctx context.Context, telegramID int64, languageCode string) error {
	return s.repo.UpdateUserLanguage(ctx, telegramID, languageCode)
}

func (s *UserService) UpdateUserPhone(ctx context.Context, telegramID int64, phone string) error {
	return s.repo.UpdateUserPhone(ctx, telegramID, phone)
}

func (s *UserService) UpdateUserActivity(ctx context.Context, telegramID int64) error {
	return s.repo.UpdateUserActivity(ctx, telegramID)
}
