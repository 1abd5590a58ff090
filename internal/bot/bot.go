package bot

import (
	"context"
	"os"
	"time"

	"fastfoodbot/internal/config"
	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/events"
	"fastfoodbot/internal/i18n"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Bot struct {
	tgService domain.TelegramService
	config    *config.Config
	repo      domain.Repository
	sessions  domain.SessionManager
	cart      domain.CartService
	checkout  domain.CheckoutService
	orders    domain.OrderService
	catalog   domain.CatalogService
	users     domain.UserService
	eventBus  domain.EventPublisher
	metrics   *Metrics
	logger    *zerolog.Logger
}

func NewBot(
	tgService domain.TelegramService,
	config *config.Config,
	repo domain.Repository,
	sessions domain.SessionManager,
	cart domain.CartService,
	checkout domain.CheckoutService,
	orders domain.OrderService,
	catalog domain.CatalogService,
	users domain.UserService,
	eventBus domain.EventPublisher,
	metrics *Metrics,
	logger *zerolog.Logger,
) (*Bot, error) {
	if eventBus == nil {
		eventBus = events.NewEventBus()
	}

	if logger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &l
	}

	return &Bot{
		tgService: tgService,
		config:    config,
		repo:      repo,
		sessions:  sessions,
		cart:      cart,
		checkout:  checkout,
		orders:    orders,
		catalog:   catalog,
		users:     users,
		eventBus:  eventBus,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tgService.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tgService.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}
	}()

	// Создаем контекст для обработки каждого обновления
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().Str("request_id", requestID).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		var userID int64
		if update.Message != nil {
			userID = update.Message.From.ID
		} else if update.CallbackQuery != nil {
			userID = update.CallbackQuery.From.ID
		}

		if userID == 0 {
			return
		}

		if b.isBlacklisted(userID) {
			return
		}

		b.trackActivity(userID)

		if !b.isManager(userID) {
			allowed, err := b.sessions.CheckRateLimit(updateCtx, userID)
			if err != nil {
				b.logger.Error().Err(err).Int64("user_id", userID).Msg("Rate limit check failed")
			} else if !allowed {
				b.logger.Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
				if update.Message != nil {
					b.sendPlain(update.Message.Chat.ID, "⚠️ Siz juda tez yozyapsiz / Вы отправляете сообщения слишком часто.")
				}
				return
			}
		}

		if update.CallbackQuery != nil {
			b.handleCallbackQuery(updateCtx, update)
			return
		}

		if update.Message == nil {
			return
		}

		b.handleMessage(updateCtx, &update)
	})
}

func (b *Bot) isManager(userID int64) bool {
	return b.users.IsManager(userID)
}

func (b *Bot) isBlacklisted(userID int64) bool {
	return b.users.IsBlacklisted(userID)
}

func (b *Bot) sendPlain(chatID int64, text string) {
	if _, err := b.tgService.SendMessage(chatID, text); err != nil {
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) sendText(chatID int64, lang, key string, args ...interface{}) {
	b.sendPlain(chatID, i18n.T(lang, key, args...))
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) {
	if _, err := b.tgService.SendWithKeyboard(chatID, text, keyboard); err != nil {
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message with keyboard")
	}
}

func (b *Bot) sendWithInline(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message with inline keyboard")
	}
}
