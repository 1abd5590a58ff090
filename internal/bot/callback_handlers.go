package bot

import (
	"context"
	"strconv"
	"strings"

	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	cb := update.CallbackQuery
	if b.metrics != nil {
		b.metrics.CallbacksProcessed.Inc()
	}

	// Отвечаем сразу, чтобы у пользователя пропали "часики"
	if err := b.tgService.AnswerCallback(cb.ID, ""); err != nil {
		b.logger.Debug().Err(err).Msg("Failed to answer callback")
	}

	chatID := cb.Message.Chat.ID

	session, err := b.sessions.GetOrCreateSession(ctx, cb.From.ID)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", cb.From.ID).Msg("Failed to load session")
		session = &models.Session{UserID: cb.From.ID, Language: b.config.Bot.DefaultLanguage}
	}
	lang := session.Language

	data := cb.Data
	switch {
	case strings.HasPrefix(data, cbLangPrefix):
		b.handleLanguageChange(ctx, chatID, cb.From.ID, strings.TrimPrefix(data, cbLangPrefix))

	case strings.HasPrefix(data, cbCategoryPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbCategoryPrefix), 10, 64)
		if err != nil {
			b.logger.Warn().Str("data", data).Msg("Bad callback data")
			return
		}
		b.showProducts(ctx, chatID, lang, id)

	case strings.HasPrefix(data, cbAddToCartPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbAddToCartPrefix), 10, 64)
		if err != nil {
			b.logger.Warn().Str("data", data).Msg("Bad callback data")
			return
		}
		b.handleAddToCart(ctx, chatID, session, id)

	case strings.HasPrefix(data, cbProductPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbProductPrefix), 10, 64)
		if err != nil {
			b.logger.Warn().Str("data", data).Msg("Bad callback data")
			return
		}
		product, err := b.catalog.Product(ctx, id)
		if err != nil {
			b.sendPlain(chatID, errorMessage(lang, err))
			return
		}
		b.showProductCard(lang, chatID, product)

	case data == cbViewCart:
		b.showCart(ctx, chatID, session)

	case data == cbClearCart:
		if err := b.cart.Clear(ctx, session); err != nil {
			b.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("Failed to clear cart")
			b.sendText(chatID, lang, i18n.MsgGenericError)
			return
		}
		if err := b.sessions.SaveSession(ctx, session); err != nil {
			b.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("Failed to save session")
		}
		b.sendText(chatID, lang, i18n.MsgCartCleared)

	case data == cbCheckout:
		b.startCheckout(ctx, chatID, session)

	case data == cbBackToCategories:
		b.showCategories(ctx, chatID, lang)

	case data == cbBackToMain:
		b.sendWithKeyboard(chatID, i18n.T(lang, i18n.MsgMainMenu), mainMenuKeyboard(lang))

	default:
		b.logger.Warn().Str("data", data).Msg("Unknown callback data")
	}
}

func (b *Bot) handleLanguageChange(ctx context.Context, chatID, userID int64, lang string) {
	if !i18n.IsSupported(lang) {
		b.logger.Warn().Str("lang", lang).Msg("Unsupported language in callback")
		return
	}

	if err := b.sessions.SetLanguage(ctx, userID, lang); err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to set session language")
		b.sendText(chatID, lang, i18n.MsgGenericError)
		return
	}
	if err := b.users.UpdateUserLanguage(ctx, userID, lang); err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to persist user language")
	}

	b.sendText(chatID, lang, i18n.MsgLanguageChanged)
	b.sendWithKeyboard(chatID, i18n.T(lang, i18n.MsgWelcome), mainMenuKeyboard(lang))
}

func (b *Bot) handleAddToCart(ctx context.Context, chatID int64, session *models.Session, productID int64) {
	lang := session.Language

	line, err := b.cart.AddItem(ctx, session, productID, 1)
	if err != nil {
		b.sendPlain(chatID, errorMessage(lang, err))
		return
	}
	if err := b.sessions.SaveSession(ctx, session); err != nil {
		b.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("Failed to save session")
	}
	b.sendText(chatID, lang, i18n.MsgAddedToCart, line.Name(lang))
}
