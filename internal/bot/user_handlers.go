package bot

import (
	"context"
	"errors"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/models"
	"fastfoodbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMessage(ctx context.Context, update *tgbotapi.Update) {
	msg := update.Message
	if b.metrics != nil {
		b.metrics.MessagesProcessed.Inc()
	}

	session, err := b.sessions.GetOrCreateSession(ctx, msg.From.ID)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to load session")
		session = &models.Session{UserID: msg.From.ID, Language: b.config.Bot.DefaultLanguage}
	}
	lang := session.Language

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, session)
		return
	}

	// Внутри мастера оформления любое сообщение уходит туда
	if session.Step != models.StepNone {
		b.handleCheckoutInput(ctx, msg, session)
		return
	}

	switch text := msg.Text; {
	case b.isButton(text, i18n.BtnMenu):
		b.showCategories(ctx, msg.Chat.ID, lang)
	case b.isButton(text, i18n.BtnCart):
		b.showCart(ctx, msg.Chat.ID, session)
	case b.isButton(text, i18n.BtnMyOrders):
		b.showOrders(ctx, msg.Chat.ID, session)
	case b.isButton(text, i18n.BtnContacts):
		b.showContacts(msg.Chat.ID, lang)
	case b.isButton(text, i18n.BtnChangeLang):
		b.sendWithInline(msg.Chat.ID, i18n.T(lang, i18n.MsgChooseLanguage), languageKeyboard())
	default:
		b.handleFreeText(ctx, msg, session)
	}
}

// isButton сравнивает текст с надписью кнопки на любом из языков:
// пользователь мог сменить язык при открытой старой клавиатуре.
func (b *Bot) isButton(text, key string) bool {
	for _, lang := range i18n.Languages() {
		if text == i18n.T(lang, key) {
			return true
		}
	}
	return false
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, session *models.Session) {
	if b.metrics != nil {
		b.metrics.CommandsProcessed.Inc()
	}

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg, session)
	case "promo":
		b.handlePromo(ctx, msg, session)
	case "orders", "status", "export", "stats":
		if b.isManager(msg.From.ID) {
			b.handleManagerCommand(ctx, msg)
			return
		}
		b.sendText(msg.Chat.ID, session.Language, i18n.MsgMainMenu)
	default:
		b.sendWithKeyboard(msg.Chat.ID, i18n.T(session.Language, i18n.MsgMainMenu), mainMenuKeyboard(session.Language))
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, session *models.Session) {
	user := &models.User{
		TelegramID:   msg.From.ID,
		Username:     msg.From.UserName,
		FirstName:    msg.From.FirstName,
		LastName:     msg.From.LastName,
		LanguageCode: msg.From.LanguageCode,
	}
	if err := b.users.SaveUser(ctx, user); err != nil {
		b.logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to save user")
	}

	// Оборванное оформление при /start сбрасывается, корзина остается
	if session.Step != models.StepNone {
		if err := b.checkout.Cancel(ctx, session); err != nil {
			b.logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to reset checkout")
		}
	}

	b.sendWithInline(msg.Chat.ID, i18n.T(session.Language, i18n.MsgChooseLanguage), languageKeyboard())
}

func (b *Bot) handlePromo(ctx context.Context, msg *tgbotapi.Message, session *models.Session) {
	lang := session.Language

	code := msg.CommandArguments()
	if code == "" {
		b.sendText(msg.Chat.ID, lang, i18n.MsgPromoUsage)
		return
	}

	promo, err := b.orders.ApplyPromo(ctx, session, code)
	if err != nil {
		b.sendPlain(msg.Chat.ID, errorMessage(lang, err))
		return
	}
	if err := b.sessions.SaveSession(ctx, session); err != nil {
		b.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("Failed to save session")
	}
	b.sendText(msg.Chat.ID, lang, i18n.MsgPromoApplied, promo.DiscountPercent)
}

func (b *Bot) handleCheckoutInput(ctx context.Context, msg *tgbotapi.Message, session *models.Session) {
	lang := session.Language

	if b.isButton(msg.Text, i18n.BtnBack) {
		if err := b.checkout.Cancel(ctx, session); err != nil {
			b.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("Failed to cancel checkout")
		}
		b.sendWithKeyboard(msg.Chat.ID, i18n.T(lang, i18n.MsgMainMenu), mainMenuKeyboard(lang))
		return
	}

	input := domain.CheckoutInput{
		Text:     msg.Text,
		Contact:  msg.Contact,
		Location: msg.Location,
	}

	result, err := b.checkout.HandleInput(ctx, session, input)
	if err != nil {
		b.sendPlain(msg.Chat.ID, errorMessage(lang, err))
		return
	}

	switch {
	case result.Done:
		if b.metrics != nil {
			b.metrics.OrdersCreated.Inc()
		}
		text := i18n.T(lang, i18n.MsgOrderAccepted, result.Order.ID, i18n.FormatPrice(result.Order.TotalPrice))
		b.sendWithKeyboard(msg.Chat.ID, text, mainMenuKeyboard(lang))
	case result.NextStep == models.StepAwaitingAddress:
		b.sendWithKeyboard(msg.Chat.ID, i18n.T(lang, i18n.MsgAskAddress), locationKeyboard(lang))
	case result.NextStep == models.StepAwaitingComment:
		b.sendText(msg.Chat.ID, lang, i18n.MsgAskComment)
	}
}

// handleFreeText ищет товар или категорию по введенному названию.
func (b *Bot) handleFreeText(ctx context.Context, msg *tgbotapi.Message, session *models.Session) {
	lang := session.Language

	if product, err := b.catalog.ProductByName(ctx, msg.Text); err == nil {
		b.showProductCard(lang, msg.Chat.ID, product)
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		b.logger.Error().Err(err).Str("query", msg.Text).Msg("Product lookup failed")
	}

	if category, err := b.catalog.CategoryByName(ctx, msg.Text); err == nil {
		b.showProducts(ctx, msg.Chat.ID, lang, category.ID)
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		b.logger.Error().Err(err).Str("query", msg.Text).Msg("Category lookup failed")
	}

	b.sendWithKeyboard(msg.Chat.ID, i18n.T(lang, i18n.MsgMainMenu), mainMenuKeyboard(lang))
}

func (b *Bot) showCategories(ctx context.Context, chatID int64, lang string) {
	categories, err := b.catalog.Categories(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to load categories")
		b.sendText(chatID, lang, i18n.MsgGenericError)
		return
	}
	if len(categories) == 0 {
		b.sendText(chatID, lang, i18n.MsgNoCategories)
		return
	}
	b.sendWithInline(chatID, i18n.T(lang, i18n.MsgChooseCategory), categoriesKeyboard(lang, categories))
}

func (b *Bot) showProducts(ctx context.Context, chatID int64, lang string, categoryID int64) {
	products, err := b.catalog.Products(ctx, categoryID)
	if err != nil {
		b.logger.Error().Err(err).Int64("category_id", categoryID).Msg("Failed to load products")
		b.sendText(chatID, lang, i18n.MsgGenericError)
		return
	}
	if len(products) == 0 {
		b.sendText(chatID, lang, i18n.MsgNoProducts)
		return
	}
	b.sendWithInline(chatID, i18n.T(lang, i18n.MsgChooseProduct), productsKeyboard(lang, products))
}

func (b *Bot) showProductCard(lang string, chatID int64, product *models.Product) {
	caption := i18n.T(lang, i18n.MsgProductCard,
		product.Name(lang), product.Description(lang), i18n.FormatPrice(product.Price))
	keyboard := productCardKeyboard(lang, product)

	if _, err := b.tgService.SendPhoto(chatID, product.PhotoURL, caption, &keyboard); err != nil {
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
		b.logger.Error().Err(err).Int64("product_id", product.ID).Msg("Failed to send product card")
	}
}

func (b *Bot) showCart(ctx context.Context, chatID int64, session *models.Session) {
	lang := session.Language
	if session.CartIsEmpty() {
		b.sendText(chatID, lang, i18n.MsgCartEmpty)
		return
	}
	b.sendWithInline(chatID, b.cart.Render(session), cartKeyboard(lang))
}

func (b *Bot) showOrders(ctx context.Context, chatID int64, session *models.Session) {
	lang := session.Language

	orders, err := b.orders.GetUserOrders(ctx, session.UserID, 5)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("Failed to load orders")
		b.sendText(chatID, lang, i18n.MsgGenericError)
		return
	}
	if len(orders) == 0 {
		b.sendText(chatID, lang, i18n.MsgNoOrders)
		return
	}

	text := i18n.T(lang, i18n.MsgOrdersHeader)
	for _, order := range orders {
		text += i18n.T(lang, i18n.MsgOrderLine,
			order.ID,
			i18n.StatusName(lang, order.Status),
			i18n.FormatPrice(order.TotalPrice),
			order.CreatedAt.Format("02.01.2006 15:04"))
	}
	b.sendPlain(chatID, text)
}

func (b *Bot) showContacts(chatID int64, lang string) {
	b.sendText(chatID, lang, i18n.MsgContacts,
		b.config.Bot.ContactAddress,
		b.config.Bot.ContactPhone,
		b.config.Bot.ContactEmail,
		b.config.Bot.WorkingHours)
}

// startCheckout общий для кнопки и callback: запускает мастер и просит телефон.
func (b *Bot) startCheckout(ctx context.Context, chatID int64, session *models.Session) {
	lang := session.Language

	if err := b.checkout.Start(ctx, session); err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			b.sendText(chatID, lang, i18n.MsgCartEmpty)
			return
		}
		b.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("Failed to start checkout")
		b.sendText(chatID, lang, i18n.MsgGenericError)
		return
	}
	b.sendWithKeyboard(chatID, i18n.T(lang, i18n.MsgAskPhone), phoneKeyboard(lang))
}
