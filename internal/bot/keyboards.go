package bot

import (
	"fmt"

	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Данные callback-кнопок. Числовые суффиксы добавляются через fmt.Sprintf.
const (
	cbLangPrefix       = "lang_"
	cbCategoryPrefix   = "category_"
	cbProductPrefix    = "product_"
	cbAddToCartPrefix  = "add_to_cart_"
	cbViewCart         = "view_cart"
	cbClearCart        = "clear_cart"
	cbCheckout         = "checkout"
	cbBackToCategories = "back_to_categories"
	cbBackToMain       = "back_to_main"
)

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇺🇿 O'zbekcha", cbLangPrefix+models.LangUz),
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", cbLangPrefix+models.LangRu),
		),
	)
}

func mainMenuKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnMenu)),
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnCart)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnMyOrders)),
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnContacts)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnChangeLang)),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func phoneKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(i18n.T(lang, i18n.BtnSharePhone)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnBack)),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func locationKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(i18n.T(lang, i18n.BtnShareLocation)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnBack)),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func categoriesKeyboard(lang string, categories []*models.Category) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name(lang), fmt.Sprintf("%s%d", cbCategoryPrefix, c.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func productsKeyboard(lang string, products []*models.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products)+1)
	for _, p := range products {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name(lang), fmt.Sprintf("%s%d", cbProductPrefix, p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnBack), cbBackToCategories),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func productCardKeyboard(lang string, p *models.Product) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnAddToCart), fmt.Sprintf("%s%d", cbAddToCartPrefix, p.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnViewCart), cbViewCart),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnBack), fmt.Sprintf("%s%d", cbCategoryPrefix, p.CategoryID)),
		),
	)
}

func cartKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnCheckout), cbCheckout),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnClearCart), cbClearCart),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnBack), cbBackToCategories),
		),
	)
}
