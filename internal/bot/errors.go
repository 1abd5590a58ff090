package bot

import (
	"errors"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/service"
)

// errorMessage переводит ошибку бизнес-логики в локализованный текст.
func errorMessage(lang string, err error) string {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return i18n.T(lang, i18n.MsgCartEmpty)
	case errors.Is(err, service.ErrInvalidPhone):
		return i18n.T(lang, i18n.MsgInvalidPhone)
	case errors.Is(err, service.ErrInvalidQuantity):
		return i18n.T(lang, i18n.MsgInvalidQuantity)
	case errors.Is(err, service.ErrPromoInvalid):
		return i18n.T(lang, i18n.MsgPromoInvalid)
	case errors.Is(err, service.ErrOrderCreate):
		return i18n.T(lang, i18n.MsgOrderFailed)
	case errors.Is(err, database.ErrNotFound):
		return i18n.T(lang, i18n.MsgProductNotFound)
	default:
		return i18n.T(lang, i18n.MsgGenericError)
	}
}
