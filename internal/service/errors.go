package service

import "errors"

// Ошибки бизнес-логики. Обработчики бота переводят их в локализованные
// сообщения через errors.Is, поэтому тексты здесь служебные.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrPromoInvalid    = errors.New("promo code invalid or expired")
	ErrUnexpectedInput = errors.New("unexpected checkout input")
	ErrOrderCreate     = errors.New("order creation failed")
)
