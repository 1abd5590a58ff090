package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
)

// CheckoutService ведет пользователя по шагам оформления: телефон,
// адрес, комментарий. От транспорта не зависит: на вход идет уже
// разобранное сообщение, на выходе следующий шаг или готовый заказ.
type CheckoutService struct {
	sessions domain.SessionManager
	orders   domain.OrderService
	logger   *zerolog.Logger
}

func NewCheckoutService(sessions domain.SessionManager, orders domain.OrderService, logger *zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		orders:   orders,
		logger:   logger,
	}
}

// Start начинает оформление. С пустой корзиной мастер не запускается.
func (s *CheckoutService) Start(ctx context.Context, session *models.Session) error {
	if session.CartIsEmpty() {
		return ErrEmptyCart
	}
	session.Step = models.StepAwaitingPhone
	return s.sessions.SaveSession(ctx, session)
}

// Cancel прерывает оформление, корзина остается.
func (s *CheckoutService) Cancel(ctx context.Context, session *models.Session) error {
	session.ResetCheckout()
	return s.sessions.SaveSession(ctx, session)
}

// HandleInput обрабатывает одно сообщение пользователя внутри мастера.
func (s *CheckoutService) HandleInput(ctx context.Context, session *models.Session, input domain.CheckoutInput) (*domain.CheckoutResult, error) {
	switch session.Step {
	case models.StepAwaitingPhone:
		return s.handlePhone(ctx, session, input)
	case models.StepAwaitingAddress:
		return s.handleAddress(ctx, session, input)
	case models.StepAwaitingComment:
		return s.handleComment(ctx, session, input)
	default:
		return nil, ErrUnexpectedInput
	}
}

func (s *CheckoutService) handlePhone(ctx context.Context, session *models.Session, input domain.CheckoutInput) (*domain.CheckoutResult, error) {
	var phone string
	switch {
	case input.Contact != nil:
		// Контакт из Telegram приходит с плюсом и пробелами
		phone = digitsOnly(input.Contact.PhoneNumber)
	default:
		text := strings.TrimSpace(input.Text)
		if !isDigits(text) || len(text) < models.MinPhoneDigits {
			return nil, ErrInvalidPhone
		}
		phone = text
	}

	if len(phone) < models.MinPhoneDigits {
		return nil, ErrInvalidPhone
	}

	session.Phone = phone
	session.Step = models.StepAwaitingAddress
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return &domain.CheckoutResult{NextStep: models.StepAwaitingAddress}, nil
}

func (s *CheckoutService) handleAddress(ctx context.Context, session *models.Session, input domain.CheckoutInput) (*domain.CheckoutResult, error) {
	var address string
	switch {
	case input.Location != nil:
		address = fmt.Sprintf("Location: %f, %f", input.Location.Latitude, input.Location.Longitude)
	default:
		address = strings.TrimSpace(input.Text)
		if address == "" {
			return nil, ErrUnexpectedInput
		}
	}

	session.Address = address
	session.Step = models.StepAwaitingComment
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return &domain.CheckoutResult{NextStep: models.StepAwaitingComment}, nil
}

func (s *CheckoutService) handleComment(ctx context.Context, session *models.Session, input domain.CheckoutInput) (*domain.CheckoutResult, error) {
	comment := strings.TrimSpace(input.Text)
	// «-» означает «без комментария»
	if comment == "-" {
		comment = ""
	}

	order, err := s.orders.CreateOrder(ctx, session, comment)
	if err != nil {
		// Состояние мастера и корзина сохраняются: пользователь может
		// отправить комментарий еще раз после сбоя
		s.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("checkout failed at order creation")
		return nil, errors.Join(ErrOrderCreate, err)
	}

	session.Cart = nil
	session.PromoCode = ""
	session.ResetCheckout()
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		// Заказ создан, потеря сессии не критична
		s.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("failed to save session after order")
	}

	return &domain.CheckoutResult{Order: order, Done: true}, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
