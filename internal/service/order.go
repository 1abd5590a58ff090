package service

import (
	"context"
	"errors"
	"time"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/events"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
)

type OrderService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	notify   domain.NotifyWorker
	logger   *zerolog.Logger
}

func NewOrderService(repo domain.Repository, eventBus domain.EventPublisher, notify domain.NotifyWorker, logger *zerolog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		eventBus: eventBus,
		notify:   notify,
		logger:   logger,
	}
}

// CreateOrder собирает заказ из снимка корзины и сохраняет его.
// Сессию не трогает: корзину очищает вызывающий и только после того,
// как запись прошла успешно.
func (s *OrderService) CreateOrder(ctx context.Context, session *models.Session, comment string) (*models.Order, error) {
	snapshot := session.CartSnapshot()
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	var total int64
	items := make([]models.OrderItem, 0, len(snapshot))
	for i := range snapshot {
		line := &snapshot[i]
		total += line.Total()
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			NameUz:    line.NameUz,
			NameRu:    line.NameRu,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	order := &models.Order{
		UserID:     session.UserID,
		Phone:      session.Phone,
		Address:    session.Address,
		Comment:    comment,
		Status:     models.StatusNew,
		TotalPrice: total,
		Items:      items,
	}

	// Промокод применяется в момент оформления. Если за время набора
	// заказа он истек, заказ проходит без скидки.
	if session.PromoCode != "" {
		promo, err := s.repo.GetPromoCodeByCode(ctx, session.PromoCode)
		if err == nil && promo.IsValidAt(time.Now()) {
			order.PromoCode = promo.Code
			order.DiscountPercent = promo.DiscountPercent
			order.TotalPrice = promo.Apply(total)
		} else if err != nil && !errors.Is(err, database.ErrNotFound) {
			s.logger.Warn().Err(err).Str("code", session.PromoCode).Msg("promo lookup failed, creating order without discount")
		}
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		s.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("failed to create order")
		return nil, err
	}

	s.publishEvent(events.EventOrderCreated, order, 0)

	if s.notify != nil {
		if err := s.notify.EnqueueOrder(ctx, order); err != nil {
			// Заказ уже записан, уведомление доедет через очередь ретраев
			s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to enqueue manager notification")
		}
	}

	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID int64, limit int) ([]*models.Order, error) {
	return s.repo.GetUserOrders(ctx, userID, limit)
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err == nil {
		s.publishEvent(events.EventOrderStatusChanged, order, 0)
	}
	return nil
}

// ApplyPromo проверяет код и запоминает его в сессии. Скидка считается
// позже, при оформлении заказа.
func (s *OrderService) ApplyPromo(ctx context.Context, session *models.Session, code string) (*models.PromoCode, error) {
	promo, err := s.repo.GetPromoCodeByCode(ctx, code)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrPromoInvalid
	}
	if err != nil {
		return nil, err
	}
	if !promo.IsValidAt(time.Now()) {
		return nil, ErrPromoInvalid
	}

	session.PromoCode = promo.Code
	s.publishEvent(events.EventPromoApplied, &models.Order{UserID: session.UserID, PromoCode: promo.Code, DiscountPercent: promo.DiscountPercent}, 0)
	return promo, nil
}

func (s *OrderService) publishEvent(eventType string, order *models.Order, changedBy int64) {
	if s.eventBus == nil {
		return
	}
	payload := events.OrderEventPayload{
		OrderID:         order.ID,
		UserID:          order.UserID,
		Phone:           order.Phone,
		Address:         order.Address,
		Status:          order.Status,
		TotalPrice:      order.TotalPrice,
		PromoCode:       order.PromoCode,
		DiscountPercent: order.DiscountPercent,
		ItemCount:       len(order.Items),
		CreatedAt:       order.CreatedAt,
		ChangedBy:       changedBy,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
