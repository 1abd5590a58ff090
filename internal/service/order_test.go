package service

import (
	"context"
	"os"
	"testing"
	"time"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/events"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotify struct {
	orders []*models.Order
	err    error
}

func (r *recordingNotify) EnqueueOrder(ctx context.Context, order *models.Order) error {
	if r.err != nil {
		return r.err
	}
	r.orders = append(r.orders, order)
	return nil
}

func setupOrderService(t *testing.T) (*OrderService, *database.DB, *events.EventBus, *recordingNotify) {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewEventBus()
	notify := &recordingNotify{}
	return NewOrderService(db, bus, notify, &logger), db, bus, notify
}

func checkoutReadySession() *models.Session {
	return &models.Session{
		UserID:   100,
		Language: models.LangUz,
		Phone:    "998901234567",
		Address:  "Chilonzor 5",
		Cart: []models.CartLine{
			{ProductID: 1, NameUz: "Mol go'shtli lavash", NameRu: "Лаваш с говядиной", Price: 25000, Quantity: 2},
			{ProductID: 2, NameUz: "Cola", NameRu: "Кола", Price: 8000, Quantity: 1},
		},
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, db, bus, notify := setupOrderService(t)
	ctx := context.Background()

	var published []*events.Event
	bus.Subscribe(events.EventOrderCreated, func(e *events.Event) error {
		published = append(published, e)
		return nil
	})

	session := checkoutReadySession()
	order, err := svc.CreateOrder(ctx, session, "побыстрее")
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, int64(58000), order.TotalPrice)
	assert.Equal(t, "побыстрее", order.Comment)
	require.Len(t, order.Items, 2)

	// заказ лег в БД вместе с позициями
	stored, err := db.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(58000), stored.TotalPrice)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Лаваш с говядиной", stored.Items[0].NameRu)

	require.Len(t, published, 1)
	require.Len(t, notify.orders, 1)
	assert.Equal(t, order.ID, notify.orders[0].ID)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	svc, _, _, _ := setupOrderService(t)

	session := checkoutReadySession()
	session.Cart = nil

	_, err := svc.CreateOrder(context.Background(), session, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrder_WithPromo(t *testing.T) {
	svc, db, _, _ := setupOrderService(t)
	ctx := context.Background()

	promo := &models.PromoCode{
		Code:            "LAVASH10",
		DiscountPercent: 10,
		ValidFrom:       time.Now().Add(-time.Hour),
		ValidTo:         time.Now().Add(time.Hour),
		IsActive:        true,
	}
	require.NoError(t, db.CreatePromoCode(ctx, promo))

	session := checkoutReadySession()
	session.PromoCode = "LAVASH10"

	order, err := svc.CreateOrder(ctx, session, "")
	require.NoError(t, err)
	assert.Equal(t, "LAVASH10", order.PromoCode)
	assert.Equal(t, int64(10), order.DiscountPercent)
	// 58000 - 10%
	assert.Equal(t, int64(52200), order.TotalPrice)
}

func TestOrderService_CreateOrder_ExpiredPromoIgnored(t *testing.T) {
	svc, db, _, _ := setupOrderService(t)
	ctx := context.Background()

	promo := &models.PromoCode{
		Code:            "OLD",
		DiscountPercent: 50,
		ValidFrom:       time.Now().Add(-48 * time.Hour),
		ValidTo:         time.Now().Add(-24 * time.Hour),
		IsActive:        true,
	}
	require.NoError(t, db.CreatePromoCode(ctx, promo))

	session := checkoutReadySession()
	session.PromoCode = "OLD"

	order, err := svc.CreateOrder(ctx, session, "")
	require.NoError(t, err)
	assert.Empty(t, order.PromoCode)
	assert.Equal(t, int64(58000), order.TotalPrice)
}

func TestOrderService_CreateOrder_NotifyFailureDoesNotFailOrder(t *testing.T) {
	svc, _, _, notify := setupOrderService(t)
	notify.err = assert.AnError

	order, err := svc.CreateOrder(context.Background(), checkoutReadySession(), "")
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	svc, _, bus, _ := setupOrderService(t)
	ctx := context.Background()

	var statusEvents int
	bus.Subscribe(events.EventOrderStatusChanged, func(e *events.Event) error {
		statusEvents++
		return nil
	})

	order, err := svc.CreateOrder(ctx, checkoutReadySession(), "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.StatusConfirmed))
	assert.Equal(t, 1, statusEvents)

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	err = svc.UpdateStatus(ctx, order.ID, "bogus")
	assert.ErrorIs(t, err, database.ErrInvalidStatus)
}

func TestOrderService_ApplyPromo(t *testing.T) {
	svc, db, _, _ := setupOrderService(t)
	ctx := context.Background()

	promo := &models.PromoCode{
		Code:            "HOT15",
		DiscountPercent: 15,
		ValidFrom:       time.Now().Add(-time.Hour),
		ValidTo:         time.Now().Add(time.Hour),
		IsActive:        true,
	}
	require.NoError(t, db.CreatePromoCode(ctx, promo))

	session := checkoutReadySession()

	t.Run("Valid", func(t *testing.T) {
		got, err := svc.ApplyPromo(ctx, session, "HOT15")
		require.NoError(t, err)
		assert.Equal(t, int64(15), got.DiscountPercent)
		assert.Equal(t, "HOT15", session.PromoCode)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := svc.ApplyPromo(ctx, session, "NOPE")
		assert.ErrorIs(t, err, ErrPromoInvalid)
	})

	t.Run("Inactive", func(t *testing.T) {
		promo.IsActive = false
		require.NoError(t, db.UpdatePromoCode(ctx, promo))

		_, err := svc.ApplyPromo(ctx, session, "HOT15")
		assert.ErrorIs(t, err, ErrPromoInvalid)
	})
}

func TestOrderService_GetUserOrders(t *testing.T) {
	svc, _, _, _ := setupOrderService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, checkoutReadySession(), "")
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, checkoutReadySession(), "")
	require.NoError(t, err)

	orders, err := svc.GetUserOrders(ctx, 100, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
