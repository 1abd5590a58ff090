package database

import (
	"context"
	"testing"
	"time"

	"fastfoodbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user := &models.User{TelegramID: 1, FirstName: "U", LanguageCode: models.LangUz, LastActivity: time.Now()}
	require.NoError(t, db.CreateOrUpdateUser(ctx, user))

	cat := createTestCategory(t, db, "Lavash", "Лаваш")
	createTestProduct(t, db, cat.ID, "Lavash", "Лаваш", 25000)

	order := newTestOrder(1)
	require.NoError(t, db.CreateOrder(ctx, order))

	cancelled := newTestOrder(1)
	require.NoError(t, db.CreateOrder(ctx, cancelled))
	require.NoError(t, db.UpdateOrderStatus(ctx, cancelled.ID, models.StatusCancelled))

	stats, err := db.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.OrdersToday)
	assert.Equal(t, int64(1), stats.NewOrders)
	// отмененный заказ не попадает в выручку
	assert.Equal(t, int64(58000), stats.RevenueToday)
	assert.Equal(t, int64(1), stats.ActiveProducts)
}

func TestGetDailyStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	order := newTestOrder(1)
	require.NoError(t, db.CreateOrder(ctx, order))

	stats, err := db.GetDailyStats(ctx, 7)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].OrderCount)
	assert.Equal(t, int64(58000), stats[0].Revenue)
}

func TestGetPopularProducts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	order := newTestOrder(1)
	require.NoError(t, db.CreateOrder(ctx, order))

	popular, err := db.GetPopularProducts(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	// лаваш заказан дважды и идет первым
	assert.Equal(t, "Лаваш с говядиной", popular[0].NameRu)
	assert.Equal(t, int64(2), popular[0].Quantity)
	assert.Equal(t, int64(50000), popular[0].Revenue)
}

func TestCountOrdersByStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	a := newTestOrder(1)
	require.NoError(t, db.CreateOrder(ctx, a))
	b := newTestOrder(1)
	require.NoError(t, db.CreateOrder(ctx, b))
	require.NoError(t, db.UpdateOrderStatus(ctx, b.ID, models.StatusConfirmed))

	counts, err := db.CountOrdersByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.StatusNew])
	assert.Equal(t, int64(1), counts[models.StatusConfirmed])
}
