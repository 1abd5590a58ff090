package database

import (
	"context"
	"fmt"
	"time"
)

// DashboardStats — сводные цифры для панели администратора.
type DashboardStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalOrders    int64 `json:"total_orders"`
	OrdersToday    int64 `json:"orders_today"`
	NewOrders      int64 `json:"new_orders"`
	RevenueToday   int64 `json:"revenue_today"`
	RevenueMonth   int64 `json:"revenue_month"`
	ActiveProducts int64 `json:"active_products"`
}

// DailyStat — выручка и количество заказов за один день.
type DailyStat struct {
	Date       string `json:"date"`
	OrderCount int64  `json:"order_count"`
	Revenue    int64  `json:"revenue"`
}

// ProductStat — популярность товара по количеству заказанных единиц.
type ProductStat struct {
	ProductID int64  `json:"product_id"`
	NameUz    string `json:"name_uz"`
	NameRu    string `json:"name_ru"`
	Quantity  int64  `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

// Отмененные заказы в выручку не входят.
const revenueFilter = `status != 'cancelled'`

func (db *DB) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	queries := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.TotalUsers, `SELECT COUNT(*) FROM users`, nil},
		{&stats.TotalOrders, `SELECT COUNT(*) FROM orders`, nil},
		{&stats.OrdersToday, `SELECT COUNT(*) FROM orders WHERE created_at >= ?`, []interface{}{dayStart}},
		{&stats.NewOrders, `SELECT COUNT(*) FROM orders WHERE status = 'new'`, nil},
		{&stats.RevenueToday, `SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE created_at >= ? AND ` + revenueFilter, []interface{}{dayStart}},
		{&stats.RevenueMonth, `SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE created_at >= ? AND ` + revenueFilter, []interface{}{monthStart}},
		{&stats.ActiveProducts, `SELECT COUNT(*) FROM products WHERE is_available = 1`, nil},
	}

	for _, q := range queries {
		if err := db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
		}
	}
	return &stats, nil
}

// GetDailyStats возвращает выручку по дням за последние days дней.
func (db *DB) GetDailyStats(ctx context.Context, days int) ([]DailyStat, error) {
	since := time.Now().AddDate(0, 0, -days)
	query := `SELECT date(created_at) AS day, COUNT(*), COALESCE(SUM(total_price), 0)
              FROM orders
              WHERE created_at >= ? AND ` + revenueFilter + `
              GROUP BY day ORDER BY day ASC`
	rows, err := db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStat
	for rows.Next() {
		var s DailyStat
		if err := rows.Scan(&s.Date, &s.OrderCount, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetPopularProducts возвращает самые заказываемые товары за период.
func (db *DB) GetPopularProducts(ctx context.Context, since time.Time, limit int) ([]ProductStat, error) {
	query := `SELECT oi.product_id, oi.name_uz, oi.name_ru,
                     SUM(oi.quantity), SUM(oi.price * oi.quantity)
              FROM order_items oi
              JOIN orders o ON o.id = oi.order_id
              WHERE o.created_at >= ? AND o.` + revenueFilter + `
              GROUP BY oi.product_id, oi.name_uz, oi.name_ru
              ORDER BY SUM(oi.quantity) DESC
              LIMIT ?`
	rows, err := db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular products: %w", err)
	}
	defer rows.Close()

	var stats []ProductStat
	for rows.Next() {
		var s ProductStat
		if err := rows.Scan(&s.ProductID, &s.NameUz, &s.NameRu, &s.Quantity, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CountOrdersByStatus группирует заказы по статусу.
func (db *DB) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
