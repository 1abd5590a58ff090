package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fastfoodbot/internal/models"
)

// CreateOrder сохраняет заказ вместе с позициями в одной транзакции.
// Либо записывается всё, либо ничего.
func (db *DB) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, phone, address, comment, status, total_price, promo_code, discount_percent, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.Phone, order.Address, order.Comment, order.Status,
		order.TotalPrice, order.PromoCode, order.DiscountPercent, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get order id: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		res, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, name_uz, name_ru, price, quantity, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.NameUz, item.NameRu, item.Price, item.Quantity, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get order item id: %w", err)
		}
		item.ID = itemID
		item.OrderID = orderID
		item.CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.ID = orderID
	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

const orderColumns = `id, user_id, phone, address, comment, status, total_price, promo_code, discount_percent, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Phone, &o.Address, &o.Comment, &o.Status,
		&o.TotalPrice, &o.PromoCode, &o.DiscountPercent, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrder возвращает заказ со всеми позициями.
func (db *DB) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	order, err := scanOrder(db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	items, err := db.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (db *DB) getOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, order_id, product_id, name_uz, name_ru, price, quantity, created_at
         FROM order_items WHERE order_id = ? ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.NameUz, &item.NameRu,
			&item.Price, &item.Quantity, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetUserOrders возвращает заказы пользователя, свежие первыми.
func (db *DB) GetUserOrders(ctx context.Context, userID int64, limit int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return db.queryOrders(ctx, query, args...)
}

// ListOrders возвращает заказы, опционально отфильтрованные по статусу.
func (db *DB) ListOrders(ctx context.Context, status string, limit, offset int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	return db.queryOrders(ctx, query, args...)
}

// ListOrdersSince возвращает заказы, созданные не раньше указанного момента.
// Используется выгрузкой отчетов.
func (db *DB) ListOrdersSince(ctx context.Context, since time.Time) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE created_at >= ? ORDER BY created_at ASC, id ASC`
	return db.queryOrders(ctx, query, since)
}

func (db *DB) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := db.getOrderItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

// UpdateOrderStatus переводит заказ в новый статус. Неизвестный статус
// отклоняется до обращения к БД.
func (db *DB) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	if !models.IsValidOrderStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}
