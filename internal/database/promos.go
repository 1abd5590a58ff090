package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fastfoodbot/internal/models"
)

const promoColumns = `id, code, discount_percent, valid_from, valid_to, is_active, created_at, updated_at`

func scanPromo(row interface{ Scan(...interface{}) error }) (*models.PromoCode, error) {
	var p models.PromoCode
	err := row.Scan(
		&p.ID, &p.Code, &p.DiscountPercent, &p.ValidFrom, &p.ValidTo,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) CreatePromoCode(ctx context.Context, p *models.PromoCode) error {
	query := `INSERT INTO promo_codes (code, discount_percent, valid_from, valid_to, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		p.Code, p.DiscountPercent, p.ValidFrom, p.ValidTo, p.IsActive, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (db *DB) UpdatePromoCode(ctx context.Context, p *models.PromoCode) error {
	query := `UPDATE promo_codes SET code = ?, discount_percent = ?, valid_from = ?, valid_to = ?, is_active = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		p.Code, p.DiscountPercent, p.ValidFrom, p.ValidTo, p.IsActive, time.Now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update promo code: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeletePromoCode(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM promo_codes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) GetPromoCode(ctx context.Context, id int64) (*models.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE id = ?`
	return scanPromo(db.QueryRowContext(ctx, query, id))
}

// GetPromoCodeByCode ищет промокод по его тексту. Валидность по датам
// проверяет вызывающий через IsValidAt.
func (db *DB) GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = ?`
	return scanPromo(db.QueryRowContext(ctx, query, code))
}

func (db *DB) ListPromoCodes(ctx context.Context) ([]*models.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY created_at DESC, id DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	defer rows.Close()

	var promos []*models.PromoCode
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}
