package models

import "time"

type PromoCode struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int64     `json:"discount_percent"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsValidAt проверяет, действует ли промокод в указанный момент.
func (p *PromoCode) IsValidAt(now time.Time) bool {
	return p.IsActive && !now.Before(p.ValidFrom) && !now.After(p.ValidTo)
}

// Apply применяет скидку к сумме. Отрицательный итог невозможен:
// процент ограничен диапазоном 0..100.
func (p *PromoCode) Apply(total int64) int64 {
	percent := p.DiscountPercent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return total - total*percent/100
}
