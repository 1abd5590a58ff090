package models

import "time"

type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id"`
	Phone           string      `json:"phone"`
	Address         string      `json:"address"`
	Comment         string      `json:"comment"`
	Status          string      `json:"status"`
	TotalPrice      int64       `json:"total_price"`
	PromoCode       string      `json:"promo_code,omitempty"`
	DiscountPercent int64       `json:"discount_percent,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem — снимок позиции корзины на момент оформления заказа.
// Название и цена копируются из товара, чтобы последующие правки
// каталога не меняли историю заказов.
type OrderItem struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	ProductID int64     `json:"product_id"`
	NameUz    string    `json:"name_uz"`
	NameRu    string    `json:"name_ru"`
	Price     int64     `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// Total возвращает стоимость позиции заказа.
func (i *OrderItem) Total() int64 {
	return i.Price * i.Quantity
}
