package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_CartHelpers(t *testing.T) {
	s := &Session{
		UserID:   1,
		Language: LangUz,
		Cart: []CartLine{
			{ProductID: 10, NameUz: "Burger", NameRu: "Бургер", Price: 25000, Quantity: 2},
			{ProductID: 11, NameUz: "Kola", NameRu: "Кола", Price: 8000, Quantity: 1},
		},
	}

	t.Run("CartLine", func(t *testing.T) {
		line := s.CartLine(10)
		assert.NotNil(t, line)
		assert.Equal(t, int64(2), line.Quantity)
		assert.Nil(t, s.CartLine(999))
	})

	t.Run("LineName", func(t *testing.T) {
		line := s.CartLine(10)
		assert.Equal(t, "Burger", line.Name(LangUz))
		assert.Equal(t, "Бургер", line.Name(LangRu))
		// неизвестный язык падает на узбекский
		assert.Equal(t, "Burger", line.Name("en"))
	})

	t.Run("LineTotal", func(t *testing.T) {
		assert.Equal(t, int64(50000), s.CartLine(10).Total())
		assert.Equal(t, int64(8000), s.CartLine(11).Total())
	})

	t.Run("Snapshot", func(t *testing.T) {
		snapshot := s.CartSnapshot()
		assert.Len(t, snapshot, 2)

		// снимок не зависит от дальнейших изменений корзины
		s.Cart[0].Quantity = 100
		assert.Equal(t, int64(2), snapshot[0].Quantity)
		s.Cart[0].Quantity = 2

		empty := &Session{}
		assert.Nil(t, empty.CartSnapshot())
	})

	t.Run("ResetCheckout", func(t *testing.T) {
		s.Step = StepAwaitingAddress
		s.Phone = "998901234567"
		s.ResetCheckout()
		assert.Equal(t, StepNone, s.Step)
		assert.Empty(t, s.Phone)
		assert.Len(t, s.Cart, 2, "корзина не очищается при сбросе мастера")
	})
}

func TestPromoCode_Validity(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	promo := &PromoCode{
		Code:            "SUMMER10",
		DiscountPercent: 10,
		ValidFrom:       now.AddDate(0, -1, 0),
		ValidTo:         now.AddDate(0, 1, 0),
		IsActive:        true,
	}

	assert.True(t, promo.IsValidAt(now))
	assert.False(t, promo.IsValidAt(now.AddDate(0, 2, 0)))
	assert.False(t, promo.IsValidAt(now.AddDate(0, -2, 0)))

	promo.IsActive = false
	assert.False(t, promo.IsValidAt(now))
}

func TestPromoCode_Apply(t *testing.T) {
	promo := &PromoCode{DiscountPercent: 10}
	assert.Equal(t, int64(52200), promo.Apply(58000))

	promo.DiscountPercent = 150
	assert.Equal(t, int64(0), promo.Apply(58000))

	promo.DiscountPercent = -5
	assert.Equal(t, int64(58000), promo.Apply(58000))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, IsValidOrderStatus(s))
	}
	assert.False(t, IsValidOrderStatus("shipped"))
	assert.False(t, IsValidOrderStatus(""))
}
