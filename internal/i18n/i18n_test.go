package i18n

import (
	"testing"

	"fastfoodbot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	t.Run("KnownKey", func(t *testing.T) {
		assert.Equal(t, "Savat bo'sh!", T(models.LangUz, MsgCartEmpty))
		assert.Equal(t, "Корзина пуста!", T(models.LangRu, MsgCartEmpty))
	})

	t.Run("UnknownLanguageFallsBack", func(t *testing.T) {
		assert.Equal(t, T(models.LangUz, MsgCartEmpty), T("en", MsgCartEmpty))
		assert.Equal(t, T(models.LangUz, MsgCartEmpty), T("", MsgCartEmpty))
	})

	t.Run("UnknownKeyReturnedVerbatim", func(t *testing.T) {
		assert.Equal(t, "no_such_key", T(models.LangRu, "no_such_key"))
	})

	t.Run("Sprintf", func(t *testing.T) {
		got := T(models.LangRu, MsgAddedToCart, "Кола")
		assert.Equal(t, "Кола добавлен в корзину!", got)
	})
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "✅ Подтвержден", StatusName(models.LangRu, models.StatusConfirmed))
	assert.Equal(t, "⏳ Kutilmoqda", StatusName(models.LangUz, models.StatusNew))
	// неизвестный статус возвращается как есть
	assert.Equal(t, "weird", StatusName(models.LangUz, "weird"))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(models.LangUz))
	assert.True(t, IsSupported(models.LangRu))
	assert.False(t, IsSupported("en"))
	assert.False(t, IsSupported(""))
}

func TestEveryKeyPresentInAllLanguages(t *testing.T) {
	for _, lang := range Languages() {
		for key := range messages[DefaultLanguage] {
			_, ok := messages[lang][key]
			assert.True(t, ok, "missing key %q for language %q", key, lang)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0", FormatPrice(0))
	assert.Equal(t, "999", FormatPrice(999))
	assert.Equal(t, "8 000", FormatPrice(8000))
	assert.Equal(t, "58 000", FormatPrice(58000))
	assert.Equal(t, "1 250 000", FormatPrice(1250000))
	assert.Equal(t, "-25 000", FormatPrice(-25000))
}
