package i18n

import (
	"fmt"

	"fastfoodbot/internal/models"
)

// Ключи сообщений. Текст живет только здесь: обработчики не содержат
// пользовательских строк и не ветвятся по языку.
const (
	MsgChooseLanguage  = "choose_language"
	MsgLanguageChanged = "language_changed"
	MsgWelcome         = "welcome"
	MsgMainMenu        = "main_menu"
	MsgChooseCategory  = "choose_category"
	MsgChooseProduct   = "choose_product"
	MsgNoCategories    = "no_categories"
	MsgNoProducts      = "no_products"
	MsgProductNotFound = "product_not_found"
	MsgProductCard     = "product_card"
	MsgAddedToCart     = "added_to_cart"
	MsgCartHeader      = "cart_header"
	MsgCartLine        = "cart_line"
	MsgCartTotal       = "cart_total"
	MsgCartEmpty       = "cart_empty"
	MsgCartCleared     = "cart_cleared"
	MsgAskPhone        = "ask_phone"
	MsgAskAddress      = "ask_address"
	MsgAskComment      = "ask_comment"
	MsgInvalidPhone    = "invalid_phone"
	MsgInvalidQuantity = "invalid_quantity"
	MsgOrderAccepted   = "order_accepted"
	MsgOrderFailed     = "order_failed"
	MsgNoOrders        = "no_orders"
	MsgOrdersHeader    = "orders_header"
	MsgOrderLine       = "order_line"
	MsgOrderStatus     = "order_status"
	MsgPromoApplied    = "promo_applied"
	MsgPromoInvalid    = "promo_invalid"
	MsgPromoUsage      = "promo_usage"
	MsgContacts        = "contacts"
	MsgGenericError    = "generic_error"

	BtnMenu          = "btn_menu"
	BtnCart          = "btn_cart"
	BtnMyOrders      = "btn_my_orders"
	BtnContacts      = "btn_contacts"
	BtnChangeLang    = "btn_change_lang"
	BtnBack          = "btn_back"
	BtnCheckout      = "btn_checkout"
	BtnClearCart     = "btn_clear_cart"
	BtnViewCart      = "btn_view_cart"
	BtnAddToCart     = "btn_add_to_cart"
	BtnSharePhone    = "btn_share_phone"
	BtnShareLocation = "btn_share_location"
)

var messages = map[string]map[string]string{
	models.LangUz: {
		MsgChooseLanguage:  "🌐 Tilni tanlang / Выберите язык",
		MsgLanguageChanged: "✅ Til muvaffaqiyatli o'zgartirildi!",
		MsgWelcome:         "🍽️ Fast Food botiga xush kelibsiz!\n\n🍔 Menyu — mahsulotlar ro'yxati\n🛒 Savat — tanlangan mahsulotlar\n📦 Buyurtmalarim — buyurtmalar tarixi\n💬 Aloqa — biz bilan bog'lanish",
		MsgMainMenu:        "Bosh menyu:",
		MsgChooseCategory:  "Kategoriyalardan birini tanlang:",
		MsgChooseProduct:   "Mahsulotlardan birini tanlang:",
		MsgNoCategories:    "Hozircha kategoriyalar mavjud emas.",
		MsgNoProducts:      "Bu kategoriyada mahsulotlar mavjud emas.",
		MsgProductNotFound: "Mahsulot topilmadi.",
		MsgProductCard:     "<b>%s</b>\n\n%s\n\nNarxi: %s so'm",
		MsgAddedToCart:     "%s savatga qo'shildi!",
		MsgCartHeader:      "🛒 Savatingiz:\n\n",
		MsgCartLine:        "%s x %d = %s so'm\n",
		MsgCartTotal:       "\nJami: %s so'm",
		MsgCartEmpty:       "Savat bo'sh!",
		MsgCartCleared:     "Savat tozalandi!",
		MsgAskPhone:        "Iltimos, telefon raqamingizni yuboring:",
		MsgAskAddress:      "Iltimos, manzilingizni yuboring:",
		MsgAskComment:      "Buyurtmangizga izoh qoldirishingiz mumkin (agar kerak bo'lsa, «-» yuboring):",
		MsgInvalidPhone:    "Iltimos, to'g'ri telefon raqam kiriting yoki «Raqamni ulashish» tugmasini bosing!",
		MsgInvalidQuantity: "Mahsulot soni noto'g'ri.",
		MsgOrderAccepted:   "Buyurtmangiz qabul qilindi! Tez orada siz bilan bog'lanamiz.\n\nBuyurtma raqami: #%d\nJami narx: %s so'm",
		MsgOrderFailed:     "Buyurtmani rasmiylashtirishda xatolik yuz berdi. Iltimos, qayta urinib ko'ring.",
		MsgNoOrders:        "Sizda hali buyurtmalar yo'q.",
		MsgOrdersHeader:    "📋 Buyurtmalarim:\n\n",
		MsgOrderLine:       "Buyurtma #%d\nHolat: %s\nJami: %s so'm\nSana: %s\n\n",
		MsgOrderStatus:     "Buyurtma raqami: #%d\nHolati: %s\nJami narx: %s so'm\nSana: %s",
		MsgPromoApplied:    "✅ Promokod qo'llandi: -%d%%",
		MsgPromoInvalid:    "❌ Promokod topilmadi yoki muddati o'tgan.",
		MsgPromoUsage:      "Promokodni quyidagicha yuboring: /promo KOD",
		MsgContacts:        "📞 Aloqa ma'lumotlari:\n\n📍 Manzil: %s\n📱 Telefon: %s\n📧 Email: %s\n🕒 Ish vaqti: %s",
		MsgGenericError:    "Xatolik yuz berdi. Iltimos, qayta urinib ko'ring.",

		BtnMenu:          "🍔 Menyu",
		BtnCart:          "🛒 Savat",
		BtnMyOrders:      "📦 Buyurtmalarim",
		BtnContacts:      "💬 Aloqa",
		BtnChangeLang:    "🌐 Tilni o'zgartirish",
		BtnBack:          "⬅️ Orqaga",
		BtnCheckout:      "✅ Buyurtma berish",
		BtnClearCart:     "❌ Savatni tozalash",
		BtnViewCart:      "🛒 Savatni ko'rish",
		BtnAddToCart:     "🛒 Savatga qo'shish",
		BtnSharePhone:    "📱 Raqamni ulashish",
		BtnShareLocation: "📍 Joylashuvni ulashish",
	},
	models.LangRu: {
		MsgChooseLanguage:  "🌐 Tilni tanlang / Выберите язык",
		MsgLanguageChanged: "✅ Язык успешно изменен!",
		MsgWelcome:         "🍽️ Добро пожаловать в Fast Food бот!\n\n🍔 Меню — список продуктов\n🛒 Корзина — выбранные товары\n📦 Мои заказы — история заказов\n💬 Контакты — связаться с нами",
		MsgMainMenu:        "Главное меню:",
		MsgChooseCategory:  "Выберите категорию:",
		MsgChooseProduct:   "Выберите товар:",
		MsgNoCategories:    "Пока нет доступных категорий.",
		MsgNoProducts:      "В этой категории нет товаров.",
		MsgProductNotFound: "Товар не найден.",
		MsgProductCard:     "<b>%s</b>\n\n%s\n\nЦена: %s сум",
		MsgAddedToCart:     "%s добавлен в корзину!",
		MsgCartHeader:      "🛒 Ваша корзина:\n\n",
		MsgCartLine:        "%s x %d = %s сум\n",
		MsgCartTotal:       "\nИтого: %s сум",
		MsgCartEmpty:       "Корзина пуста!",
		MsgCartCleared:     "Корзина очищена!",
		MsgAskPhone:        "Пожалуйста, отправьте ваш номер телефона:",
		MsgAskAddress:      "Пожалуйста, отправьте ваш адрес:",
		MsgAskComment:      "Вы можете оставить комментарий к заказу (если не нужно, отправьте «-»):",
		MsgInvalidPhone:    "Пожалуйста, введите правильный номер телефона или нажмите кнопку «Поделиться номером»!",
		MsgInvalidQuantity: "Некорректное количество товара.",
		MsgOrderAccepted:   "Ваш заказ принят! Мы свяжемся с вами в ближайшее время.\n\nНомер заказа: #%d\nОбщая сумма: %s сум",
		MsgOrderFailed:     "Не удалось оформить заказ. Пожалуйста, попробуйте еще раз.",
		MsgNoOrders:        "У вас пока нет заказов.",
		MsgOrdersHeader:    "📋 Мои заказы:\n\n",
		MsgOrderLine:       "Заказ #%d\nСтатус: %s\nИтого: %s сум\nДата: %s\n\n",
		MsgOrderStatus:     "Номер заказа: #%d\nСтатус: %s\nОбщая сумма: %s сум\nДата: %s",
		MsgPromoApplied:    "✅ Промокод применен: -%d%%",
		MsgPromoInvalid:    "❌ Промокод не найден или истек.",
		MsgPromoUsage:      "Отправьте промокод так: /promo КОД",
		MsgContacts:        "📞 Контактная информация:\n\n📍 Адрес: %s\n📱 Телефон: %s\n📧 Email: %s\n🕒 Время работы: %s",
		MsgGenericError:    "Произошла ошибка. Пожалуйста, попробуйте еще раз.",

		BtnMenu:          "🍔 Меню",
		BtnCart:          "🛒 Корзина",
		BtnMyOrders:      "📦 Мои заказы",
		BtnContacts:      "💬 Контакты",
		BtnChangeLang:    "🌐 Сменить язык",
		BtnBack:          "⬅️ Назад",
		BtnCheckout:      "✅ Оформить заказ",
		BtnClearCart:     "❌ Очистить корзину",
		BtnViewCart:      "🛒 Посмотреть корзину",
		BtnAddToCart:     "🛒 Добавить в корзину",
		BtnSharePhone:    "📱 Поделиться номером",
		BtnShareLocation: "📍 Поделиться местоположением",
	},
}

// Локализованные названия статусов заказа.
var statusNames = map[string]map[string]string{
	models.LangUz: {
		models.StatusNew:       "⏳ Kutilmoqda",
		models.StatusConfirmed: "✅ Tasdiqlangan",
		models.StatusPreparing: "🔄 Tayyorlanmoqda",
		models.StatusReady:     "✅ Tayyor",
		models.StatusDelivered: "✅ Yetkazib berilgan",
		models.StatusCancelled: "❌ Bekor qilingan",
	},
	models.LangRu: {
		models.StatusNew:       "⏳ В ожидании",
		models.StatusConfirmed: "✅ Подтвержден",
		models.StatusPreparing: "🔄 Готовится",
		models.StatusReady:     "✅ Готов",
		models.StatusDelivered: "✅ Доставлен",
		models.StatusCancelled: "❌ Отменен",
	},
}

// DefaultLanguage используется для неизвестных кодов языка.
const DefaultLanguage = models.LangUz

func normalize(lang string) string {
	if _, ok := messages[lang]; !ok {
		return DefaultLanguage
	}
	return lang
}

// T возвращает локализованное сообщение по ключу, подставляя аргументы.
// Неизвестный язык откатывается на язык по умолчанию, неизвестный ключ
// возвращается как есть — так ошибка видна в чате, а не молча теряется.
func T(lang, key string, args ...interface{}) string {
	msg, ok := messages[normalize(lang)][key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// StatusName возвращает локализованное название статуса заказа.
func StatusName(lang, status string) string {
	if name, ok := statusNames[normalize(lang)][status]; ok {
		return name
	}
	return status
}

// IsSupported сообщает, поддерживается ли код языка.
func IsSupported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// Languages возвращает поддерживаемые коды языков.
func Languages() []string {
	return []string{models.LangUz, models.LangRu}
}

// FormatPrice форматирует сумму в so'm с разделителями тысяч.
func FormatPrice(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if amount < 0 {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if amount < 0 {
			return "-" + s
		}
		return s
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	if amount < 0 {
		return "-" + string(out)
	}
	return string(out)
}
