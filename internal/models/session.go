package models

// CartLine — одна позиция корзины. Внутри корзины товар встречается
// не более одного раза: повторное добавление увеличивает Quantity.
type CartLine struct {
	ProductID int64  `json:"product_id"`
	NameUz    string `json:"name_uz"`
	NameRu    string `json:"name_ru"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// Name возвращает название позиции на выбранном языке.
func (l *CartLine) Name(lang string) string {
	if lang == LangRu {
		return l.NameRu
	}
	return l.NameUz
}

// Total возвращает стоимость позиции.
func (l *CartLine) Total() int64 {
	return l.Price * l.Quantity
}

// Session — состояние пользователя между сообщениями: язык, корзина и
// шаг мастера оформления. Живет в Redis (или в памяти при его
// недоступности) и не переживает сброс хранилища — это осознанно.
type Session struct {
	UserID    int64      `json:"user_id"`
	Language  string     `json:"language"`
	Cart      []CartLine `json:"cart,omitempty"`
	Step      string     `json:"step,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	PromoCode string     `json:"promo_code,omitempty"`
}

// CartLine возвращает позицию корзины по товару или nil.
func (s *Session) CartLine(productID int64) *CartLine {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID {
			return &s.Cart[i]
		}
	}
	return nil
}

// CartIsEmpty сообщает, пуста ли корзина.
func (s *Session) CartIsEmpty() bool {
	return len(s.Cart) == 0
}

// CartSnapshot возвращает копию корзины. Заказ создается по снимку,
// чтобы гонка с параллельным сообщением пользователя не меняла состав
// уже оформляемого заказа.
func (s *Session) CartSnapshot() []CartLine {
	if len(s.Cart) == 0 {
		return nil
	}
	snapshot := make([]CartLine, len(s.Cart))
	copy(snapshot, s.Cart)
	return snapshot
}

// ResetCheckout возвращает мастер в исходное состояние, не трогая корзину.
func (s *Session) ResetCheckout() {
	s.Step = StepNone
	s.Phone = ""
	s.Address = ""
}
