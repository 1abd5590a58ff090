package service

import (
	"context"
	"strings"

	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
)

// CartService меняет корзину внутри сессии. Сам сессию не сохраняет:
// запись делает вызывающий после всех изменений, одной операцией.
type CartService struct {
	catalog domain.CatalogService
	logger  *zerolog.Logger
}

func NewCartService(catalog domain.CatalogService, logger *zerolog.Logger) *CartService {
	return &CartService{
		catalog: catalog,
		logger:  logger,
	}
}

// AddItem добавляет товар в корзину. Если товар уже есть, количество
// увеличивается: внутри корзины товар встречается не более одного раза.
func (s *CartService) AddItem(ctx context.Context, session *models.Session, productID int64, quantity int64) (*models.CartLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if line := session.CartLine(productID); line != nil {
		line.Quantity += quantity
		return line, nil
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	session.Cart = append(session.Cart, models.CartLine{
		ProductID: product.ID,
		NameUz:    product.NameUz,
		NameRu:    product.NameRu,
		Price:     product.Price,
		Quantity:  quantity,
	})
	return &session.Cart[len(session.Cart)-1], nil
}

func (s *CartService) RemoveItem(ctx context.Context, session *models.Session, productID int64) error {
	for i := range session.Cart {
		if session.Cart[i].ProductID == productID {
			session.Cart = append(session.Cart[:i], session.Cart[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, session *models.Session) error {
	session.Cart = nil
	return nil
}

// Total считает сумму корзины без учета промокода.
func (s *CartService) Total(session *models.Session) int64 {
	var total int64
	for i := range session.Cart {
		total += session.Cart[i].Total()
	}
	return total
}

// Render строит текст корзины на языке сессии.
func (s *CartService) Render(session *models.Session) string {
	lang := session.Language
	if session.CartIsEmpty() {
		return i18n.T(lang, i18n.MsgCartEmpty)
	}

	var b strings.Builder
	b.WriteString(i18n.T(lang, i18n.MsgCartHeader))
	for i := range session.Cart {
		line := &session.Cart[i]
		b.WriteString(i18n.T(lang, i18n.MsgCartLine, line.Name(lang), line.Quantity, i18n.FormatPrice(line.Total())))
	}
	b.WriteString(i18n.T(lang, i18n.MsgCartTotal, i18n.FormatPrice(s.Total(session))))
	return b.String()
}
