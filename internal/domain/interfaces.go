package domain

import (
	"context"
	"time"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Repository interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	CreateOrUpdateUser(ctx context.Context, user *models.User) error
	UpdateUserLanguage(ctx context.Context, telegramID int64, languageCode string) error
	UpdateUserPhone(ctx context.Context, telegramID int64, phone string) error
	UpdateUserActivity(ctx context.Context, telegramID int64) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	ListCategories(ctx context.Context, activeOnly bool) ([]*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, categoryID int64, availableOnly bool) ([]*models.Product, error)
	ListAllProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetProductByName(ctx context.Context, name string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID int64, limit int) ([]*models.Order, error)
	ListOrders(ctx context.Context, status string, limit, offset int) ([]*models.Order, error)
	ListOrdersSince(ctx context.Context, since time.Time) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error

	GetPromoCode(ctx context.Context, id int64) (*models.PromoCode, error)
	GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error)
	ListPromoCodes(ctx context.Context) ([]*models.PromoCode, error)
	CreatePromoCode(ctx context.Context, p *models.PromoCode) error
	UpdatePromoCode(ctx context.Context, p *models.PromoCode) error
	DeletePromoCode(ctx context.Context, id int64) error

	GetDashboardStats(ctx context.Context) (*database.DashboardStats, error)
	GetDailyStats(ctx context.Context, days int) ([]database.DailyStat, error)
	GetPopularProducts(ctx context.Context, since time.Time, limit int) ([]database.ProductStat, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int64, error)
}

// SessionRepository хранит сессии пользователей (корзина плюс шаг мастера
// оформления). Реализации: Redis, память и failover поверх обеих.
type SessionRepository interface {
	GetSession(ctx context.Context, userID int64) (*models.Session, error)
	SetSession(ctx context.Context, session *models.Session) error
	ClearSession(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type SessionManager interface {
	GetOrCreateSession(ctx context.Context, userID int64) (*models.Session, error)
	SaveSession(ctx context.Context, session *models.Session) error
	ClearSession(ctx context.Context, userID int64) error
	SetLanguage(ctx context.Context, userID int64, language string) error
	CheckRateLimit(ctx context.Context, userID int64) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendMarkdown(chatID int64, text string) (tgbotapi.Message, error)
	SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	SendPhoto(chatID int64, photoURL, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type CartService interface {
	AddItem(ctx context.Context, session *models.Session, productID int64, quantity int64) (*models.CartLine, error)
	RemoveItem(ctx context.Context, session *models.Session, productID int64) error
	Clear(ctx context.Context, session *models.Session) error
	Total(session *models.Session) int64
	Render(session *models.Session) string
}

type CheckoutService interface {
	Start(ctx context.Context, session *models.Session) error
	HandleInput(ctx context.Context, session *models.Session, input CheckoutInput) (*CheckoutResult, error)
	Cancel(ctx context.Context, session *models.Session) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, session *models.Session, comment string) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID int64, limit int) ([]*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) error
	ApplyPromo(ctx context.Context, session *models.Session, code string) (*models.PromoCode, error)
}

type CatalogService interface {
	Categories(ctx context.Context) ([]*models.Category, error)
	CategoryByName(ctx context.Context, name string) (*models.Category, error)
	Products(ctx context.Context, categoryID int64) ([]*models.Product, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
	ProductByName(ctx context.Context, name string) (*models.Product, error)
	Invalidate()
}

type UserService interface {
	IsManager(userID int64) bool
	IsBlacklisted(userID int64) bool
	SaveUser(ctx context.Context, user *models.User) error
	UpdateUserLanguage(ctx context.Context, telegramID int64, languageCode string) error
	UpdateUserPhone(ctx context.Context, telegramID int64, phone string) error
	UpdateUserActivity(ctx context.Context, telegramID int64) error
}

type NotifyWorker interface {
	EnqueueOrder(ctx context.Context, order *models.Order) error
}

// CheckoutInput — одно сообщение пользователя внутри мастера оформления.
// Заполняется либо текстом, либо контактом, либо геопозицией.
type CheckoutInput struct {
	Text     string
	Contact  *tgbotapi.Contact
	Location *tgbotapi.Location
}

// CheckoutResult сообщает обработчику, что ответить и завершился ли мастер.
type CheckoutResult struct {
	NextStep string
	Order    *models.Order
	Done     bool
}
