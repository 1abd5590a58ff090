package models

const (
	StatusNew       = "new"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderStatuses перечисляет допустимые статусы заказа в порядке жизненного цикла.
var OrderStatuses = []string{
	StatusNew,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// IsValidOrderStatus проверяет, что статус входит в список допустимых.
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

// Шаги мастера оформления заказа. StepNone — и начальное, и конечное состояние.
const (
	StepNone            = ""
	StepAwaitingPhone   = "awaiting_phone"
	StepAwaitingAddress = "awaiting_address"
	StepAwaitingComment = "awaiting_comment"
)

const (
	LangUz = "uz"
	LangRu = "ru"
)

const (
	// DefaultSessionTTL время жизни сессии пользователя в Redis
	DefaultSessionTTL = 24 * 60 * 60 // 24 часа в секундах

	// MinPhoneDigits минимальная длина телефона, введенного вручную
	MinPhoneDigits = 9

	// WorkerQueueSize размер очереди воркера уведомлений
	WorkerQueueSize = 1000

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах

	// CatalogCacheTTL время жизни кэша каталога в памяти
	CatalogCacheTTL = 5 * 60 // 5 минут в секундах

	// ExportRangeDays период выгрузки заказов по умолчанию
	ExportRangeDays = 30
)
