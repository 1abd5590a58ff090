package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/models"

	"github.com/redis/go-redis/v9"
)

// NotifySender is the minimal Telegram surface the worker needs.
type NotifySender interface {
	SendMessage(chatID int64, text string) error
}

// notifyPayload is persisted in Notification.Payload as JSON.
type notifyPayload struct {
	Order *models.Order `json:"order"`
}

// NotifyWorker delivers new-order notifications to managers. Tasks are
// persisted in the notifications table first, so a crash or a Telegram
// outage loses nothing; redis is only a wake-up signal.
type NotifyWorker struct {
	db            *database.DB
	sender        NotifySender
	managers      []int64
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan models.Notification
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	logger        *log.Logger
}

// NewNotifyWorker builds a worker with sane defaults.
func NewNotifyWorker(db *database.DB, sender NotifySender, managers []int64, redisClient *redis.Client, retry RetryPolicy, logger *log.Logger) *NotifyWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if logger == nil {
		logger = log.Default()
	}

	return &NotifyWorker{
		db:            db,
		sender:        sender,
		managers:      managers,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan models.Notification, 128),
		redisQueueKey: "notify:queue",
		deadLetterKey: "notify:deadletter",
		pollInterval:  2 * time.Second,
		batchSize:     20,
		logger:        logger,
	}
}

// EnqueueOrder persists a notification task and schedules it.
func (w *NotifyWorker) EnqueueOrder(ctx context.Context, order *models.Order) error {
	if order == nil || order.ID == 0 {
		return errors.New("order id is required")
	}

	payloadBytes, err := json.Marshal(notifyPayload{Order: order})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	notification := models.Notification{
		OrderID: order.ID,
		Payload: string(payloadBytes),
		Status:  "pending",
	}

	if err := w.db.CreateNotification(ctx, &notification); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	// Try redis first for durability.
	if w.redis != nil {
		if err := w.pushRedis(ctx, notification); err != nil {
			w.logger.Printf("notify_worker: redis push failed, fallback to memory queue: %v", err)
		} else {
			return nil
		}
	}

	// Fallback to in-memory queue if redis missing or failed.
	select {
	case w.queue <- notification:
	default:
		w.logger.Printf("notify_worker: in-memory queue full, task %d dropped to polling", notification.ID)
	}

	return nil
}

// Start launches main loop; stops when ctx is done.
func (w *NotifyWorker) Start(ctx context.Context) {
	w.logger.Printf("notify_worker: started")
	defer w.logger.Printf("notify_worker: stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if n, ok := w.tryLocalQueue(); ok {
			w.processNotification(ctx, &n)
			continue
		}

		if n, ok := w.tryRedis(ctx); ok {
			w.processNotification(ctx, &n)
			continue
		}

		notifications, err := w.db.GetPendingNotifications(ctx, w.batchSize)
		if err != nil {
			w.logger.Printf("notify_worker: fetch pending: %v", err)
			time.Sleep(w.pollInterval)
			continue
		}
		if len(notifications) == 0 {
			time.Sleep(w.pollInterval)
			continue
		}

		for i := range notifications {
			w.processNotification(ctx, &notifications[i])
		}
	}
}

func (w *NotifyWorker) tryLocalQueue() (models.Notification, bool) {
	select {
	case n := <-w.queue:
		return n, true
	default:
		return models.Notification{}, false
	}
}

func (w *NotifyWorker) tryRedis(ctx context.Context) (models.Notification, bool) {
	if w.redis == nil {
		return models.Notification{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return models.Notification{}, false
		}
		w.logger.Printf("notify_worker: redis BRPOP error: %v", err)
		return models.Notification{}, false
	}
	if len(res) != 2 {
		return models.Notification{}, false
	}
	var n models.Notification
	if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
		w.logger.Printf("notify_worker: decode redis task: %v", err)
		return models.Notification{}, false
	}
	return n, true
}

func (w *NotifyWorker) processNotification(ctx context.Context, n *models.Notification) {
	var payload notifyPayload
	if err := json.Unmarshal([]byte(n.Payload), &payload); err != nil {
		w.failNotification(ctx, n, fmt.Errorf("decode payload: %w", err))
		return
	}
	if payload.Order == nil {
		w.failNotification(ctx, n, errors.New("order payload missing"))
		return
	}

	if err := w.deliver(payload.Order); err != nil {
		w.retryOrFail(ctx, n, err)
		return
	}

	if err := w.db.UpdateNotificationStatus(ctx, n.ID, "completed", "", nil); err != nil {
		w.logger.Printf("notify_worker: mark completed %d: %v", n.ID, err)
	}
}

func (w *NotifyWorker) deliver(order *models.Order) error {
	text := RenderManagerNotification(order)

	var lastErr error
	delivered := 0
	for _, managerID := range w.managers {
		if err := w.sender.SendMessage(managerID, text); err != nil {
			w.logger.Printf("notify_worker: send to manager %d: %v", managerID, err)
			lastErr = err
			continue
		}
		delivered++
	}

	// Достаточно доставить хотя бы одному менеджеру
	if delivered == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

// RenderManagerNotification строит текст уведомления о новом заказе.
// Менеджеры читают по-русски, поэтому язык фиксированный.
func RenderManagerNotification(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 Новый заказ #%d\n\n", order.ID)
	fmt.Fprintf(&b, "📱 Телефон: %s\n", order.Phone)
	fmt.Fprintf(&b, "📍 Адрес: %s\n", order.Address)
	if order.Comment != "" {
		fmt.Fprintf(&b, "💬 Комментарий: %s\n", order.Comment)
	}
	b.WriteString("\n")
	for i := range order.Items {
		item := &order.Items[i]
		fmt.Fprintf(&b, "• %s x %d = %s сум\n", item.NameRu, item.Quantity, i18n.FormatPrice(item.Total()))
	}
	if order.PromoCode != "" {
		fmt.Fprintf(&b, "\n🎟 Промокод: %s (-%d%%)", order.PromoCode, order.DiscountPercent)
	}
	fmt.Fprintf(&b, "\n💰 Итого: %s сум", i18n.FormatPrice(order.TotalPrice))
	return b.String()
}

func (w *NotifyWorker) retryOrFail(ctx context.Context, n *models.Notification, cause error) {
	attempt := n.RetryCount + 1
	if attempt >= w.retryPolicy.MaxRetries {
		if err := w.db.UpdateNotificationStatus(ctx, n.ID, "failed", cause.Error(), nil); err != nil {
			w.logger.Printf("notify_worker: mark failed %d: %v", n.ID, err)
		}
		w.pushDeadLetter(ctx, n)
		return
	}

	nextDelay := w.retryPolicy.NextDelay(attempt)
	nextTime := time.Now().Add(nextDelay)
	if err := w.db.UpdateNotificationStatus(ctx, n.ID, "retry", cause.Error(), &nextTime); err != nil {
		w.logger.Printf("notify_worker: mark retry %d: %v", n.ID, err)
	}
}

func (w *NotifyWorker) failNotification(ctx context.Context, n *models.Notification, err error) {
	if updErr := w.db.UpdateNotificationStatus(ctx, n.ID, "failed", err.Error(), nil); updErr != nil {
		w.logger.Printf("notify_worker: mark failed %d: %v", n.ID, updErr)
	}
	w.pushDeadLetter(ctx, n)
}

func (w *NotifyWorker) pushRedis(ctx context.Context, n models.Notification) error {
	if w.redis == nil {
		return errors.New("redis client is nil")
	}
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *NotifyWorker) pushDeadLetter(ctx context.Context, n *models.Notification) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		w.logger.Printf("notify_worker: encode deadletter %d: %v", n.ID, err)
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Printf("notify_worker: deadletter push %d: %v", n.ID, err)
	}
}
