package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/export"
	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Команды менеджеров. Интерфейс менеджера всегда на русском.
func (b *Bot) handleManagerCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "orders":
		b.handleOrdersList(ctx, msg)
	case "status":
		b.handleStatusUpdate(ctx, msg)
	case "export":
		b.handleExport(ctx, msg)
	case "stats":
		b.handleStats(ctx, msg)
	}
}

func (b *Bot) handleOrdersList(ctx context.Context, msg *tgbotapi.Message) {
	status := strings.TrimSpace(msg.CommandArguments())
	if status != "" && !models.IsValidOrderStatus(status) {
		b.sendPlain(msg.Chat.ID, fmt.Sprintf("Неизвестный статус %q. Допустимые: %s",
			status, strings.Join(models.OrderStatuses, ", ")))
		return
	}

	orders, err := b.repo.ListOrders(ctx, status, 10, 0)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to list orders")
		b.sendPlain(msg.Chat.ID, "Не удалось получить список заказов.")
		return
	}
	if len(orders) == 0 {
		b.sendPlain(msg.Chat.ID, "Заказов нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Последние заказы:\n\n")
	for _, order := range orders {
		sb.WriteString(formatOrderForManager(order))
		sb.WriteString("\n")
	}
	b.sendPlain(msg.Chat.ID, sb.String())
}

func (b *Bot) handleStatusUpdate(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		b.sendPlain(msg.Chat.ID, fmt.Sprintf("Использование: /status <id> <статус>\nСтатусы: %s",
			strings.Join(models.OrderStatuses, ", ")))
		return
	}

	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.sendPlain(msg.Chat.ID, "Номер заказа должен быть числом.")
		return
	}
	status := args[1]

	if err := b.orders.UpdateStatus(ctx, orderID, status); err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidStatus):
			b.sendPlain(msg.Chat.ID, fmt.Sprintf("Неизвестный статус %q. Допустимые: %s",
				status, strings.Join(models.OrderStatuses, ", ")))
		case errors.Is(err, database.ErrNotFound):
			b.sendPlain(msg.Chat.ID, fmt.Sprintf("Заказ #%d не найден.", orderID))
		default:
			b.logger.Error().Err(err).Int64("order_id", orderID).Msg("Failed to update order status")
			b.sendPlain(msg.Chat.ID, "Не удалось обновить статус заказа.")
		}
		return
	}

	b.sendPlain(msg.Chat.ID, fmt.Sprintf("✅ Заказ #%d: статус изменен на %s.",
		orderID, i18n.StatusName(models.LangRu, status)))

	b.notifyCustomer(ctx, orderID)
}

// notifyCustomer сообщает клиенту о смене статуса на его языке.
func (b *Bot) notifyCustomer(ctx context.Context, orderID int64) {
	order, err := b.orders.GetOrder(ctx, orderID)
	if err != nil {
		b.logger.Error().Err(err).Int64("order_id", orderID).Msg("Failed to load order for notification")
		return
	}

	lang := b.config.Bot.DefaultLanguage
	if user, err := b.repo.GetUserByTelegramID(ctx, order.UserID); err == nil && i18n.IsSupported(user.LanguageCode) {
		lang = user.LanguageCode
	}

	text := i18n.T(lang, i18n.MsgOrderStatus,
		order.ID,
		i18n.StatusName(lang, order.Status),
		i18n.FormatPrice(order.TotalPrice),
		order.CreatedAt.Format("02.01.2006 15:04"))
	b.sendPlain(order.UserID, text)
}

func (b *Bot) handleExport(ctx context.Context, msg *tgbotapi.Message) {
	days := models.ExportRangeDays
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			b.sendPlain(msg.Chat.ID, "Использование: /export [дней]")
			return
		}
		days = n
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	orders, err := b.repo.ListOrdersSince(ctx, from)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to load orders for export")
		b.sendPlain(msg.Chat.ID, "Не удалось выгрузить заказы.")
		return
	}

	path, err := export.SaveOrdersReport(orders, from, to, b.config.Exports.Path)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to build orders report")
		b.sendPlain(msg.Chat.ID, "Не удалось сформировать отчет.")
		return
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("Заказы за %d дн. (%d шт.)", days, len(orders))
	if _, err := b.tgService.Send(doc); err != nil {
		b.logger.Error().Err(err).Str("path", path).Msg("Failed to send report")
		b.sendPlain(msg.Chat.ID, "Не удалось отправить отчет.")
	}
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	stats, err := b.repo.GetDashboardStats(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to load dashboard stats")
		b.sendPlain(msg.Chat.ID, "Не удалось получить статистику.")
		return
	}

	text := fmt.Sprintf(
		"📊 Статистика:\n\n"+
			"👥 Пользователей: %d\n"+
			"📦 Заказов всего: %d\n"+
			"🆕 Новых заказов: %d\n"+
			"📅 Заказов сегодня: %d\n"+
			"💰 Выручка сегодня: %s сум\n"+
			"💰 Выручка за месяц: %s сум\n"+
			"🍔 Активных товаров: %d",
		stats.TotalUsers,
		stats.TotalOrders,
		stats.NewOrders,
		stats.OrdersToday,
		i18n.FormatPrice(stats.RevenueToday),
		i18n.FormatPrice(stats.RevenueMonth),
		stats.ActiveProducts,
	)
	b.sendPlain(msg.Chat.ID, text)
}

func formatOrderForManager(order *models.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d | %s | %s\n", order.ID, i18n.StatusName(models.LangRu, order.Status),
		order.CreatedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&sb, "📱 %s\n📍 %s\n", order.Phone, order.Address)
	for i := range order.Items {
		item := &order.Items[i]
		fmt.Fprintf(&sb, "  • %s x %d = %s\n", item.NameRu, item.Quantity, i18n.FormatPrice(item.Total()))
	}
	if order.PromoCode != "" {
		fmt.Fprintf(&sb, "🎁 %s (-%d%%)\n", order.PromoCode, order.DiscountPercent)
	}
	fmt.Fprintf(&sb, "💰 Итого: %s сум\n", i18n.FormatPrice(order.TotalPrice))
	if order.Comment != "" {
		fmt.Fprintf(&sb, "💬 %s\n", order.Comment)
	}
	return sb.String()
}
