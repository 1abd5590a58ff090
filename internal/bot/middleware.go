package bot

import (
	"context"
	"runtime/debug"
	"time"
)

// withRecovery не дает панике в обработчике уронить цикл обновлений.
func (b *Bot) withRecovery(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if b.metrics != nil {
				b.metrics.ErrorsTotal.Inc()
			}
			b.logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic in update handler")
		}
	}()
	fn()
}

// trackActivity обновляет last_activity в фоне, чтобы не задерживать ответ.
func (b *Bot) trackActivity(userID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.users.UpdateUserActivity(ctx, userID); err != nil {
			b.logger.Debug().Err(err).Int64("user_id", userID).Msg("Failed to update user activity")
		}
	}()
}
