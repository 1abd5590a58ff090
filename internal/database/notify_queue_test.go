package database

import (
	"context"
	"testing"
	"time"

	"fastfoodbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationQueue(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	n := &models.Notification{
		OrderID: 1,
		Payload: `{"order_id":1}`,
		Status:  "pending",
	}
	require.NoError(t, db.CreateNotification(ctx, n))
	assert.NotZero(t, n.ID)

	pending, err := db.GetPendingNotifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].OrderID)

	// retry откладывает задачу в будущее и увеличивает счетчик
	retryAt := time.Now().Add(time.Hour)
	require.NoError(t, db.UpdateNotificationStatus(ctx, n.ID, "retry", "telegram timeout", &retryAt))

	pending, err = db.GetPendingNotifications(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	failed, err := db.GetFailedNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, failed)

	require.NoError(t, db.UpdateNotificationStatus(ctx, n.ID, "failed", "gave up", nil))
	failed, err = db.GetFailedNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].RetryCount)
	require.NotNil(t, failed[0].LastError)
	assert.Equal(t, "gave up", *failed[0].LastError)
}

func TestGetPendingNotifications_DueRetry(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	n := &models.Notification{OrderID: 2, Payload: "{}", Status: "pending"}
	require.NoError(t, db.CreateNotification(ctx, n))

	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.UpdateNotificationStatus(ctx, n.ID, "retry", "oops", &past))

	pending, err := db.GetPendingNotifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "retry", pending[0].Status)
}
