package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattzaw/group_order/internal/models"
	"github.com/lattzaw/group_order/internal/repo"
	"github.com/lattzaw/group_order/internal/transport"
)

func seedOrderItem(t *testing.T, r *repo.GormRepo, itemSvc *OrderItemService) *models.OrderItem {
	t.Helper()

	maker := seedUser(t, r, "maker")
	seedUser(t, r, "alice")
	seedShop(t, r, "TeaShop")
	order := seedOrder(t, r, maker, true)

	item, err := itemSvc.CreateOrderItem(context.Background(), transport.CreateOrderItemRequest{
		Order:         order.ID,
		ProductName:   "GreenTea",
		Shop:          "TeaShop",
		Purchaser:     "alice",
		PrimaryAmount: "2 Khu",
		Type:          models.ItemPending,
	})
	require.NoError(t, err)
	return item
}

func TestMessageService_PostMessage_MissingFields(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &MessageService{Repo: r}
	ctx := context.Background()

	_, err := svc.PostMessage(ctx, 0, 1, []uint{2}, "hello")
	require.ErrorIs(t, err, ErrMissingField)

	_, err = svc.PostMessage(ctx, 1, 0, []uint{2}, "hello")
	require.ErrorIs(t, err, ErrMissingField)

	_, err = svc.PostMessage(ctx, 1, 1, []uint{2}, "")
	require.ErrorIs(t, err, ErrMissingField)
}

func TestMessageService_PostMessage_FanOut(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	itemSvc := &OrderItemService{Repo: r}
	svc := &MessageService{Repo: r}
	ctx := context.Background()

	item := seedOrderItem(t, r, itemSvc)
	sender := seedUser(t, r, "sender")
	bob := seedUser(t, r, "bob")
	carol := seedUser(t, r, "carol")

	message, err := svc.PostMessage(ctx, item.ID, sender.ID, []uint{bob.ID, carol.ID}, "tea is here")
	require.NoError(t, err)
	require.NotZero(t, message.ID)

	messages, err := svc.ListMessages(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "tea is here", messages[0].Message)
	assert.Len(t, messages[0].ReceivingUsers, 2)

	// One unseen notification per receiver, each addressed to a distinct
	// recipient from the input set.
	for _, recipient := range []uint{bob.ID, carol.ID} {
		notifications, err := svc.ListNotifications(ctx, item.ID, recipient, true)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, recipient, notifications[0].RecipientID)
		assert.False(t, notifications[0].IsSeen)
		assert.Equal(t, "tea is here", notifications[0].Message)
	}

	// The sender gets nothing.
	senderNotifications, err := svc.ListNotifications(ctx, item.ID, sender.ID, true)
	require.NoError(t, err)
	assert.Empty(t, senderNotifications)
}

func TestMessageService_PostMessage_EmptyReceivers(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	itemSvc := &OrderItemService{Repo: r}
	svc := &MessageService{Repo: r}
	ctx := context.Background()

	item := seedOrderItem(t, r, itemSvc)
	sender := seedUser(t, r, "sender")

	// Zero receivers is a valid no-op fan-out, not an error.
	_, err := svc.PostMessage(ctx, item.ID, sender.ID, nil, "note to self")
	require.NoError(t, err)

	var count int64
	require.NoError(t, r.DB.Model(&models.OrderItemMessageNotification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMessageService_PostMessage_UnknownReceiver(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	itemSvc := &OrderItemService{Repo: r}
	svc := &MessageService{Repo: r}
	ctx := context.Background()

	item := seedOrderItem(t, r, itemSvc)
	sender := seedUser(t, r, "sender")

	_, err := svc.PostMessage(ctx, item.ID, sender.ID, []uint{999}, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing persists when a receiver fails to resolve.
	var count int64
	require.NoError(t, r.DB.Model(&models.OrderItemMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMessageService_MarkNotificationsSeen_Idempotent(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	itemSvc := &OrderItemService{Repo: r}
	svc := &MessageService{Repo: r}
	ctx := context.Background()

	item := seedOrderItem(t, r, itemSvc)
	sender := seedUser(t, r, "sender")
	bob := seedUser(t, r, "bob")
	carol := seedUser(t, r, "carol")

	_, err := svc.PostMessage(ctx, item.ID, sender.ID, []uint{bob.ID, carol.ID}, "tea is here")
	require.NoError(t, err)

	updated, err := svc.MarkNotificationsSeen(ctx, item.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	// Bob's unseen set is drained, Carol's is untouched.
	bobUnseen, err := svc.ListNotifications(ctx, item.ID, bob.ID, true)
	require.NoError(t, err)
	assert.Empty(t, bobUnseen)

	carolUnseen, err := svc.ListNotifications(ctx, item.ID, carol.ID, true)
	require.NoError(t, err)
	assert.Len(t, carolUnseen, 1)

	// Second call with nothing unseen is a no-op, never an error.
	updated, err = svc.MarkNotificationsSeen(ctx, item.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, updated)

	// Seen notifications remain visible without the unseen filter.
	bobAll, err := svc.ListNotifications(ctx, item.ID, bob.ID, false)
	require.NoError(t, err)
	require.Len(t, bobAll, 1)
	assert.True(t, bobAll[0].IsSeen)
}
