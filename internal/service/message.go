package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
	"github.com/lattzaw/group_order/internal/repo"
)

// MessageService owns per-item message threads and the notifications derived
// from them. Notifications are pull-polled; nothing here pushes.
type MessageService struct {
	Repo *repo.GormRepo
}

// PostMessage stores the message and fans out one unseen notification per
// receiving user. The fan-out shares a transaction with the message insert.
// An empty receiver set produces zero notifications and is not an error.
func (svc *MessageService) PostMessage(ctx context.Context, orderItemID, sendingUserID uint, receivingUserIDs []uint, text string) (*models.OrderItemMessage, error) {
	if orderItemID == 0 {
		return nil, fmt.Errorf("%w: order_item", ErrMissingField)
	}
	if sendingUserID == 0 {
		return nil, fmt.Errorf("%w: sending_user", ErrMissingField)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: message", ErrMissingField)
	}

	if _, err := svc.Repo.GetOrderItem(ctx, orderItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item not found: %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := svc.Repo.FindUserByID(ctx, sendingUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sending user does not exist: %w", ErrNotFound)
		}
		return nil, err
	}

	receivers := make([]models.User, 0, len(receivingUserIDs))
	for _, id := range receivingUserIDs {
		user, err := svc.Repo.FindUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("receiving user %d does not exist: %w", id, ErrNotFound)
			}
			return nil, err
		}
		receivers = append(receivers, *user)
	}

	message := &models.OrderItemMessage{
		OrderItemID:   orderItemID,
		SendingUserID: sendingUserID,
		Message:       text,
	}
	return svc.Repo.CreateMessageWithNotifications(ctx, message, receivers)
}

func (svc *MessageService) ListMessages(ctx context.Context, orderItemID uint) ([]models.OrderItemMessage, error) {
	return svc.Repo.ListMessages(ctx, orderItemID)
}

func (svc *MessageService) ListNotifications(ctx context.Context, orderItemID, recipientID uint, unseenOnly bool) ([]models.OrderItemMessageNotification, error) {
	if recipientID == 0 {
		return nil, fmt.Errorf("%w: recipient", ErrMissingField)
	}
	return svc.Repo.ListNotifications(ctx, orderItemID, recipientID, unseenOnly)
}

// MarkNotificationsSeen is idempotent: a second call with nothing unseen
// succeeds and reports zero updates.
func (svc *MessageService) MarkNotificationsSeen(ctx context.Context, orderItemID, recipientID uint) (int64, error) {
	if orderItemID == 0 {
		return 0, fmt.Errorf("%w: order_item", ErrMissingField)
	}
	if recipientID == 0 {
		return 0, fmt.Errorf("%w: recipient", ErrMissingField)
	}
	return svc.Repo.MarkNotificationsSeen(ctx, orderItemID, recipientID)
}
