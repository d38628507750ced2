package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
)

// CreateMessageWithNotifications persists the message, attaches the receiving
// users and creates one unseen notification per receiver, all in a single
// transaction. A partial failure rolls everything back so a stored message can
// never exist without its notifications.
func (r *GormRepo) CreateMessageWithNotifications(ctx context.Context, message *models.OrderItemMessage, receivers []models.User) (*models.OrderItemMessage, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		if len(receivers) == 0 {
			return nil
		}
		if err := tx.Model(message).Association("ReceivingUsers").Append(&receivers); err != nil {
			return err
		}

		notifications := make([]models.OrderItemMessageNotification, 0, len(receivers))
		for _, receiver := range receivers {
			notifications = append(notifications, models.OrderItemMessageNotification{
				OrderItemID: message.OrderItemID,
				RecipientID: receiver.ID,
				Message:     message.Message,
				IsSeen:      false,
			})
		}
		return tx.Create(&notifications).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (r *GormRepo) ListMessages(ctx context.Context, orderItemID uint) ([]models.OrderItemMessage, error) {
	var messages []models.OrderItemMessage
	if err := r.DB.WithContext(ctx).
		Preload("ReceivingUsers").
		Where("order_item_id = ?", orderItemID).
		Order("timestamp ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *GormRepo) ListNotifications(ctx context.Context, orderItemID, recipientID uint, unseenOnly bool) ([]models.OrderItemMessageNotification, error) {
	q := r.DB.WithContext(ctx).
		Where("order_item_id = ? AND recipient_id = ?", orderItemID, recipientID)
	if unseenOnly {
		q = q.Where("is_seen = ?", false)
	}

	var notifications []models.OrderItemMessageNotification
	if err := q.Order("timestamp ASC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationsSeen flips every unseen notification for the item/recipient
// pair in one batch. Calling it with nothing unseen is a no-op.
func (r *GormRepo) MarkNotificationsSeen(ctx context.Context, orderItemID, recipientID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderItemMessageNotification{}).
		Where("order_item_id = ? AND recipient_id = ? AND is_seen = ?", orderItemID, recipientID, false).
		Update("is_seen", true)
	return res.RowsAffected, res.Error
}
