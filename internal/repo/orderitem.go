package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
)

func (r *GormRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *GormRepo) GetOrderItem(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SaveOrderItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// DeleteOrderItem hard-deletes the item together with its message thread and
// notifications. Order owns items, items own messages.
func (r *GormRepo) DeleteOrderItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_item_id = ?", id).Delete(&models.OrderItemMessageNotification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_item_id = ?", id).Delete(&models.OrderItemMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.OrderItem{}, id).Error
	})
}

func (r *GormRepo) ListOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Order("date_added ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListOrderItemsByType(ctx context.Context, itemType string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("type = ?", itemType).Order("date_added ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListOrderItemsByOrderAndShop(ctx context.Context, orderID, shopID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).
		Where("order_id = ? AND shop_id = ?", orderID, shopID).
		Order("date_added ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
