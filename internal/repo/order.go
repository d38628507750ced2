package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
)

// ErrActiveOrderExists reports a failed activation check-and-set: some other
// order already holds the active flag.
var ErrActiveOrderExists = errors.New("active order already exists")

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("date_added ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListActiveOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Where("is_active_now = ?", true).Order("date_added ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) FirstActiveOrder(ctx context.Context) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("is_active_now = ?", true).Order("date_added ASC").First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ActivateOrder flips is_active_now on the given order with a guarded UPDATE:
// the row is only touched when no other order holds the flag, so two
// concurrent activations cannot both win. Activating an already-active order
// is a no-op.
func (r *GormRepo) ActivateOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if order.IsActiveNow {
			return nil
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND NOT EXISTS (SELECT 1 FROM orders WHERE is_active_now = ? AND id <> ?)", id, true, id).
			Update("is_active_now", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrActiveOrderExists
		}
		order.IsActiveNow = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) AddOrderPurchaser(ctx context.Context, purchaser *models.OrderPurchaser) error {
	return r.DB.WithContext(ctx).Create(purchaser).Error
}

func (r *GormRepo) FindOrderPurchaser(ctx context.Context, userID uint) (*models.OrderPurchaser, error) {
	var purchaser models.OrderPurchaser
	if err := r.DB.WithContext(ctx).Where("purchaser_id = ?", userID).First(&purchaser).Error; err != nil {
		return nil, err
	}
	return &purchaser, nil
}
