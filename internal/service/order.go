package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
	"github.com/lattzaw/group_order/internal/repo"
)

// OrderService owns the order session lifecycle. CreateOrder deliberately does
// not guard the single-active-order property; ActivateOrder is the guarded
// path and callers that care about the invariant must go through it.
type OrderService struct {
	Repo *repo.GormRepo
}

func (svc *OrderService) CreateOrder(ctx context.Context, orderMakerID uint, orderMakerMoney decimal.Decimal, isActiveNow bool) (*models.Order, error) {
	if orderMakerID == 0 {
		return nil, fmt.Errorf("%w: order_maker is required", ErrValidation)
	}
	if orderMakerMoney.IsZero() {
		return nil, fmt.Errorf("%w: order_maker_money is required", ErrValidation)
	}

	if _, err := svc.Repo.FindUserByID(ctx, orderMakerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order maker does not exist: %w", ErrNotFound)
		}
		return nil, err
	}

	order := &models.Order{
		OrderCode:       models.OrderCodeStamp(time.Now()),
		OrderMakerID:    orderMakerID,
		OrderMakerMoney: orderMakerMoney,
		IsActiveNow:     isActiveNow,
	}
	return svc.Repo.CreateOrder(ctx, order)
}

func (svc *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return svc.Repo.ListOrders(ctx)
}

func (svc *OrderService) ListActiveOrders(ctx context.Context) ([]models.Order, error) {
	return svc.Repo.ListActiveOrders(ctx)
}

func (svc *OrderService) ActivateOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := svc.Repo.ActivateOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if errors.Is(err, repo.ErrActiveOrderExists) {
		return nil, fmt.Errorf("another order is already active: %w", ErrConflict)
	}
	return order, err
}

// AddPurchaser links a user to an order as a purchaser. A user holds at most
// one purchaser role at a time.
func (svc *OrderService) AddPurchaser(ctx context.Context, orderID, userID uint, money decimal.Decimal) (*models.OrderPurchaser, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("%w: order", ErrMissingField)
	}
	if userID == 0 {
		return nil, fmt.Errorf("%w: purchaser", ErrMissingField)
	}

	if _, err := svc.Repo.GetOrder(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := svc.Repo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("purchaser does not exist: %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := svc.Repo.FindOrderPurchaser(ctx, userID); err == nil {
		return nil, fmt.Errorf("user is already a purchaser: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	purchaser := &models.OrderPurchaser{
		OrderID:        orderID,
		PurchaserID:    userID,
		PurchaserMoney: money,
	}
	if err := svc.Repo.AddOrderPurchaser(ctx, purchaser); err != nil {
		return nil, err
	}
	return purchaser, nil
}
