package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
	"github.com/lattzaw/group_order/internal/repo"
	"github.com/lattzaw/group_order/internal/transport"
)

// OrderItemService owns the order item lifecycle. Products referenced by name
// are created on demand; shops and purchasers must already exist.
type OrderItemService struct {
	Repo *repo.GormRepo
}

func (svc *OrderItemService) CreateOrderItem(ctx context.Context, req transport.CreateOrderItemRequest) (*models.OrderItem, error) {
	// Presence checks run in a fixed order so the first missing field is the
	// one reported.
	if req.Order == 0 {
		return nil, fmt.Errorf("%w: order", ErrMissingField)
	}
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: product_name", ErrMissingField)
	}
	if req.Shop == "" {
		return nil, fmt.Errorf("%w: shop", ErrMissingField)
	}
	if req.Purchaser == "" {
		return nil, fmt.Errorf("%w: purchaser", ErrMissingField)
	}
	if req.PrimaryAmount == "" {
		return nil, fmt.Errorf("%w: primary_amount", ErrMissingField)
	}
	if req.Type == "" {
		return nil, fmt.Errorf("%w: type", ErrMissingField)
	}
	if !models.ValidItemType(req.Type) {
		return nil, fmt.Errorf("%w: type must be one of pending, in_progress, complete", ErrValidation)
	}

	if _, err := svc.Repo.GetOrder(ctx, req.Order); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}

	product, _, err := svc.Repo.FindOrCreateProduct(ctx, req.ProductName)
	if err != nil {
		return nil, err
	}

	shop, err := svc.Repo.FindShopByName(ctx, req.Shop)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shop does not exist: %w", ErrNotFound)
		}
		return nil, err
	}

	purchaser, err := svc.Repo.FindUserByUsername(ctx, req.Purchaser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("purchaser does not exist: %w", ErrNotFound)
		}
		return nil, err
	}

	// The shop is not required to list the product among its available items.
	item := &models.OrderItem{
		OrderID:       req.Order,
		ProductID:     product.ID,
		ShopID:        shop.ID,
		PurchaserID:   purchaser.ID,
		PrimaryAmount: req.PrimaryAmount,
		Type:          req.Type,
	}
	return svc.Repo.CreateOrderItem(ctx, item)
}

func (svc *OrderItemService) GetOrderItem(ctx context.Context, id uint) (*models.OrderItem, error) {
	item, err := svc.Repo.GetOrderItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order item not found: %w", ErrNotFound)
	}
	return item, err
}

// EditOrderItem overwrites the item with the request values; fields left out
// of the request keep their current values. There is no transition guard on
// type, pending may jump straight to complete.
func (svc *OrderItemService) EditOrderItem(ctx context.Context, id uint, req transport.EditOrderItemRequest) (*models.OrderItem, error) {
	item, err := svc.Repo.GetOrderItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if req.Order != nil {
		item.OrderID = *req.Order
	}
	if req.Product != nil {
		item.ProductID = *req.Product
	}
	if req.Shop != nil {
		item.ShopID = *req.Shop
	}
	if req.Purchaser != nil {
		item.PurchaserID = *req.Purchaser
	}
	if req.PrimaryAmount != nil {
		item.PrimaryAmount = *req.PrimaryAmount
	}
	if req.Type != nil {
		if !models.ValidItemType(*req.Type) {
			return nil, fmt.Errorf("%w: type must be one of pending, in_progress, complete", ErrValidation)
		}
		item.Type = *req.Type
	}
	if req.CurrentPrice != nil {
		item.CurrentPrice = *req.CurrentPrice
	}

	if err := svc.Repo.SaveOrderItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (svc *OrderItemService) DeleteOrderItem(ctx context.Context, id uint) error {
	if _, err := svc.Repo.GetOrderItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order item not found: %w", ErrNotFound)
		}
		return err
	}
	return svc.Repo.DeleteOrderItem(ctx, id)
}

func (svc *OrderItemService) ListOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	return svc.Repo.ListOrderItems(ctx)
}

func (svc *OrderItemService) ListByState(ctx context.Context, itemType string) ([]models.OrderItem, error) {
	if !models.ValidItemType(itemType) {
		return nil, fmt.Errorf("%w: unknown item type %q", ErrValidation, itemType)
	}
	return svc.Repo.ListOrderItemsByType(ctx, itemType)
}

// ListBySameShop returns the active order's items for one shop. There must be
// an active order for the projection to make sense.
func (svc *OrderItemService) ListBySameShop(ctx context.Context, shopName string) ([]models.OrderItem, error) {
	activeOrder, err := svc.Repo.FirstActiveOrder(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active order not found: %w", ErrNotFound)
		}
		return nil, err
	}

	shop, err := svc.Repo.FindShopByName(ctx, shopName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shop does not exist: %w", ErrNotFound)
		}
		return nil, err
	}

	return svc.Repo.ListOrderItemsByOrderAndShop(ctx, activeOrder.ID, shop.ID)
}
