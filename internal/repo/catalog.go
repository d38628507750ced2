package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
)

// FindOrCreateProduct resolves a product by name, creating a bare record when
// no product with that name exists. The lookup is idempotent: repeated calls
// with the same name return the same row.
func (r *GormRepo) FindOrCreateProduct(ctx context.Context, name string) (*models.Product, bool, error) {
	var product models.Product
	created := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).First(&product)
		if res.Error == nil {
			return nil
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}
		product = models.Product{Name: name}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &product, created, nil
}

func (r *GormRepo) FindShopByName(ctx context.Context, name string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *GormRepo) GetShop(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).Preload("AvailableItems").First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *GormRepo) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}
