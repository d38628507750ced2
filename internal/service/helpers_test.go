package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
	"github.com/lattzaw/group_order/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Product{},
		&models.Shop{},
		&models.Order{},
		&models.OrderPurchaser{},
		&models.OrderItem{},
		&models.OrderItemMessage{},
		&models.OrderItemMessageNotification{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return repo.New(db)
}

func seedUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Role:     models.RolePurchaser,
	}
	if err := r.DB.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedShop(t *testing.T, r *repo.GormRepo, name string) *models.Shop {
	t.Helper()

	shop := &models.Shop{Name: name, ContactNumber: "09-000000", Address: "downtown"}
	if err := r.DB.Create(shop).Error; err != nil {
		t.Fatalf("seed shop %s: %v", name, err)
	}
	return shop
}

func seedOrder(t *testing.T, r *repo.GormRepo, maker *models.User, active bool) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderCode:       "01-01-2026",
		OrderMakerID:    maker.ID,
		OrderMakerMoney: decimal.NewFromInt(10000),
		IsActiveNow:     active,
	}
	if err := r.DB.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}
