package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
)

// CreateUserWithProfile persists the user and its profile in one transaction.
// Profile creation is an explicit step, not a persistence hook.
func (r *GormRepo) CreateUserWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UpdateUserRole(ctx context.Context, id uint, role string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("role", role).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UpdateUserPresence(ctx context.Context, id uint, active bool) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("is_active_now", active).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListActiveUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Where("is_active_now = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) FindProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
