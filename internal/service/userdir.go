package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
	"github.com/lattzaw/group_order/internal/repo"
)

// UserService is the user directory: roles, presence and profiles. It does not
// issue or verify credentials, that lives with the auth collaborator.
type UserService struct {
	Repo *repo.GormRepo
}

// CreateUser provisions a directory entry together with its profile. A blank
// username or full name defaults to the local part of the email address.
func (svc *UserService) CreateUser(ctx context.Context, username, email, fullName, role string) (*models.User, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if role == "" {
		role = models.RoleNormalUser
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	localPart := email[:strings.Index(email, "@")]
	if username == "" {
		username = localPart
	}
	if fullName == "" {
		fullName = localPart
	}

	if _, err := svc.Repo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		FullName: fullName,
		Role:     role,
	}
	profile := &models.Profile{FullName: fullName}
	if err := svc.Repo.CreateUserWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}
	return user, nil
}

func (svc *UserService) ResolveByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := svc.Repo.FindUserByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return user, err
}

func (svc *UserService) ResolveByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := svc.Repo.FindUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return user, err
}

func (svc *UserService) UpdateRole(ctx context.Context, id uint, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	user, err := svc.Repo.UpdateUserRole(ctx, id, role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return user, err
}

func (svc *UserService) SetPresence(ctx context.Context, id uint, active bool) (*models.User, error) {
	user, err := svc.Repo.UpdateUserPresence(ctx, id, active)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return user, err
}

func (svc *UserService) ListActiveUsers(ctx context.Context) ([]models.User, error) {
	return svc.Repo.ListActiveUsers(ctx)
}

func (svc *UserService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := svc.Repo.FindProfileByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile not found: %w", ErrNotFound)
	}
	return profile, err
}
