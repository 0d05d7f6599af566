// Package repository implements the outbound storage ports on gorm/Postgres.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-blog-api/internal/domain"
	"go-blog-api/internal/port/outbound"
)

type UserRepository struct {
	db *gorm.DB
}

var _ outbound.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and fills in the generated ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %q already registered: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	*user = *row.toEntity()
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", strings.TrimSpace(email))
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toEntity(), nil
}

// Update writes every mutable column of user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":       user.Name,
			"email":      user.Email,
			"password":   user.PasswordHash,
			"avatar":     user.Avatar,
			"role":       string(user.Role),
			"updated_at": user.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("email %q already registered: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the user together with the posts they own.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&postModel{}).Error; err != nil {
			return fmt.Errorf("delete user posts: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&userModel{})
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
