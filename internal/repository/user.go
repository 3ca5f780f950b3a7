// Package repository provides the data access layer for the content service.
package repository

import (
	"context"
	"fmt"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// findOne loads the single user matching column = value.
func (r *userRepository) findOne(ctx context.Context, column string, value interface{}) (*models.User, error) {
	user := new(models.User)
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).Take(user).Error; err != nil {
		return nil, fmt.Errorf("user lookup by %s %v: %w", column, value, err)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if err := q.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users (skip=%d limit=%d): %w", skip, limit, err)
	}
	return users, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username", username)
}

// FindByEmail expects an already normalized (lower-cased) address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("insert user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user %d: %w", user.ID, err)
	}
	return nil
}

// Delete removes the user row; posts and samples follow through ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Where("id = ?", user.ID).Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("delete user %d: %w", user.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete user %d: %w", user.ID, gorm.ErrRecordNotFound)
	}
	return nil
}
