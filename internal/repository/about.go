package repository

import (
	"context"
	"fmt"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"gorm.io/gorm"
)

// AboutRepository defines the interface for about data operations.
type AboutRepository interface {
	List(ctx context.Context, skip, limit int) ([]models.About, error)
	FindByID(ctx context.Context, id int64) (*models.About, error)
	Create(ctx context.Context, about *models.About) error
	Update(ctx context.Context, about *models.About) error
	Delete(ctx context.Context, about *models.About) error
}

type aboutRepository struct {
	db *gorm.DB
}

// NewAboutRepository creates a new AboutRepository instance.
func NewAboutRepository(db *gorm.DB) AboutRepository {
	return &aboutRepository{db: db}
}

func (r *aboutRepository) List(ctx context.Context, skip, limit int) ([]models.About, error) {
	var abouts []models.About
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&abouts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list abouts: %w", err)
	}
	return abouts, nil
}

func (r *aboutRepository) FindByID(ctx context.Context, id int64) (*models.About, error) {
	var about models.About
	if err := r.db.WithContext(ctx).First(&about, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find about by id %d: %w", id, err)
	}
	return &about, nil
}

func (r *aboutRepository) Create(ctx context.Context, about *models.About) error {
	if err := r.db.WithContext(ctx).Create(about).Error; err != nil {
		return fmt.Errorf("failed to create about: %w", err)
	}
	return nil
}

func (r *aboutRepository) Update(ctx context.Context, about *models.About) error {
	if err := r.db.WithContext(ctx).Save(about).Error; err != nil {
		return fmt.Errorf("failed to update about id %d: %w", about.ID, err)
	}
	return nil
}

func (r *aboutRepository) Delete(ctx context.Context, about *models.About) error {
	if err := r.db.WithContext(ctx).Delete(about).Error; err != nil {
		return fmt.Errorf("failed to delete about id %d: %w", about.ID, err)
	}
	return nil
}
