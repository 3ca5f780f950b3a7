package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/repository"
)

const maxCategoryNameLength = 100

// CategoryInput carries category fields. On update, empty Name and Slug
// keep the stored values and nil Description leaves it unchanged.
type CategoryInput struct {
	Name        string
	Slug        string
	Description *string
}

// CategoryService manages categories. Writes are restricted to staff.
type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, actor Actor, input CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id int64, actor Actor, input CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id int64, actor Actor) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("category with id %d not found", id)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slugValue string) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slugValue)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("category with slug %s not found", slugValue)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, actor Actor, input CategoryInput) (*models.Category, error) {
	if !actor.IsStaff {
		return nil, permissionDenied("only staff can manage categories")
	}

	name := strings.TrimSpace(input.Name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	slugValue, err := resolveSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, name, slugValue, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Slug:        slugValue,
		Description: input.Description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if isDuplicateKey(err) {
			return nil, newValidationError("name", "category with this name already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, actor Actor, input CategoryInput) (*models.Category, error) {
	if !actor.IsStaff {
		return nil, permissionDenied("only staff can manage categories")
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		if err := validateCategoryName(name); err != nil {
			return nil, err
		}
		category.Name = name
	}
	if strings.TrimSpace(input.Slug) != "" {
		slugValue, err := resolveSlug(input.Slug, category.Name)
		if err != nil {
			return nil, err
		}
		category.Slug = slugValue
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	if err := s.ensureUnique(ctx, category.Name, category.Slug, category.ID); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if isDuplicateKey(err) {
			return nil, newValidationError("name", "category with this name already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64, actor Actor) error {
	if !actor.IsStaff {
		return permissionDenied("only staff can manage categories")
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.categories.Delete(ctx, category)
}

func (s *categoryService) ensureUnique(ctx context.Context, name, slugValue string, selfID int64) error {
	if existing, err := s.categories.FindByName(ctx, name); err == nil {
		if existing.ID != selfID {
			return newValidationError("name", "category with this name already exists")
		}
	} else if !isRecordNotFound(err) {
		return err
	}

	if existing, err := s.categories.FindBySlug(ctx, slugValue); err == nil {
		if existing.ID != selfID {
			return newValidationError("slug", "category with this slug already exists")
		}
	} else if !isRecordNotFound(err) {
		return err
	}

	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return newValidationError("name", "this field is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return newValidationError("name", "ensure this field has no more than %d characters", maxCategoryNameLength)
	}
	return nil
}
