package service

import (
	"context"
	"strings"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/repository"
)

// AboutService manages about-page records. Writes are restricted to staff.
type AboutService interface {
	List(ctx context.Context, skip, limit int) ([]models.About, error)
	Get(ctx context.Context, id int64) (*models.About, error)
	Create(ctx context.Context, actor Actor, aboutID string) (*models.About, error)
	Update(ctx context.Context, id int64, actor Actor, aboutID string) (*models.About, error)
	Delete(ctx context.Context, id int64, actor Actor) error
}

type aboutService struct {
	abouts repository.AboutRepository
}

// NewAboutService creates a new AboutService instance.
func NewAboutService(abouts repository.AboutRepository) AboutService {
	return &aboutService{abouts: abouts}
}

func (s *aboutService) List(ctx context.Context, skip, limit int) ([]models.About, error) {
	if err := ValidatePagination(skip, limit); err != nil {
		return nil, err
	}
	return s.abouts.List(ctx, skip, limit)
}

func (s *aboutService) Get(ctx context.Context, id int64) (*models.About, error) {
	about, err := s.abouts.FindByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("about with id %d not found", id)
		}
		return nil, err
	}
	return about, nil
}

func (s *aboutService) Create(ctx context.Context, actor Actor, aboutID string) (*models.About, error) {
	if !actor.IsStaff {
		return nil, permissionDenied("only staff can manage about entries")
	}
	aboutID = strings.TrimSpace(aboutID)
	if aboutID == "" {
		return nil, newValidationError("about_id", "this field is required")
	}

	about := &models.About{AboutID: aboutID}
	if err := s.abouts.Create(ctx, about); err != nil {
		return nil, err
	}
	return about, nil
}

func (s *aboutService) Update(ctx context.Context, id int64, actor Actor, aboutID string) (*models.About, error) {
	if !actor.IsStaff {
		return nil, permissionDenied("only staff can manage about entries")
	}
	aboutID = strings.TrimSpace(aboutID)
	if aboutID == "" {
		return nil, newValidationError("about_id", "this field is required")
	}

	about, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	about.AboutID = aboutID
	if err := s.abouts.Update(ctx, about); err != nil {
		return nil, err
	}
	return about, nil
}

func (s *aboutService) Delete(ctx context.Context, id int64, actor Actor) error {
	if !actor.IsStaff {
		return permissionDenied("only staff can manage about entries")
	}

	about, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.abouts.Delete(ctx, about)
}
