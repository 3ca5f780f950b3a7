package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/GunarsK-portfolio/content-service/internal/events"
	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/repository"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const maxTitleLength = 255

// EntryInput carries the fields accepted when creating a post or sample.
// PublishedAt is honoured only when IsPublished is set; drafts never carry one.
type EntryInput struct {
	Title       string
	Slug        string
	Content     string
	Excerpt     *string
	CategoryID  *int64
	IsPublished bool
	PublishedAt *time.Time
}

func publishTime(input EntryInput, now time.Time) time.Time {
	if input.IsPublished && input.PublishedAt != nil {
		return *input.PublishedAt
	}
	return now
}

// EntryUpdate carries optional fields for an update; nil means unchanged.
// ClearCategory detaches the entry from its category and cannot be combined
// with CategoryID.
type EntryUpdate struct {
	Title         *string
	Slug          *string
	Content       *string
	Excerpt       *string
	CategoryID    *int64
	ClearCategory bool
	IsPublished   *bool
}

// EntryService defines business operations shared by posts and samples.
type EntryService[T any] interface {
	List(ctx context.Context, skip, limit int, publishedOnly bool) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]T, error)
	ListByCategory(ctx context.Context, categoryID int64, skip, limit int) ([]T, error)
	Create(ctx context.Context, authorID int64, input EntryInput) (*T, error)
	Update(ctx context.Context, id int64, actor Actor, input EntryUpdate) (*T, error)
	Delete(ctx context.Context, id int64, actor Actor) error
	IncrementViews(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]T, error)
}

// PostService is the entry service for posts.
type PostService = EntryService[models.Post]

// SampleService is the entry service for samples.
type SampleService = EntryService[models.Sample]

type entryService[T any, PT models.EntryModel[T]] struct {
	entity     string
	entries    repository.EntryRepository[T]
	categories repository.CategoryRepository
	publisher  events.Publisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewEntryService creates an EntryService. entity names the model in
// messages and events ("post", "sample").
func NewEntryService[T any, PT models.EntryModel[T]](
	entity string,
	entries repository.EntryRepository[T],
	categories repository.CategoryRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) EntryService[T] {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &entryService[T, PT]{
		entity:     entity,
		entries:    entries,
		categories: categories,
		publisher:  publisher,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NewPostService creates a new PostService instance.
func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository, publisher events.Publisher, logger *zap.Logger) PostService {
	return NewEntryService[models.Post]("post", posts, categories, publisher, logger)
}

// NewSampleService creates a new SampleService instance.
func NewSampleService(samples repository.SampleRepository, categories repository.CategoryRepository, publisher events.Publisher, logger *zap.Logger) SampleService {
	return NewEntryService[models.Sample]("sample", samples, categories, publisher, logger)
}

func (s *entryService[T, PT]) List(ctx context.Context, skip, limit int, publishedOnly bool) ([]T, error) {
	if err := ValidatePagination(skip, limit); err != nil {
		return nil, err
	}
	return s.entries.List(ctx, skip, limit, publishedOnly)
}

func (s *entryService[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("%s with id %d not found", s.entity, id)
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService[T, PT]) GetBySlug(ctx context.Context, slugValue string) (*T, error) {
	entry, err := s.entries.FindBySlug(ctx, slugValue)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("%s with slug %s not found", s.entity, slugValue)
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService[T, PT]) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]T, error) {
	if err := ValidatePagination(skip, limit); err != nil {
		return nil, err
	}
	return s.entries.ListByAuthor(ctx, authorID, skip, limit)
}

func (s *entryService[T, PT]) ListByCategory(ctx context.Context, categoryID int64, skip, limit int) ([]T, error) {
	if err := ValidatePagination(skip, limit); err != nil {
		return nil, err
	}
	return s.entries.ListByCategory(ctx, categoryID, skip, limit)
}

func (s *entryService[T, PT]) Create(ctx context.Context, authorID int64, input EntryInput) (*T, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, newValidationError("content", "this field is required")
	}
	if err := s.validateCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	slugValue, err := resolveSlug(input.Slug, input.Title)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, slugValue, 0); err != nil {
		return nil, err
	}

	var entry T
	e := PT(&entry).GetEntry()
	e.Title = strings.TrimSpace(input.Title)
	e.Slug = slugValue
	e.Content = input.Content
	e.Excerpt = input.Excerpt
	e.AuthorID = authorID
	e.CategoryID = input.CategoryID
	e.SetPublished(input.IsPublished, publishTime(input, s.now()))

	if err := s.entries.Create(ctx, &entry); err != nil {
		return nil, s.translateWriteError(err)
	}

	s.publish(ctx, events.ActionCreated, e, authorID)
	if e.IsPublished {
		s.publish(ctx, events.ActionPublished, e, authorID)
	}

	return s.Get(ctx, e.ID)
}

func (s *entryService[T, PT]) Update(ctx context.Context, id int64, actor Actor, input EntryUpdate) (*T, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	e := PT(entry).GetEntry()
	if !actor.CanModify(e.AuthorID) {
		return nil, permissionDenied(fmt.Sprintf("you can only update your own %ss", s.entity))
	}

	switch {
	case input.ClearCategory && input.CategoryID != nil:
		return nil, newValidationError("category", "cannot set and clear the category in one update")
	case input.ClearCategory:
		e.CategoryID = nil
	case input.CategoryID != nil:
		if err := s.validateCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		e.CategoryID = input.CategoryID
	}
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		e.Title = strings.TrimSpace(*input.Title)
	}
	if input.Slug != nil && *input.Slug != e.Slug {
		slugValue, err := resolveSlug(*input.Slug, e.Title)
		if err != nil {
			return nil, err
		}
		if err := s.ensureSlugAvailable(ctx, slugValue, e.ID); err != nil {
			return nil, err
		}
		e.Slug = slugValue
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, newValidationError("content", "this field may not be blank")
		}
		e.Content = *input.Content
	}
	if input.Excerpt != nil {
		e.Excerpt = input.Excerpt
	}

	firstPublish := false
	if input.IsPublished != nil {
		firstPublish = e.SetPublished(*input.IsPublished, s.now())
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, s.translateWriteError(err)
	}

	if firstPublish {
		s.publish(ctx, events.ActionPublished, e, actor.UserID)
	}

	return s.Get(ctx, e.ID)
}

func (s *entryService[T, PT]) Delete(ctx context.Context, id int64, actor Actor) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	e := PT(entry).GetEntry()
	if !actor.CanModify(e.AuthorID) {
		return permissionDenied(fmt.Sprintf("you can only delete your own %ss", s.entity))
	}

	if err := s.entries.Delete(ctx, entry); err != nil {
		return err
	}

	s.publish(ctx, events.ActionDeleted, e, actor.UserID)
	return nil
}

func (s *entryService[T, PT]) IncrementViews(ctx context.Context, id int64) error {
	if err := s.entries.IncrementViews(ctx, id); err != nil {
		if isRecordNotFound(err) {
			return notFound("%s with id %d not found", s.entity, id)
		}
		return err
	}
	return nil
}

func (s *entryService[T, PT]) Search(ctx context.Context, query string) ([]T, error) {
	return s.entries.Search(ctx, strings.TrimSpace(query))
}

func (s *entryService[T, PT]) validateCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *categoryID); err != nil {
		if isRecordNotFound(err) {
			return newValidationError("category", "category with id %d not found", *categoryID)
		}
		return err
	}
	return nil
}

func (s *entryService[T, PT]) ensureSlugAvailable(ctx context.Context, slugValue string, selfID int64) error {
	existing, err := s.entries.FindBySlug(ctx, slugValue)
	if err != nil {
		if isRecordNotFound(err) {
			return nil
		}
		return err
	}
	if PT(existing).GetEntry().ID != selfID {
		return newValidationError("slug", "%s with this slug already exists", s.entity)
	}
	return nil
}

func (s *entryService[T, PT]) translateWriteError(err error) error {
	if isDuplicateKey(err) {
		return newValidationError("slug", "%s with this slug already exists", s.entity)
	}
	return err
}

func (s *entryService[T, PT]) publish(ctx context.Context, action string, e *models.Entry, actorID int64) {
	err := s.publisher.Publish(ctx, events.Event{
		Entity:     s.entity,
		Action:     action,
		ID:         e.ID,
		ActorID:    actorID,
		Slug:       e.Slug,
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("entity", s.entity),
			zap.String("action", action),
			zap.Int64("id", e.ID),
			zap.Error(err))
	}
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return newValidationError("title", "this field is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return newValidationError("title", "ensure this field has no more than %d characters", maxTitleLength)
	}
	return nil
}

// resolveSlug normalizes an explicit slug or derives one from fallback.
func resolveSlug(explicit, fallback string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = fallback
	}
	value := slug.Make(source)
	if value == "" {
		return "", newValidationError("slug", "could not derive a slug from %q", source)
	}
	if len(value) > maxTitleLength {
		value = value[:maxTitleLength]
	}
	return value, nil
}
