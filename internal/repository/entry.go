package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultEntryOrder = "created_at DESC, id DESC"

// EntryRepository defines data operations shared by posts and samples.
type EntryRepository[T any] interface {
	List(ctx context.Context, skip, limit int, publishedOnly bool) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	FindBySlug(ctx context.Context, slug string) (*T, error)
	ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]T, error)
	ListByCategory(ctx context.Context, categoryID int64, skip, limit int) ([]T, error)
	Create(ctx context.Context, entry *T) error
	Update(ctx context.Context, entry *T) error
	Delete(ctx context.Context, entry *T) error
	IncrementViews(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]T, error)
}

// PostRepository is the entry repository for posts.
type PostRepository = EntryRepository[models.Post]

// SampleRepository is the entry repository for samples.
type SampleRepository = EntryRepository[models.Sample]

type entryRepository[T any] struct {
	db   *gorm.DB
	name string
}

// NewEntryRepository creates an EntryRepository for any model embedding models.Entry.
func NewEntryRepository[T any, PT models.EntryModel[T]](db *gorm.DB) EntryRepository[T] {
	var zero T
	return &entryRepository[T]{db: db, name: PT(&zero).TableName()}
}

// NewPostRepository creates a new PostRepository instance.
func NewPostRepository(db *gorm.DB) PostRepository {
	return NewEntryRepository[models.Post](db)
}

// NewSampleRepository creates a new SampleRepository instance.
func NewSampleRepository(db *gorm.DB) SampleRepository {
	return NewEntryRepository[models.Sample](db)
}

func (r *entryRepository[T]) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author").Preload("Category")
}

func (r *entryRepository[T]) List(ctx context.Context, skip, limit int, publishedOnly bool) ([]T, error) {
	query := r.withRelations(ctx)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var entries []T
	if err := query.Order(defaultEntryOrder).Offset(skip).Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.name, err)
	}
	return entries, nil
}

func (r *entryRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entry T
	if err := r.withRelations(ctx).First(&entry, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s by id %d: %w", r.name, id, err)
	}
	return &entry, nil
}

func (r *entryRepository[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	var entry T
	if err := r.withRelations(ctx).Where("slug = ?", slug).First(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s by slug %s: %w", r.name, slug, err)
	}
	return &entry, nil
}

func (r *entryRepository[T]) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]T, error) {
	var entries []T
	err := r.withRelations(ctx).
		Where("author_id = ?", authorID).
		Order(defaultEntryOrder).
		Offset(skip).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s by author %d: %w", r.name, authorID, err)
	}
	return entries, nil
}

func (r *entryRepository[T]) ListByCategory(ctx context.Context, categoryID int64, skip, limit int) ([]T, error) {
	var entries []T
	err := r.withRelations(ctx).
		Where("category_id = ?", categoryID).
		Order(defaultEntryOrder).
		Offset(skip).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s by category %d: %w", r.name, categoryID, err)
	}
	return entries, nil
}

func (r *entryRepository[T]) Create(ctx context.Context, entry *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.name, err)
	}
	return nil
}

// editableEntryColumns are written by Update. Counters move only through
// IncrementViews so concurrent views are never overwritten.
var editableEntryColumns = []string{
	"title", "slug", "content", "excerpt", "category_id",
	"is_published", "published_at", "updated_at",
}

func (r *entryRepository[T]) Update(ctx context.Context, entry *T) error {
	err := r.db.WithContext(ctx).
		Model(entry).
		Select(editableEntryColumns).
		Updates(entry).Error
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", r.name, err)
	}
	return nil
}

func (r *entryRepository[T]) Delete(ctx context.Context, entry *T) error {
	if err := r.db.WithContext(ctx).Delete(entry).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.name, err)
	}
	return nil
}

func (r *entryRepository[T]) IncrementViews(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to increment views for %s %d: %w", r.name, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to increment views for %s %d: %w", r.name, id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *entryRepository[T]) Search(ctx context.Context, query string) ([]T, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var entries []T
	err := r.withRelations(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR LOWER(COALESCE(excerpt, '')) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order(defaultEntryOrder).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", r.name, err)
	}
	return entries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
