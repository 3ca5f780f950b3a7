package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GunarsK-portfolio/content-service/internal/database"
	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo UserRepository, name string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        name + "@example.com",
		Username:     name,
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createPost(t *testing.T, repo PostRepository, authorID int64, slug string, mutate func(*models.Post)) *models.Post {
	t.Helper()

	post := &models.Post{Entry: models.Entry{
		Title:    "Title " + slug,
		Slug:     slug,
		Content:  "Body of " + slug,
		AuthorID: authorID,
	}}
	if mutate != nil {
		mutate(post)
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

// =============================================================================
// User Repository Tests
// =============================================================================

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	user := createUser(t, repo, "alice")
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive, "new users default to active")

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	user.FirstName = "Alice"
	require.NoError(t, repo.Update(ctx, user))

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.FirstName)

	require.NoError(t, repo.Delete(ctx, byID))

	_, err = repo.FindByID(ctx, user.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	createUser(t, repo, "bob")

	err := repo.Create(context.Background(), &models.User{
		Email:        "bob@example.com",
		Username:     "other",
		PasswordHash: "hash",
	})
	assert.Error(t, err)
}

func TestUserRepository_ListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	for i := 0; i < 5; i++ {
		createUser(t, repo, fmt.Sprintf("user%d", i))
	}

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)

	all, err := repo.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, all[1].ID, page[0].ID)
	assert.Equal(t, all[2].ID, page[1].ID)
}

// =============================================================================
// Entry Repository Tests
// =============================================================================

func TestEntryRepository_ListOrderAndSlice(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	author := createUser(t, users, "writer")
	for i := 0; i < 6; i++ {
		createPost(t, posts, author.ID, fmt.Sprintf("post-%d", i), nil)
	}

	all, err := posts.List(ctx, 0, 100, false)
	require.NoError(t, err)
	require.Len(t, all, 6)
	// Newest first
	assert.Equal(t, "post-5", all[0].Slug)
	assert.Equal(t, "post-0", all[5].Slug)
	require.NotNil(t, all[0].Author)
	assert.Equal(t, "writer", all[0].Author.Username)

	page, err := posts.List(ctx, 2, 3, false)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, all[2].ID, page[0].ID)
	assert.Equal(t, all[4].ID, page[2].ID)

	tail, err := posts.List(ctx, 5, 10, false)
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestEntryRepository_PublishedFilter(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	author := createUser(t, NewUserRepository(db), "writer")
	posts := NewPostRepository(db)

	now := time.Now()
	createPost(t, posts, author.ID, "draft", nil)
	createPost(t, posts, author.ID, "live", func(p *models.Post) {
		p.SetPublished(true, now)
	})

	published, err := posts.List(ctx, 0, 10, true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "live", published[0].Slug)
	assert.NotNil(t, published[0].PublishedAt)
}

func TestEntryRepository_FindBySlugAndCategory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	author := createUser(t, NewUserRepository(db), "writer")
	categories := NewCategoryRepository(db)
	posts := NewPostRepository(db)

	category := &models.Category{Name: "Go", Slug: "go"}
	require.NoError(t, categories.Create(ctx, category))

	createPost(t, posts, author.ID, "with-category", func(p *models.Post) {
		p.CategoryID = &category.ID
	})
	createPost(t, posts, author.ID, "without-category", nil)

	found, err := posts.FindBySlug(ctx, "with-category")
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Go", found.Category.Name)

	inCategory, err := posts.ListByCategory(ctx, category.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, "with-category", inCategory[0].Slug)

	_, err = posts.FindBySlug(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestEntryRepository_ListByAuthor(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")
	createPost(t, posts, alice.ID, "a-1", nil)
	createPost(t, posts, alice.ID, "a-2", nil)
	createPost(t, posts, bob.ID, "b-1", nil)

	byAlice, err := posts.ListByAuthor(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	limited, err := posts.ListByAuthor(ctx, alice.ID, 0, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEntryRepository_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, NewUserRepository(db), "writer")
	posts := NewPostRepository(db)
	samples := NewSampleRepository(db)

	createPost(t, posts, author.ID, "same", nil)

	err := posts.Create(context.Background(), &models.Post{Entry: models.Entry{
		Title: "Again", Slug: "same", Content: "x", AuthorID: author.ID,
	}})
	assert.Error(t, err)

	// Samples have their own slug space.
	err = samples.Create(context.Background(), &models.Sample{Entry: models.Entry{
		Title: "Sample", Slug: "same", Content: "x", AuthorID: author.ID,
	}})
	assert.NoError(t, err)
}

func TestEntryRepository_UpdateDeleteAndViews(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	author := createUser(t, NewUserRepository(db), "writer")
	posts := NewPostRepository(db)

	post := createPost(t, posts, author.ID, "editable", nil)

	post.Title = "Edited"
	require.NoError(t, posts.Update(ctx, post))

	require.NoError(t, posts.IncrementViews(ctx, post.ID))
	require.NoError(t, posts.IncrementViews(ctx, post.ID))

	reloaded, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", reloaded.Title)
	assert.Equal(t, 2, reloaded.ViewsCount)

	err = posts.IncrementViews(ctx, 9999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, posts.Delete(ctx, reloaded))
	_, err = posts.FindByID(ctx, post.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestEntryRepository_UpdateKeepsCounters(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	author := createUser(t, NewUserRepository(db), "writer")
	posts := NewPostRepository(db)

	post := createPost(t, posts, author.ID, "counted", nil)
	stale, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)

	require.NoError(t, posts.IncrementViews(ctx, post.ID))
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).UpdateColumn("likes_count", 3).Error)

	stale.Title = "Edited from a stale copy"
	require.NoError(t, posts.Update(ctx, stale))

	reloaded, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited from a stale copy", reloaded.Title)
	assert.Equal(t, 1, reloaded.ViewsCount)
	assert.Equal(t, 3, reloaded.LikesCount)
}

func TestEntryRepository_UpdateWritesZeroValues(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	author := createUser(t, NewUserRepository(db), "writer")
	category := &models.Category{Name: "Go", Slug: "go"}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, category))
	posts := NewPostRepository(db)

	post := createPost(t, posts, author.ID, "flipped", func(p *models.Post) {
		p.CategoryID = &category.ID
		p.SetPublished(true, time.Now())
	})

	post.CategoryID = nil
	post.IsPublished = false
	require.NoError(t, posts.Update(ctx, post))

	reloaded, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)
	assert.False(t, reloaded.IsPublished)
	assert.NotNil(t, reloaded.PublishedAt)
}

func TestEntryRepository_Search(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	author := createUser(t, NewUserRepository(db), "writer")
	samples := NewSampleRepository(db)

	excerpt := "An EXCERPT about gophers"
	for _, s := range []models.Sample{
		{Entry: models.Entry{Title: "Learning Go", Slug: "s1", Content: "plain", AuthorID: author.ID}},
		{Entry: models.Entry{Title: "Other", Slug: "s2", Content: "go routines everywhere", AuthorID: author.ID}},
		{Entry: models.Entry{Title: "Third", Slug: "s3", Content: "nothing", Excerpt: &excerpt, AuthorID: author.ID}},
		{Entry: models.Entry{Title: "100% done", Slug: "s4", Content: "percent", AuthorID: author.ID}},
	} {
		sample := s
		require.NoError(t, samples.Create(ctx, &sample))
	}

	results, err := samples.Search(ctx, "GO")
	require.NoError(t, err)
	assert.Len(t, results, 3, "title, content and excerpt all match case-insensitively")

	results, err = samples.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, results, 1, "wildcards are matched literally")
	assert.Equal(t, "s4", results[0].Slug)

	results, err = samples.Search(ctx, "absent")
	require.NoError(t, err)
	assert.Empty(t, results)
}

// =============================================================================
// Category / About Repository Tests
// =============================================================================

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, &models.Category{Name: "Zeta", Slug: "zeta"}))
	require.NoError(t, repo.Create(ctx, &models.Category{Name: "Alpha", Slug: "alpha"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)

	bySlug, err := repo.FindBySlug(ctx, "zeta")
	require.NoError(t, err)
	byName, err := repo.FindByName(ctx, "Zeta")
	require.NoError(t, err)
	assert.Equal(t, bySlug.ID, byName.ID)

	require.NoError(t, repo.Delete(ctx, bySlug))
	_, err = repo.FindByID(ctx, bySlug.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestAboutRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAboutRepository(setupTestDB(t))

	about := &models.About{AboutID: "first"}
	require.NoError(t, repo.Create(ctx, about))
	require.NoError(t, repo.Create(ctx, &models.About{AboutID: "second"}))

	list, err := repo.List(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].AboutID)

	about.AboutID = "renamed"
	require.NoError(t, repo.Update(ctx, about))
	found, err := repo.FindByID(ctx, about.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", found.AboutID)

	require.NoError(t, repo.Delete(ctx, found))
	_, err = repo.FindByID(ctx, about.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}
