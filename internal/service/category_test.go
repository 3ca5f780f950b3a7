package service

import (
	"context"
	"errors"
	"testing"

	"github.com/GunarsK-portfolio/content-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_StaffOnlyWrites(t *testing.T) {
	f := setupEntryFixture(t)
	ctx := context.Background()

	_, err := f.categories.Create(ctx, f.authorActor(), CategoryInput{Name: "Nope"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	category, err := f.categories.Create(ctx, f.staff, CategoryInput{Name: "Tutorials"})
	require.NoError(t, err)

	_, err = f.categories.Update(ctx, category.ID, f.authorActor(), CategoryInput{Name: "Renamed"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, f.categories.Delete(ctx, category.ID, f.authorActor()), ErrPermissionDenied)
}

func TestCategoryService_CRUD(t *testing.T) {
	f := setupEntryFixture(t)
	ctx := context.Background()

	description := "How-to guides"
	category, err := f.categories.Create(ctx, f.staff, CategoryInput{Name: "  Guides ", Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Guides", category.Name)
	assert.Equal(t, "guides", category.Slug)

	bySlug, err := f.categories.GetBySlug(ctx, "guides")
	require.NoError(t, err)
	assert.Equal(t, category.ID, bySlug.ID)

	updated, err := f.categories.Update(ctx, category.ID, f.staff, CategoryInput{Name: "Deep Guides", Slug: "deep-guides"})
	require.NoError(t, err)
	assert.Equal(t, "Deep Guides", updated.Name)
	assert.Equal(t, "deep-guides", updated.Slug)
	require.NotNil(t, updated.Description)
	assert.Equal(t, description, *updated.Description)

	list, err := f.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.categories.Delete(ctx, category.ID, f.staff))
	_, err = f.categories.Get(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_Uniqueness(t *testing.T) {
	f := setupEntryFixture(t)
	ctx := context.Background()

	_, err := f.categories.Create(ctx, f.staff, CategoryInput{Name: "Go"})
	require.NoError(t, err)
	other, err := f.categories.Create(ctx, f.staff, CategoryInput{Name: "Rust"})
	require.NoError(t, err)

	var verr *ValidationError

	_, err = f.categories.Create(ctx, f.staff, CategoryInput{Name: "Go"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)

	_, err = f.categories.Update(ctx, other.ID, f.staff, CategoryInput{Slug: "go"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "slug", verr.Field)

	_, err = f.categories.Create(ctx, f.staff, CategoryInput{Name: ""})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

func TestCategoryDelete_DetachesEntries(t *testing.T) {
	f := setupEntryFixture(t)
	ctx := context.Background()

	category, err := f.categories.Create(ctx, f.staff, CategoryInput{Name: "Ephemeral"})
	require.NoError(t, err)
	post, err := f.posts.Create(ctx, f.author.ID, EntryInput{Title: "Kept", Content: "x", CategoryID: &category.ID})
	require.NoError(t, err)

	require.NoError(t, f.categories.Delete(ctx, category.ID, f.staff))

	reloaded, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)
	assert.Nil(t, reloaded.Category)
}

func TestAboutService(t *testing.T) {
	f := setupEntryFixture(t)
	ctx := context.Background()
	svc := NewAboutService(repository.NewAboutRepository(f.db))

	_, err := svc.Create(ctx, f.authorActor(), "me")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Create(ctx, f.staff, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	about, err := svc.Create(ctx, f.staff, "team-page")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, about.ID, f.staff, "company-page")
	require.NoError(t, err)
	assert.Equal(t, "company-page", updated.AboutID)

	list, err := svc.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, 0, 0)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Delete(ctx, about.ID, f.staff))
	_, err = svc.Get(ctx, about.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
