package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *handlerFixture) createPost(t *testing.T, as string, body EntryCreateRequest) models.Post {
	t.Helper()
	w := f.do(t, http.MethodPost, "/posts", as, body)
	expectStatus(t, w, http.StatusCreated)
	var post models.Post
	decodeJSON(t, w, &post)
	return post
}

func TestPostCreate(t *testing.T) {
	f := setupHandlerFixture(t)

	post := f.createPost(t, "author", EntryCreateRequest{Title: "Hello Gin", Content: "body", IsPublished: true})

	assert.Equal(t, "hello-gin", post.Slug)
	assert.Equal(t, f.user("author").ID, post.AuthorID)
	require.NotNil(t, post.Author)
	assert.Equal(t, "author", post.Author.Username)
	assert.NotNil(t, post.PublishedAt)
}

func TestPostCreate_Errors(t *testing.T) {
	f := setupHandlerFixture(t)

	tests := []struct {
		name       string
		as         string
		body       interface{}
		wantStatus int
		wantField  string
	}{
		{"anonymous", "", EntryCreateRequest{Title: "t", Content: "c"}, http.StatusUnauthorized, ""},
		{"missing title", "author", map[string]string{"content": "c"}, http.StatusBadRequest, "title"},
		{"bad slug", "author", EntryCreateRequest{Title: "t", Slug: "Not A Slug", Content: "c"}, http.StatusBadRequest, "slug"},
		{"unknown category", "author", EntryCreateRequest{Title: "t", Content: "c", CategoryID: int64Ptr(999)}, http.StatusBadRequest, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/posts", tt.as, tt.body)
			expectStatus(t, w, tt.wantStatus)
			if tt.wantField != "" {
				var resp ErrorResponse
				decodeJSON(t, w, &resp)
				assert.Contains(t, resp.Details, tt.wantField)
			}
		})
	}
}

func TestPostCreate_DuplicateSlug(t *testing.T) {
	f := setupHandlerFixture(t)
	f.createPost(t, "author", EntryCreateRequest{Title: "Same", Content: "a"})

	w := f.do(t, http.MethodPost, "/posts", "other", EntryCreateRequest{Title: "Same", Content: "b"})

	expectStatus(t, w, http.StatusBadRequest)
	var resp ErrorResponse
	decodeJSON(t, w, &resp)
	assert.Contains(t, resp.Details, "slug")
}

func TestPostGet_CountsViewsForOthersOnly(t *testing.T) {
	f := setupHandlerFixture(t)
	post := f.createPost(t, "author", EntryCreateRequest{Title: "Viewed", Content: "x"})
	path := fmt.Sprintf("/posts/%d", post.ID)

	var got models.Post

	w := f.do(t, http.MethodGet, path, "author", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &got)
	assert.Equal(t, 0, got.ViewsCount)

	w = f.do(t, http.MethodGet, path, "", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &got)
	assert.Equal(t, 1, got.ViewsCount)

	w = f.do(t, http.MethodGet, path, "other", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &got)
	assert.Equal(t, 2, got.ViewsCount)
}

func TestPostGet_NotFoundAndBadID(t *testing.T) {
	f := setupHandlerFixture(t)

	expectStatus(t, f.do(t, http.MethodGet, "/posts/404", "", nil), http.StatusNotFound)
	expectStatus(t, f.do(t, http.MethodGet, "/posts/abc", "", nil), http.StatusBadRequest)
	expectStatus(t, f.do(t, http.MethodGet, "/posts/slug/missing", "", nil), http.StatusNotFound)
}

func TestPostUpdate_Permissions(t *testing.T) {
	f := setupHandlerFixture(t)
	post := f.createPost(t, "author", EntryCreateRequest{Title: "Mine", Content: "x"})
	path := fmt.Sprintf("/posts/%d", post.ID)
	title := "Changed"

	expectStatus(t, f.do(t, http.MethodPut, path, "other", EntryUpdateRequest{Title: &title}), http.StatusForbidden)
	expectStatus(t, f.do(t, http.MethodPut, path, "", EntryUpdateRequest{Title: &title}), http.StatusUnauthorized)

	w := f.do(t, http.MethodPut, path, "admin", EntryUpdateRequest{Title: &title})
	expectStatus(t, w, http.StatusOK)
	var updated models.Post
	decodeJSON(t, w, &updated)
	assert.Equal(t, "Changed", updated.Title)
	assert.Equal(t, "mine", updated.Slug, "slug stays unless supplied")
}

func TestPostUpdate_PublishStampsOnce(t *testing.T) {
	f := setupHandlerFixture(t)
	post := f.createPost(t, "author", EntryCreateRequest{Title: "Draft", Content: "x"})
	path := fmt.Sprintf("/posts/%d", post.ID)
	assert.Nil(t, post.PublishedAt)

	var first, second models.Post
	w := f.do(t, http.MethodPut, path, "author", EntryUpdateRequest{IsPublished: boolPtr(true)})
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &first)
	require.NotNil(t, first.PublishedAt)

	expectStatus(t, f.do(t, http.MethodPut, path, "author", EntryUpdateRequest{IsPublished: boolPtr(false)}), http.StatusOK)
	w = f.do(t, http.MethodPut, path, "author", EntryUpdateRequest{IsPublished: boolPtr(true)})
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &second)

	require.NotNil(t, second.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(*second.PublishedAt))
}

func TestPostCreate_DraftDropsPublishedAt(t *testing.T) {
	f := setupHandlerFixture(t)
	backdated := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

	post := f.createPost(t, "author", EntryCreateRequest{Title: "Backdated", Content: "x", PublishedAt: &backdated})
	assert.Nil(t, post.PublishedAt)

	var published models.Post
	w := f.do(t, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID), "author", EntryUpdateRequest{IsPublished: boolPtr(true)})
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &published)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, published.PublishedAt.After(backdated))
}

func TestPostUpdate_ClearCategory(t *testing.T) {
	f := setupHandlerFixture(t)

	var category models.Category
	w := f.do(t, http.MethodPost, "/categories", "admin", CategoryRequest{Name: "Go"})
	expectStatus(t, w, http.StatusCreated)
	decodeJSON(t, w, &category)

	post := f.createPost(t, "author", EntryCreateRequest{Title: "Tagged", Content: "x", CategoryID: &category.ID})
	require.NotNil(t, post.CategoryID)
	path := fmt.Sprintf("/posts/%d", post.ID)

	expectStatus(t, f.do(t, http.MethodPut, path, "author", EntryUpdateRequest{CategoryID: &category.ID, ClearCategory: true}), http.StatusBadRequest)

	var cleared models.Post
	w = f.do(t, http.MethodPut, path, "author", EntryUpdateRequest{ClearCategory: true})
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &cleared)
	assert.Nil(t, cleared.CategoryID)
	assert.Nil(t, cleared.Category)
}

func TestPostDelete(t *testing.T) {
	f := setupHandlerFixture(t)
	post := f.createPost(t, "author", EntryCreateRequest{Title: "Gone", Content: "x"})
	path := fmt.Sprintf("/posts/%d", post.ID)

	expectStatus(t, f.do(t, http.MethodDelete, path, "other", nil), http.StatusForbidden)
	expectStatus(t, f.do(t, http.MethodDelete, path, "author", nil), http.StatusNoContent)
	expectStatus(t, f.do(t, http.MethodGet, path, "", nil), http.StatusNotFound)
}

func TestPostList_FiltersAndPagination(t *testing.T) {
	f := setupHandlerFixture(t)
	f.createPost(t, "author", EntryCreateRequest{Title: "Draft One", Content: "x"})
	f.createPost(t, "author", EntryCreateRequest{Title: "Live One", Content: "golang inside", IsPublished: true})
	f.createPost(t, "other", EntryCreateRequest{Title: "Live Two", Content: "x", IsPublished: true})

	var posts []models.Post

	w := f.do(t, http.MethodGet, "/posts", "", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &posts)
	assert.Len(t, posts, 3)

	w = f.do(t, http.MethodGet, "/posts?published=true", "", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &posts)
	assert.Len(t, posts, 2)

	w = f.do(t, http.MethodGet, "/posts?skip=1&limit=1", "", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &posts)
	assert.Len(t, posts, 1)

	w = f.do(t, http.MethodGet, fmt.Sprintf("/posts/by-author?author_id=%d", f.user("other").ID), "", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "Live Two", posts[0].Title)

	w = f.do(t, http.MethodGet, "/posts/search?q=GOLANG", "", nil)
	expectStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "Live One", posts[0].Title)

	expectStatus(t, f.do(t, http.MethodGet, "/posts?limit=0", "", nil), http.StatusBadRequest)
	expectStatus(t, f.do(t, http.MethodGet, "/posts?skip=-1", "", nil), http.StatusBadRequest)
	expectStatus(t, f.do(t, http.MethodGet, "/posts?published=maybe", "", nil), http.StatusBadRequest)
	expectStatus(t, f.do(t, http.MethodGet, "/posts/by-author", "", nil), http.StatusBadRequest)
	expectStatus(t, f.do(t, http.MethodGet, "/posts/by-category?category_id=x", "", nil), http.StatusBadRequest)
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }
