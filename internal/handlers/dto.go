package handlers

import (
	"time"

	"github.com/GunarsK-portfolio/content-service/internal/service"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email           string  `json:"email" binding:"required,email,max=254"`
	Username        string  `json:"username" binding:"required,min=3,max=150"`
	Password        string  `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string  `json:"password_confirm" binding:"required,eqfield=Password"`
	FirstName       string  `json:"first_name" binding:"max=150"`
	LastName        string  `json:"last_name" binding:"max=150"`
	Bio             *string `json:"bio" binding:"omitempty,max=500"`
	Avatar          *string `json:"avatar" binding:"omitempty,url,max=500"`
}

func (r RegisterRequest) toInput() service.CreateUserInput {
	return service.CreateUserInput{
		Email:     r.Email,
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Avatar:    r.Avatar,
	}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh request payload. The token
// may come from the refresh_token cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidateRequest carries an access token for validation.
type ValidateRequest struct {
	Token string `json:"token" binding:"required"`
}

// UserUpdateRequest carries optional profile fields.
type UserUpdateRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	Avatar    *string `json:"avatar" binding:"omitempty,url,max=500"`
}

func (r UserUpdateRequest) toInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Avatar:    r.Avatar,
	}
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required,min=8,max=72"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required,eqfield=NewPassword"`
}

// EntryCreateRequest is the create payload for posts and samples.
type EntryCreateRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Slug        string     `json:"slug" binding:"omitempty,slug,max=255"`
	Content     string     `json:"content" binding:"required"`
	Excerpt     *string    `json:"excerpt" binding:"omitempty,max=500"`
	CategoryID  *int64     `json:"category_id" binding:"omitempty,gt=0"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
}

func (r EntryCreateRequest) toInput() service.EntryInput {
	return service.EntryInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		CategoryID:  r.CategoryID,
		IsPublished: r.IsPublished,
		PublishedAt: r.PublishedAt,
	}
}

// EntryUpdateRequest carries optional fields for posts and samples.
// clear_category detaches the entry from its category.
type EntryUpdateRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=255"`
	Slug          *string `json:"slug" binding:"omitempty,slug,max=255"`
	Content       *string `json:"content" binding:"omitempty,min=1"`
	Excerpt       *string `json:"excerpt" binding:"omitempty,max=500"`
	CategoryID    *int64  `json:"category_id" binding:"omitempty,gt=0"`
	ClearCategory bool    `json:"clear_category"`
	IsPublished   *bool   `json:"is_published"`
}

func (r EntryUpdateRequest) toInput() service.EntryUpdate {
	return service.EntryUpdate{
		Title:         r.Title,
		Slug:          r.Slug,
		Content:       r.Content,
		Excerpt:       r.Excerpt,
		CategoryID:    r.CategoryID,
		ClearCategory: r.ClearCategory,
		IsPublished:   r.IsPublished,
	}
}

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name        string  `json:"name" binding:"max=100"`
	Slug        string  `json:"slug" binding:"omitempty,slug,max=100"`
	Description *string `json:"description"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

// AboutRequest is the create/update payload for about entries.
type AboutRequest struct {
	AboutID string `json:"about_id" binding:"required,max=255"`
}
