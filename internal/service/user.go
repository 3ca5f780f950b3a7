package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// CreateUserInput carries the fields accepted on registration.
type CreateUserInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Bio       *string
	Avatar    *string
}

// UpdateUserInput carries optional profile fields; nil means unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Avatar    *string
}

// UserService defines account management operations.
type UserService interface {
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	Update(ctx context.Context, id int64, actor Actor, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int64, actor Actor) error
	ChangePassword(ctx context.Context, id int64, actor Actor, oldPassword, newPassword string) error
	Verify(ctx context.Context, id int64, actor Actor) (*models.User, error)
}

type userService struct {
	users    repository.UserRepository
	hashCost int
}

// NewUserService creates a new UserService instance.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users:    users,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	if err := ValidatePagination(skip, limit); err != nil {
		return nil, err
	}
	return s.users.List(ctx, skip, limit)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("user with id %d not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("user with email %s not found", email)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, newValidationError("email", "enter a valid email address")
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, newValidationError("username", "this field is required")
	}
	if err := validatePassword("password", input.Password); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, email, username); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Bio:          input.Bio,
		Avatar:       input.Avatar,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, newValidationError("email", "a user with this email or username already exists")
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, actor Actor, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(user.ID) {
		return nil, permissionDenied("you can only update your own profile")
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64, actor Actor) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(user.ID) {
		return permissionDenied("you can only delete your own account")
	}
	return s.users.Delete(ctx, user)
}

func (s *userService) ChangePassword(ctx context.Context, id int64, actor Actor, oldPassword, newPassword string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(user.ID) {
		return permissionDenied("you can only change your own password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return newValidationError("old_password", "old password is incorrect")
	}
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.users.Update(ctx, user)
}

func (s *userService) Verify(ctx context.Context, id int64, actor Actor) (*models.User, error) {
	if !actor.IsStaff {
		return nil, permissionDenied("only staff can verify users")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return user, nil
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ensureUnique(ctx context.Context, email, username string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return newValidationError("email", "user with this email already exists")
	} else if !isRecordNotFound(err) {
		return err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return newValidationError("username", "user with this username already exists")
	} else if !isRecordNotFound(err) {
		return err
	}

	return nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func validatePassword(field, password string) error {
	if len(password) < minPasswordLength {
		return newValidationError(field, "ensure this field has at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return newValidationError(field, "ensure this field has no more than %d bytes", maxPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
