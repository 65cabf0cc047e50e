package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Name      string `form:"name"      validate:"required"`
	Email     string `form:"email"     validate:"required"`
	Password  string `form:"password"  validate:"required"`
	Password2 string `form:"password2" validate:"required"`
}

type AuthService struct {
	users      UserStore
	bcryptCost int
}

func NewAuthService(users UserStore, bcryptCost int) *AuthService {
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// Register creates a customer account. Every input problem is reported in
// one *ValidationError; a taken email returns ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	var msgs []string
	if validate.Failed(in, "required") {
		msgs = append(msgs, MsgMissingFields)
	}
	if in.Password != in.Password2 {
		msgs = append(msgs, MsgPasswordMismatch)
	}
	if len(msgs) > 0 {
		return nil, invalid(msgs...)
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &models.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Authenticate verifies an email/password pair.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser resolves a session's user id. A zero id or an id that no
// longer resolves yields (nil, nil): the request is anonymous.
func (s *AuthService) CurrentUser(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetAdmin grants or revokes the admin role out of band (CLI only).
func (s *AuthService) SetAdmin(ctx context.Context, email string, admin bool) error {
	return s.users.SetAdmin(ctx, email, admin)
}

// EnsureAdmin creates an admin account, or promotes the existing account
// with that email. The password of an existing account is left unchanged.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (created bool, err error) {
	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return false, s.users.SetAdmin(ctx, email, true)
	case !errors.Is(err, repositories.ErrNotFound):
		return false, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return false, err
	}
	user := &models.User{Name: name, Email: email, Password: hash, IsAdmin: true}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
