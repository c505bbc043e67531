package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/validation"
)

type Service struct {
	Repo     Repo
	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, validate: validation.New()}
}

// Register validates the input, rejects a taken email and stores a bcrypt digest of the password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(s.validator(), in); err != nil {
		return User{}, err
	}

	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	// The unique index still guards concurrent registrations; the repo maps it to ErrEmailTaken.
	return s.Repo.Create(ctx, User{Name: in.Name, Email: in.Email, PasswordHash: digest})
}

// Authenticate checks the credentials. Unknown emails and wrong passwords are indistinguishable.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("users service not configured")
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Profile{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, ErrInvalidCredentials
		}
		return Profile{}, fmt.Errorf("lookup email: %w", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return Profile{}, ErrInvalidCredentials
	}
	return user.Profile(), nil
}

func (s *Service) GetByID(ctx context.Context, userID int64) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if userID <= 0 {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID int64) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return s.Repo.Delete(ctx, userID)
}

func (s *Service) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validation.New()
	}
	return s.validate
}
