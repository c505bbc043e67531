package resumes

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/validation"
)

// Service applies ownership and document defaults on top of a Repo.
// Every operation takes the caller's identity explicitly.
type Service struct {
	Repo     Repo
	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, validate: validation.New()}
}

func (s *Service) List(ctx context.Context, id auth.Identity) ([]Resume, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, id.UserID)
}

// Create stores a new resume; absent fields take their defaults.
func (s *Service) Create(ctx context.Context, id auth.Identity, doc Document) (Resume, error) {
	if err := s.check(id); err != nil {
		return Resume{}, err
	}
	doc, err := s.prepare(doc)
	if err != nil {
		return Resume{}, err
	}
	return s.Repo.Create(ctx, id.UserID, doc)
}

func (s *Service) Get(ctx context.Context, id auth.Identity, resumeID int64) (Resume, error) {
	if err := s.check(id); err != nil {
		return Resume{}, err
	}
	if resumeID <= 0 {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id.UserID, resumeID)
}

// Update replaces the whole document. A positive expectedVersion must match the stored version.
func (s *Service) Update(ctx context.Context, id auth.Identity, resumeID int64, doc Document, expectedVersion int) (Resume, error) {
	if err := s.check(id); err != nil {
		return Resume{}, err
	}
	if resumeID <= 0 {
		return Resume{}, ErrNotFound
	}
	doc, err := s.prepare(doc)
	if err != nil {
		return Resume{}, err
	}
	if expectedVersion < 0 {
		expectedVersion = 0
	}
	return s.Repo.Replace(ctx, id.UserID, resumeID, doc, expectedVersion)
}

func (s *Service) Delete(ctx context.Context, id auth.Identity, resumeID int64) error {
	if err := s.check(id); err != nil {
		return err
	}
	if resumeID <= 0 {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, id.UserID, resumeID)
}

// DeleteAllForUser removes every resume of the user and reports how many were removed.
func (s *Service) DeleteAllForUser(ctx context.Context, userID int64) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, errors.New("resumes service not configured")
	}
	return s.Repo.DeleteByUser(ctx, userID)
}

func (s *Service) check(id auth.Identity) error {
	if s == nil || s.Repo == nil {
		return errors.New("resumes service not configured")
	}
	if !id.Valid() {
		return ErrUnauthenticated
	}
	return nil
}

func (s *Service) prepare(doc Document) (Document, error) {
	doc = doc.Normalize()
	if s.validate == nil {
		s.validate = validation.New()
	}
	if err := validation.Struct(s.validate, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
