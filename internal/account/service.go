package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resume-builder/internal/resumes"
	"resume-builder/internal/users"
)

// Service removes a user together with everything they own.
type Service struct {
	UserRepo   users.Repo
	ResumeRepo resumes.Repo
}

type DeleteResult struct {
	DeletedResumes int `json:"deletedResumes"`
}

func NewService(userRepo users.Repo, resumeRepo resumes.Repo) *Service {
	return &Service{UserRepo: userRepo, ResumeRepo: resumeRepo}
}

// DeleteAccount deletes the user. With Postgres a single transaction removes the
// user row and the foreign key cascade removes the resumes; other stores are
// cleaned up explicitly, resumes first.
func (s *Service) DeleteAccount(ctx context.Context, userID int64) (DeleteResult, error) {
	if s == nil || s.UserRepo == nil || s.ResumeRepo == nil {
		return DeleteResult{}, errors.New("account service not configured")
	}
	if userID <= 0 {
		return DeleteResult{}, users.ErrNotFound
	}

	if userPG, ok := s.UserRepo.(*users.PGRepo); ok && userPG != nil && userPG.DB != nil {
		if _, ok := s.ResumeRepo.(*resumes.PGRepo); ok {
			return deleteWithTx(ctx, userPG.DB, userID)
		}
	}

	if _, err := s.UserRepo.GetByID(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	n, err := s.ResumeRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return DeleteResult{}, err
	}
	if err := s.UserRepo.Delete(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedResumes: n}, nil
}

func deleteWithTx(ctx context.Context, db *sql.DB, userID int64) (DeleteResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM resumes WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return DeleteResult{}, fmt.Errorf("count resumes: %w", err)
	}
	if err := users.DeleteTx(ctx, tx, userID); err != nil {
		return DeleteResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedResumes: count}, nil
}
