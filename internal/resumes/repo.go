package resumes

import "context"

//go:generate mockgen -source=repo.go -destination=mocks/repo_mock.go -package=mocks

// Repo persists resumes. Every method is scoped to the owning user.
type Repo interface {
	ListByUser(ctx context.Context, userID int64) ([]Resume, error)
	Create(ctx context.Context, userID int64, doc Document) (Resume, error)
	GetByID(ctx context.Context, userID, resumeID int64) (Resume, error)
	// Replace overwrites the document. expectedVersion 0 skips the version check.
	Replace(ctx context.Context, userID, resumeID int64, doc Document, expectedVersion int) (Resume, error)
	Delete(ctx context.Context, userID, resumeID int64) error
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}
