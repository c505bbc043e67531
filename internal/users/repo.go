package users

import "context"

// Repo persists users. Create assigns ID and CreatedAt.
type Repo interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID int64) (User, error)
	Delete(ctx context.Context, userID int64) error
}
