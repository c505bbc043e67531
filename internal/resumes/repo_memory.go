package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[int64]Resume
	nextID  int64
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[int64]Resume), now: time.Now}
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0)
	for _, res := range r.resumes {
		if res.UserID == userID {
			out = append(out, res.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Create(ctx context.Context, userID int64, doc Document) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := r.now().UTC()
	res := Resume{
		ID:        r.nextID,
		UserID:    userID,
		Document:  doc,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}.Clone()
	r.resumes[res.ID] = res
	return res.Clone(), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resumes[resumeID]
	if !ok || res.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return res.Clone(), nil
}

func (r *MemoryRepo) Replace(ctx context.Context, userID, resumeID int64, doc Document, expectedVersion int) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[resumeID]
	if !ok || res.UserID != userID {
		return Resume{}, ErrNotFound
	}
	if expectedVersion > 0 && res.Version != expectedVersion {
		return Resume{}, ErrVersionConflict
	}
	res.Document = doc
	res.Version++
	res.UpdatedAt = r.now().UTC()
	res = res.Clone()
	r.resumes[resumeID] = res
	return res.Clone(), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[resumeID]
	if !ok || res.UserID != userID {
		return ErrNotFound
	}
	delete(r.resumes, resumeID)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, res := range r.resumes {
		if res.UserID == userID {
			delete(r.resumes, id)
			n++
		}
	}
	return n, nil
}

var _ Repo = (*MemoryRepo)(nil)
