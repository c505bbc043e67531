package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres. List columns are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, full_name, email, phone, location, website, summary,
experience, education, skills, version, created_at, updated_at`

func (r *PGRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	query := `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, userID int64, doc Document) (Resume, error) {
	cols, err := encodeLists(doc)
	if err != nil {
		return Resume{}, err
	}
	query := `
INSERT INTO resumes (
    user_id, title, full_name, email, phone, location, website, summary,
    experience, education, skills, version, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, now(), now())
RETURNING ` + resumeColumns
	row := r.DB.QueryRowContext(ctx, query,
		userID,
		doc.Title,
		doc.PersonalInfo.FullName,
		doc.PersonalInfo.Email,
		doc.PersonalInfo.Phone,
		doc.PersonalInfo.Location,
		doc.PersonalInfo.Website,
		doc.PersonalInfo.Summary,
		cols.experience,
		cols.education,
		cols.skills,
	)
	res, err := scanResume(row)
	if err != nil {
		// The owner was deleted after the caller's session was checked.
		if db.IsForeignKeyViolation(err) {
			return Resume{}, ErrUnauthenticated
		}
		return Resume{}, fmt.Errorf("insert resume: %w", err)
	}
	return res, nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID int64) (Resume, error) {
	query := `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// Replace updates in one statement; the version predicate makes the check and write atomic.
func (r *PGRepo) Replace(ctx context.Context, userID, resumeID int64, doc Document, expectedVersion int) (Resume, error) {
	cols, err := encodeLists(doc)
	if err != nil {
		return Resume{}, err
	}
	query := `
UPDATE resumes SET
  title = $3,
  full_name = $4,
  email = $5,
  phone = $6,
  location = $7,
  website = $8,
  summary = $9,
  experience = $10,
  education = $11,
  skills = $12,
  version = version + 1,
  updated_at = now()
WHERE id = $1 AND user_id = $2 AND ($13 = 0 OR version = $13)
RETURNING ` + resumeColumns
	row := r.DB.QueryRowContext(ctx, query,
		resumeID,
		userID,
		doc.Title,
		doc.PersonalInfo.FullName,
		doc.PersonalInfo.Email,
		doc.PersonalInfo.Phone,
		doc.PersonalInfo.Location,
		doc.PersonalInfo.Website,
		doc.PersonalInfo.Summary,
		cols.experience,
		cols.education,
		cols.skills,
		expectedVersion,
	)
	res, err := scanResume(row)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Resume{}, fmt.Errorf("update resume: %w", err)
	}
	if expectedVersion == 0 {
		return Resume{}, ErrNotFound
	}
	// Nothing matched: tell a stale version apart from a missing row.
	var current int
	err = r.DB.QueryRowContext(ctx, `SELECT version FROM resumes WHERE id = $1 AND user_id = $2`, resumeID, userID).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Resume{}, ErrNotFound
	case err != nil:
		return Resume{}, fmt.Errorf("check resume version: %w", err)
	default:
		return Resume{}, ErrVersionConflict
	}
}

func (r *PGRepo) Delete(ctx context.Context, userID, resumeID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, resumeID, userID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete resumes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete resumes: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		res                         Resume
		experience, education, tags []byte
	)
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&res.PersonalInfo.FullName,
		&res.PersonalInfo.Email,
		&res.PersonalInfo.Phone,
		&res.PersonalInfo.Location,
		&res.PersonalInfo.Website,
		&res.PersonalInfo.Summary,
		&experience,
		&education,
		&tags,
		&res.Version,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if err := decodeList(experience, &res.Experience); err != nil {
		return Resume{}, fmt.Errorf("decode experience: %w", err)
	}
	if err := decodeList(education, &res.Education); err != nil {
		return Resume{}, fmt.Errorf("decode education: %w", err)
	}
	if err := decodeList(tags, &res.Skills); err != nil {
		return Resume{}, fmt.Errorf("decode skills: %w", err)
	}
	return res.Clone(), nil
}

func decodeList(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

type listColumns struct {
	experience, education, skills []byte
}

func encodeLists(doc Document) (listColumns, error) {
	var (
		cols listColumns
		err  error
	)
	if cols.experience, err = marshalList(doc.Experience); err != nil {
		return listColumns{}, fmt.Errorf("encode experience: %w", err)
	}
	if cols.education, err = marshalList(doc.Education); err != nil {
		return listColumns{}, fmt.Errorf("encode education: %w", err)
	}
	if cols.skills, err = marshalList(doc.Skills); err != nil {
		return listColumns{}, fmt.Errorf("encode skills: %w", err)
	}
	return cols, nil
}

// marshalList encodes nil slices as [] to satisfy the NOT NULL JSONB columns.
func marshalList[T any](list []T) ([]byte, error) {
	if list == nil {
		list = []T{}
	}
	return json.Marshal(list)
}

var _ Repo = (*PGRepo)(nil)
