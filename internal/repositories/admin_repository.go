package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"memberhub/internal/models"
)

type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	GetByLogin(ctx context.Context, login string) (*models.Admin, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{DB: db}
}

const adminColumns = `id, username, email, password_hash, first_name, last_name, role,
	organization_id, status, is_active, request_id, created_at`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertAdmin(ctx context.Context, q queryer, a *models.Admin) error {
	const stmt = `
		INSERT INTO admins (username, email, password_hash, first_name, last_name, role,
			organization_id, status, is_active, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err := q.QueryRowContext(ctx, stmt,
		a.Username, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Role,
		a.OrganizationID, a.Status, a.IsActive, a.RequestID,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return mapPQError(err)
	}
	return nil
}

func (r *adminRepository) Create(ctx context.Context, a *models.Admin) error {
	return insertAdmin(ctx, r.DB, a)
}

func scanAdmin(row *sql.Row) (*models.Admin, error) {
	a := &models.Admin{}
	var (
		orgID sql.NullInt64
		reqID sql.NullInt64
	)
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.Role,
		&orgID, &a.Status, &a.IsActive, &reqID, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if orgID.Valid {
		v := orgID.Int64
		a.OrganizationID = &v
	}
	if reqID.Valid {
		v := reqID.Int64
		a.RequestID = &v
	}
	return a, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("admin get: %w", err)
	}
	return a, err
}

// GetByLogin accepts either the username or the email, case-insensitively.
func (r *adminRepository) GetByLogin(ctx context.Context, login string) (*models.Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1) LIMIT 1`
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, q, login))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("admin get by login: %w", err)
	}
	return a, err
}

func (r *adminRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM admins WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2))`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, q, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("admin exists: %w", err)
	}
	return exists, nil
}

func (r *adminRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins WHERE role = $1`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("admin count by role: %w", err)
	}
	return n, nil
}
