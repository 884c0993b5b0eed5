package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"memberhub/internal/models"
)

// AdminBuilder turns an approved request into the admin row to insert.
// Returning an error aborts the approval and rolls the transaction back.
type AdminBuilder func(req *models.AdminRequest) (*models.Admin, error)

type AdminRequestRepository interface {
	Create(ctx context.Context, req *models.AdminRequest) error
	GetByID(ctx context.Context, id int64) (*models.AdminRequest, error)
	List(ctx context.Context, status models.RequestStatus) ([]*models.AdminRequest, error)
	Approve(ctx context.Context, id, reviewerID int64, at time.Time, build AdminBuilder) (*models.AdminRequest, *models.Admin, error)
	Reject(ctx context.Context, id, reviewerID int64, reason string, at time.Time) (*models.AdminRequest, error)
}

type adminRequestRepository struct {
	DB *sql.DB
}

func NewAdminRequestRepository(db *sql.DB) AdminRequestRepository {
	return &adminRequestRepository{DB: db}
}

// Create inserts a pending request. Username is echoed back by RETURNING so the
// caller can compare what was stored against what was submitted.
func (r *adminRequestRepository) Create(ctx context.Context, req *models.AdminRequest) error {
	const q = `
		INSERT INTO admin_requests (
			email, first_name, last_name, organization_id, username, password_hash,
			phone, experience, level, appointer, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
		RETURNING id, username, status, requested_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		req.Email, req.FirstName, req.LastName, req.OrganizationID, req.Username, req.PasswordHash,
		req.Phone, req.Experience, req.Level, req.Appointer,
	).Scan(&req.ID, &req.Username, &req.Status, &req.RequestedAt)
	if err != nil {
		return mapPQError(err)
	}
	return nil
}

const requestSelect = `
	SELECT r.id, r.email, r.first_name, r.last_name, r.organization_id, COALESCE(o.name, ''),
		r.username, r.password_hash, r.phone, r.experience, r.level, r.appointer,
		r.status, r.rejection_reason, r.requested_at, r.reviewed_at, r.reviewed_by
	FROM admin_requests r
	LEFT JOIN organizations o ON o.id = r.organization_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(s rowScanner) (*models.AdminRequest, error) {
	req := &models.AdminRequest{}
	var (
		reviewedAt sql.NullTime
		reviewedBy sql.NullInt64
	)
	if err := s.Scan(&req.ID, &req.Email, &req.FirstName, &req.LastName, &req.OrganizationID, &req.OrganizationName,
		&req.Username, &req.PasswordHash, &req.Phone, &req.Experience, &req.Level, &req.Appointer,
		&req.Status, &req.RejectionReason, &req.RequestedAt, &reviewedAt, &reviewedBy); err != nil {
		return nil, err
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		req.ReviewedAt = &t
	}
	if reviewedBy.Valid {
		v := reviewedBy.Int64
		req.ReviewedBy = &v
	}
	return req, nil
}

func (r *adminRequestRepository) GetByID(ctx context.Context, id int64) (*models.AdminRequest, error) {
	req, err := scanRequest(r.DB.QueryRowContext(ctx, requestSelect+` WHERE r.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("admin request get: %w", err)
	}
	return req, nil
}

// List returns requests newest first; an empty status means all of them.
func (r *adminRequestRepository) List(ctx context.Context, status models.RequestStatus) ([]*models.AdminRequest, error) {
	q := requestSelect
	var args []any
	if status != "" {
		q += ` WHERE r.status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY r.requested_at DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("admin request list: %w", err)
	}
	defer rows.Close()

	var res []*models.AdminRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("admin request scan: %w", err)
		}
		res = append(res, req)
	}
	return res, rows.Err()
}

// Approve flips pending -> approved and inserts the admin in one transaction.
// The status UPDATE is the compare-and-swap: when it touches no row the request
// is either missing (ErrNotFound) or already reviewed (ErrNotPending).
func (r *adminRequestRepository) Approve(ctx context.Context, id, reviewerID int64, at time.Time, build AdminBuilder) (*models.AdminRequest, *models.Admin, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("approve begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const flip = `
		UPDATE admin_requests
		SET status = 'approved', reviewed_at = $2, reviewed_by = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING id
	`
	var flipped int64
	if err := tx.QueryRowContext(ctx, flip, id, at, reviewerID).Scan(&flipped); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, r.missingOrProcessed(ctx, tx, id)
		}
		return nil, nil, fmt.Errorf("approve update: %w", err)
	}

	req, err := scanRequest(tx.QueryRowContext(ctx, requestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, nil, fmt.Errorf("approve load: %w", err)
	}

	admin, err := build(req)
	if err != nil {
		return nil, nil, err
	}
	if err := insertAdmin(ctx, tx, admin); err != nil {
		return nil, nil, fmt.Errorf("approve insert admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("approve commit: %w", err)
	}
	return req, admin, nil
}

func (r *adminRequestRepository) Reject(ctx context.Context, id, reviewerID int64, reason string, at time.Time) (*models.AdminRequest, error) {
	const q = `
		UPDATE admin_requests
		SET status = 'rejected', rejection_reason = $2, reviewed_at = $3, reviewed_by = $4
		WHERE id = $1 AND status = 'pending'
		RETURNING id
	`
	var rejected int64
	if err := r.DB.QueryRowContext(ctx, q, id, reason, at, reviewerID).Scan(&rejected); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.missingOrProcessed(ctx, r.DB, id)
		}
		return nil, fmt.Errorf("reject update: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *adminRequestRepository) missingOrProcessed(ctx context.Context, q queryer, id int64) error {
	var status string
	err := q.QueryRowContext(ctx, `SELECT status FROM admin_requests WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("request status lookup: %w", err)
	}
	return ErrNotPending
}
