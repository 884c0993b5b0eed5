package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"memberhub/internal/models"
)

type MemberRepository interface {
	Create(ctx context.Context, m *models.Member) error
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	GetByMembershipID(ctx context.Context, membershipID string) (*models.Member, error)
	ListByOrganization(ctx context.Context, orgID int64, status models.MemberStatus) ([]*models.Member, error)
	Review(ctx context.Context, id, orgID, reviewerID int64, status models.MemberStatus, at time.Time) (*models.Member, error)
}

type memberRepository struct {
	DB *sql.DB
}

func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{DB: db}
}

func (r *memberRepository) Create(ctx context.Context, m *models.Member) error {
	const q = `
		INSERT INTO members (
			membership_id, organization_id, first_name, last_name, email, phone, password_hash,
			designation, experience, achievements, payment_method, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		m.MembershipID, m.OrganizationID, m.FirstName, m.LastName, m.Email, m.Phone, m.PasswordHash,
		m.Designation, m.Experience, m.Achievements, m.PaymentMethod, m.Status,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapPQError(err)
	}
	return nil
}

const memberSelect = `
	SELECT m.id, m.membership_id, m.organization_id, COALESCE(o.name, ''), m.first_name, m.last_name,
		m.email, m.phone, m.password_hash, m.designation, m.experience, m.achievements,
		m.payment_method, m.status, m.reviewed_at, m.reviewed_by, m.created_at
	FROM members m
	LEFT JOIN organizations o ON o.id = m.organization_id
`

func scanMember(s rowScanner) (*models.Member, error) {
	m := &models.Member{}
	var (
		reviewedAt sql.NullTime
		reviewedBy sql.NullInt64
	)
	if err := s.Scan(&m.ID, &m.MembershipID, &m.OrganizationID, &m.OrganizationName, &m.FirstName, &m.LastName,
		&m.Email, &m.Phone, &m.PasswordHash, &m.Designation, &m.Experience, &m.Achievements,
		&m.PaymentMethod, &m.Status, &reviewedAt, &reviewedBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		m.ReviewedAt = &t
	}
	if reviewedBy.Valid {
		v := reviewedBy.Int64
		m.ReviewedBy = &v
	}
	return m, nil
}

func (r *memberRepository) getOne(ctx context.Context, where string, arg any) (*models.Member, error) {
	m, err := scanMember(r.DB.QueryRowContext(ctx, memberSelect+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("member get: %w", err)
	}
	return m, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	return r.getOne(ctx, ` WHERE m.id = $1`, id)
}

func (r *memberRepository) GetByMembershipID(ctx context.Context, membershipID string) (*models.Member, error) {
	return r.getOne(ctx, ` WHERE m.membership_id = $1`, membershipID)
}

func (r *memberRepository) ListByOrganization(ctx context.Context, orgID int64, status models.MemberStatus) ([]*models.Member, error) {
	q := memberSelect + ` WHERE m.organization_id = $1`
	args := []any{orgID}
	if status != "" {
		q += ` AND m.status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY m.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("member list: %w", err)
	}
	defer rows.Close()

	var res []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("member scan: %w", err)
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// Review moves a pending member of orgID to status. Same CAS discipline as admin approval.
func (r *memberRepository) Review(ctx context.Context, id, orgID, reviewerID int64, status models.MemberStatus, at time.Time) (*models.Member, error) {
	const q = `
		UPDATE members
		SET status = $3, reviewed_at = $4, reviewed_by = $5
		WHERE id = $1 AND organization_id = $2 AND status = 'pending'
		RETURNING id
	`
	var updated int64
	err := r.DB.QueryRowContext(ctx, q, id, orgID, status, at, reviewerID).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		var current string
		lookup := r.DB.QueryRowContext(ctx, `SELECT status FROM members WHERE id = $1 AND organization_id = $2`, id, orgID).Scan(&current)
		if errors.Is(lookup, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if lookup != nil {
			return nil, fmt.Errorf("member status lookup: %w", lookup)
		}
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("member review: %w", err)
	}
	return r.GetByID(ctx, id)
}
