package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"memberhub/internal/models"
)

type OrganizationRepository interface {
	Create(ctx context.Context, o *models.Organization) error
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
	List(ctx context.Context) ([]*models.Organization, error)
}

type organizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) OrganizationRepository {
	return &organizationRepository{DB: db}
}

func (r *organizationRepository) Create(ctx context.Context, o *models.Organization) error {
	const q = `
		INSERT INTO organizations (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRowContext(ctx, q, o.Name, o.Email, o.Phone, o.Address).Scan(&o.ID, &o.CreatedAt); err != nil {
		return mapPQError(err)
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	const q = `SELECT id, name, email, phone, address, created_at FROM organizations WHERE id = $1`
	o := &models.Organization{}
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Address, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("organization get: %w", err)
	}
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]*models.Organization, error) {
	const q = `SELECT id, name, email, phone, address, created_at FROM organizations ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("organization list: %w", err)
	}
	defer rows.Close()

	var res []*models.Organization
	for rows.Next() {
		o := &models.Organization{}
		if err := rows.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Address, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("organization scan: %w", err)
		}
		res = append(res, o)
	}
	return res, rows.Err()
}
