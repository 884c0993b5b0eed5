package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"memberhub/internal/models"
)

type OTPRepository interface {
	Create(ctx context.Context, e *models.OTPEntry) error
	ListActive(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) ([]*models.OTPEntry, error)
	MarkUsed(ctx context.Context, id int64) (bool, error)
	RegisterFailure(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) (int, error)
	ExpireActive(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) error
	CountRecentSends(ctx context.Context, contact string, purpose models.OTPPurpose, since time.Time) (int, error)
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

// Create: каждая отправка кода пишет новую строку.
func (r *otpRepository) Create(ctx context.Context, e *models.OTPEntry) error {
	const q = `
		INSERT INTO otp_entries (contact, channel, purpose, code_hash, expires_at, used, attempts)
		VALUES ($1, $2, $3, $4, $5, FALSE, 0)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRowContext(ctx, q, e.Contact, e.Channel, e.Purpose, e.CodeHash, e.ExpiresAt).
		Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("otp create: %w", err)
	}
	return nil
}

// ListActive returns unused, unexpired codes for the exact (contact, channel, purpose), newest first.
func (r *otpRepository) ListActive(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) ([]*models.OTPEntry, error) {
	const q = `
		SELECT id, contact, channel, purpose, code_hash, expires_at, used, attempts, created_at
		FROM otp_entries
		WHERE contact = $1 AND channel = $2 AND purpose = $3
		  AND used = FALSE AND expires_at > $4
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, q, contact, channel, purpose, now)
	if err != nil {
		return nil, fmt.Errorf("otp list active: %w", err)
	}
	defer rows.Close()

	var res []*models.OTPEntry
	for rows.Next() {
		e := &models.OTPEntry{}
		if err := rows.Scan(&e.ID, &e.Contact, &e.Channel, &e.Purpose, &e.CodeHash,
			&e.ExpiresAt, &e.Used, &e.Attempts, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("otp scan: %w", err)
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// MarkUsed consumes a code. false means somebody else consumed it first.
func (r *otpRepository) MarkUsed(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE otp_entries SET used = TRUE WHERE id = $1 AND used = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("otp mark used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("otp mark used: %w", err)
	}
	return n == 1, nil
}

// RegisterFailure bumps attempts on every active code and returns the highest counter.
func (r *otpRepository) RegisterFailure(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) (int, error) {
	const q = `
		WITH bumped AS (
			UPDATE otp_entries
			SET attempts = attempts + 1
			WHERE contact = $1 AND channel = $2 AND purpose = $3
			  AND used = FALSE AND expires_at > $4
			RETURNING attempts
		)
		SELECT COALESCE(MAX(attempts), 0) FROM bumped
	`
	var attempts int
	if err := r.DB.QueryRowContext(ctx, q, contact, channel, purpose, now).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("otp register failure: %w", err)
	}
	return attempts, nil
}

// ExpireActive: моментально "протухаем" все активные коды (при превышении попыток).
func (r *otpRepository) ExpireActive(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose, now time.Time) error {
	const q = `
		UPDATE otp_entries SET expires_at = $4
		WHERE contact = $1 AND channel = $2 AND purpose = $3
		  AND used = FALSE AND expires_at > $4
	`
	if _, err := r.DB.ExecContext(ctx, q, contact, channel, purpose, now); err != nil {
		return fmt.Errorf("otp expire: %w", err)
	}
	return nil
}

// CountRecentSends: сколько раз отправляли за окно (для троттлинга).
func (r *otpRepository) CountRecentSends(ctx context.Context, contact string, purpose models.OTPPurpose, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM otp_entries
		WHERE contact = $1 AND purpose = $2 AND created_at >= $3
	`
	var c int
	if err := r.DB.QueryRowContext(ctx, q, contact, purpose, since).Scan(&c); err != nil {
		return 0, fmt.Errorf("otp count recent: %w", err)
	}
	return c, nil
}
