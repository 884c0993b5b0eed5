package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberhub/internal/models"
)

var requestCols = []string{
	"id", "email", "first_name", "last_name", "organization_id", "name",
	"username", "password_hash", "phone", "experience", "level", "appointer",
	"status", "rejection_reason", "requested_at", "reviewed_at", "reviewed_by",
}

func requestRow(now time.Time, status string) *sqlmock.Rows {
	return sqlmock.NewRows(requestCols).AddRow(
		int64(7), "nawab@example.com", "Nawab", "Khan", int64(3), "Chess Club",
		"nawab1996", "$2a$12$originalhash", "+15550001", "5y", "senior", "board",
		status, "", now, now, int64(1),
	)
}

func newMock(t *testing.T) (*adminRequestRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &adminRequestRepository{DB: db}, mock
}

func buildFromRequest(req *models.AdminRequest) (*models.Admin, error) {
	orgID := req.OrganizationID
	reqID := req.ID
	return &models.Admin{
		Username: req.Username, Email: req.Email, PasswordHash: req.PasswordHash,
		FirstName: req.FirstName, LastName: req.LastName, Role: "admin",
		OrganizationID: &orgID, Status: "approved", IsActive: true, RequestID: &reqID,
	}, nil
}

func TestAdminRequestRepository_Approve(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WithArgs(int64(7), now, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery("SELECT r.id").WithArgs(int64(7)).WillReturnRows(requestRow(now, "approved"))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admins")).
			WithArgs("nawab1996", "nawab@example.com", "$2a$12$originalhash", "Nawab", "Khan", "admin",
				sqlmock.AnyArg(), "approved", true, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now))
		mock.ExpectCommit()

		req, admin, err := repo.Approve(ctx, 7, 1, now, buildFromRequest)
		require.NoError(t, err)
		assert.Equal(t, models.RequestApproved, req.Status)
		assert.Equal(t, int64(42), admin.ID)
		assert.Equal(t, "nawab1996", admin.Username)
		assert.Equal(t, "$2a$12$originalhash", admin.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertFailureRollsBack", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery("SELECT r.id").WillReturnRows(requestRow(now, "approved"))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admins")).
			WillReturnError(errors.New("relation \"admins\" does not exist"))
		mock.ExpectRollback()

		_, _, err := repo.Approve(ctx, 7, 1, now, buildFromRequest)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateUsernameRollsBack", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery("SELECT r.id").WillReturnRows(requestRow(now, "approved"))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admins")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "admins_username_key"})
		mock.ExpectRollback()

		_, _, err := repo.Approve(ctx, 7, 1, now, buildFromRequest)
		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "username", dup.Field)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BuilderErrorRollsBack", func(t *testing.T) {
		repo, mock := newMock(t)
		boom := errors.New("no credentials")
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery("SELECT r.id").WillReturnRows(requestRow(now, "approved"))
		mock.ExpectRollback()

		_, _, err := repo.Approve(ctx, 7, 1, now, func(*models.AdminRequest) (*models.Admin, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyProcessed", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM admin_requests")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("approved"))
		mock.ExpectRollback()

		_, _, err := repo.Approve(ctx, 7, 1, now, buildFromRequest)
		assert.ErrorIs(t, err, ErrNotPending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		_, _, err := repo.Approve(ctx, 99, 1, now, buildFromRequest)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminRequestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("EchoesUsername", func(t *testing.T) {
		repo, mock := newMock(t)
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "status", "requested_at"}).
				AddRow(int64(5), "bob1", "pending", now))

		req := &models.AdminRequest{Email: "a@b.com", Username: "bob1", PasswordHash: "h", OrganizationID: 1}
		require.NoError(t, repo.Create(ctx, req))
		assert.Equal(t, int64(5), req.ID)
		assert.Equal(t, models.RequestPending, req.Status)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admin_requests")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "admin_requests_pending_email_key"})

		err := repo.Create(ctx, &models.AdminRequest{Email: "a@b.com", Username: "bob1"})
		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "email", dup.Field)
	})
}

func TestAdminRequestRepository_Reject(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WithArgs(int64(7), "incomplete", now, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery("SELECT r.id").WithArgs(int64(7)).WillReturnRows(requestRow(now, "rejected"))

		req, err := repo.Reject(ctx, 7, 1, "incomplete", now)
		require.NoError(t, err)
		assert.Equal(t, models.RequestRejected, req.Status)
	})

	t.Run("AlreadyProcessed", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM admin_requests")).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))

		_, err := repo.Reject(ctx, 7, 1, "again", now)
		assert.ErrorIs(t, err, ErrNotPending)
	})
}
