package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberhub/internal/models"
)

func TestMemberRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("CreateDuplicateMembershipID", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "members_membership_id_key"})

		err := repo.Create(ctx, &models.Member{MembershipID: "CHE-NK-1-0001"})
		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "membership_id", dup.Field)
	})

	t.Run("ReviewNotPending", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE members")).
			WithArgs(int64(4), int64(3), models.MemberApproved, now, int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM members")).
			WithArgs(int64(4), int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("approved"))

		_, err := repo.Review(ctx, 4, 3, 9, models.MemberApproved, now)
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("ReviewOtherOrganization", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE members")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM members")).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		_, err := repo.Review(ctx, 4, 8, 9, models.MemberApproved, now)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetByMembershipIDMissing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE m.membership_id = $1")).
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByMembershipID(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
