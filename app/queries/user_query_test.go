package queries

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(id uuid.UUID, email, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"uid", "username", "email", "phone_number", "password_hash", "user_role",
		"verified", "banned", "otp", "metier", "city", "rating", "created_at", "updated_at",
	}).AddRow(id, "jdupont", email, "+33600000000", "$2a$10$hash", role,
		true, false, "", "menuiserie", "Lyon", 4.5, now, now)
}

func TestGetUserByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("jdupont@example.com").
		WillReturnRows(userRows(id, "jdupont@example.com", "intervenant"))

	q := UserQueries{DB: db}
	user, err := q.GetUserByEmail("jdupont@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "intervenant", user.UserRole)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"uid"}))

	q := UserQueries{DB: db}
	_, err = q.GetUserByEmail("nobody@example.com")
	assert.EqualError(t, err, "user not found")
}

func TestVerifyOTPByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET verified = TRUE`)).
		WithArgs("jdupont@example.com", "123456").
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := UserQueries{DB: db}
	require.NoError(t, q.VerifyOTPByEmail("jdupont@example.com", "123456"))
}

func TestVerifyOTPByEmailWrongCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET verified = TRUE`)).
		WithArgs("jdupont@example.com", "000000").
		WillReturnResult(sqlmock.NewResult(0, 0))

	q := UserQueries{DB: db}
	err = q.VerifyOTPByEmail("jdupont@example.com", "000000")
	assert.EqualError(t, err, "invalid otp or already verified")
}

func TestUpdateRating(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET rating = COALESCE((SELECT AVG(note) FROM reviews WHERE target_id = $1), 0)`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := UserQueries{DB: db}
	require.NoError(t, q.UpdateRating(id))
	require.NoError(t, mock.ExpectationsWereMet())
}
