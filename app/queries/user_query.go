package queries

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
)

type UserQueries struct {
	DB *sql.DB
}

const userColumns = `uid, username, email, phone_number, password_hash, user_role, verified, banned, otp, metier, city, rating, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (models.User, error) {
	user := models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.UserRole,
		&user.Verified,
		&user.Banned,
		&user.OTP,
		&user.Metier,
		&user.City,
		&user.Rating,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

func (q *UserQueries) GetUserByID(id uuid.UUID) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	user, err := scanUser(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return user, errors.New("user not found")
		}
		return user, errors.New("unable to get user, DB error")
	}
	return user, nil
}

func (q *UserQueries) GetUserByEmail(email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(q.DB.QueryRow(query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return user, errors.New("user not found")
		}
		return user, errors.New("unable to get user, DB error")
	}
	return user, nil
}

func (q *UserQueries) GetUserByUsername(username string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(q.DB.QueryRow(query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return user, errors.New("user not found")
		}
		return user, errors.New("unable to get user, DB error")
	}
	return user, nil
}

func (q *UserQueries) CreateUser(u *models.User) error {
	query := `INSERT INTO users (uid, username, email, phone_number, password_hash, user_role, verified, banned, otp, metier, city, rating, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := q.DB.Exec(query,
		u.ID,
		u.Username,
		u.Email,
		u.PhoneNumber,
		u.PasswordHash,
		u.UserRole,
		u.Verified,
		u.Banned,
		u.OTP,
		u.Metier,
		u.City,
		u.Rating,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create user, DB error")
	}
	return nil
}

func (q *UserQueries) VerifyOTPByEmail(email string, otp string) error {
	query := `UPDATE users SET verified = TRUE, otp = '', updated_at = now() WHERE email = $1 AND otp = $2 AND verified = FALSE`
	res, err := q.DB.Exec(query, email, otp)
	if err != nil {
		return errors.New("unable to verify OTP, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("invalid otp or already verified")
	}
	return nil
}

func (q *UserQueries) UpdateOTPByEmail(email string, otp string) error {
	query := `UPDATE users SET otp = $1, updated_at = now() WHERE email = $2`
	res, err := q.DB.Exec(query, otp, email)
	if err != nil {
		return errors.New("unable to update otp, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no user updated")
	}
	return nil
}

func (q *UserQueries) UpdateUser(userID uuid.UUID, req *models.UpdateUserRequest) error {
	setClauses := []string{}
	args := []interface{}{}
	argID := 1

	if req.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *req.Username)
		argID++
	}
	if req.PhoneNumber != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone_number = $%d", argID))
		args = append(args, *req.PhoneNumber)
		argID++
	}
	if req.City != nil {
		setClauses = append(setClauses, fmt.Sprintf("city = $%d", argID))
		args = append(args, *req.City)
		argID++
	}
	if req.Metier != nil {
		setClauses = append(setClauses, fmt.Sprintf("metier = $%d", argID))
		args = append(args, *req.Metier)
		argID++
	}

	if len(setClauses) == 0 {
		return errors.New("no fields to update")
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf(`UPDATE users SET %s WHERE uid = $%d`, strings.Join(setClauses, ", "), argID)
	args = append(args, userID)

	res, err := q.DB.Exec(query, args...)
	if err != nil {
		return errors.New("unable to update user, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("no user updated")
	}
	return nil
}

// SetBanned flips the ban flag. Users are never hard-deleted.
func (q *UserQueries) SetBanned(userID uuid.UUID, banned bool) error {
	query := `UPDATE users SET banned = $1, updated_at = now() WHERE uid = $2`
	res, err := q.DB.Exec(query, banned, userID)
	if err != nil {
		return errors.New("unable to update ban flag, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("user not found")
	}
	return nil
}

func (q *UserQueries) SetVerified(userID uuid.UUID, verified bool) error {
	query := `UPDATE users SET verified = $1, updated_at = now() WHERE uid = $2`
	res, err := q.DB.Exec(query, verified, userID)
	if err != nil {
		return errors.New("unable to update verified flag, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("user not found")
	}
	return nil
}

// UpdateRating recomputes the aggregate rating from stored reviews.
func (q *UserQueries) UpdateRating(userID uuid.UUID) error {
	query := `UPDATE users SET rating = COALESCE((SELECT AVG(note) FROM reviews WHERE target_id = $1), 0), updated_at = now() WHERE uid = $1`
	_, err := q.DB.Exec(query, userID)
	if err != nil {
		return errors.New("unable to update rating, DB error")
	}
	return nil
}

func (q *UserQueries) ListUsers(f models.UserFilter) ([]models.User, error) {
	var users []models.User

	where := []string{"1=1"}
	args := []interface{}{}
	argID := 1

	if f.Role != "" {
		where = append(where, fmt.Sprintf("user_role = $%d", argID))
		args = append(args, f.Role)
		argID++
	}
	if f.Banned != nil {
		where = append(where, fmt.Sprintf("banned = $%d", argID))
		args = append(args, *f.Banned)
		argID++
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, strings.Join(where, " AND "), argID, argID+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return users, errors.New("unable to list users, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return users, err
		}
		users = append(users, user)
	}
	return users, nil
}
