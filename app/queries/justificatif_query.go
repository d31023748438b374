package queries

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
)

type JustificatifQueries struct {
	DB *sql.DB
}

const justificatifColumns = `id, user_id, doc_type, file_path, file_name, statut, admin_comment, created_at, updated_at`

func scanJustificatif(row interface{ Scan(...interface{}) error }) (models.Justificatif, error) {
	j := models.Justificatif{}
	err := row.Scan(
		&j.ID, &j.UserID, &j.DocType, &j.FilePath, &j.FileName,
		&j.Statut, &j.AdminComment, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

func (q *JustificatifQueries) CreateJustificatif(j *models.Justificatif) error {
	query := `INSERT INTO justificatifs (id, user_id, doc_type, file_path, file_name, statut, admin_comment, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.DB.Exec(query,
		j.ID, j.UserID, j.DocType, j.FilePath, j.FileName,
		j.Statut, j.AdminComment, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create justificatif, DB error")
	}
	return nil
}

func (q *JustificatifQueries) GetJustificatifByID(id uuid.UUID) (models.Justificatif, error) {
	query := `SELECT ` + justificatifColumns + ` FROM justificatifs WHERE id = $1`
	j, err := scanJustificatif(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return j, errors.New("justificatif not found")
		}
		return j, errors.New("unable to get justificatif, DB error")
	}
	return j, nil
}

func (q *JustificatifQueries) GetJustificatifsByUser(userID uuid.UUID) ([]models.Justificatif, error) {
	var docs []models.Justificatif
	query := `SELECT ` + justificatifColumns + ` FROM justificatifs WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := q.DB.Query(query, userID)
	if err != nil {
		return docs, errors.New("unable to query justificatifs")
	}
	defer rows.Close()
	for rows.Next() {
		j, err := scanJustificatif(rows)
		if err != nil {
			return docs, err
		}
		docs = append(docs, j)
	}
	return docs, nil
}

func (q *JustificatifQueries) ListJustificatifs(statut string, page, limit int) ([]models.Justificatif, error) {
	var docs []models.Justificatif

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	query := `SELECT ` + justificatifColumns + ` FROM justificatifs`
	args := []interface{}{}
	if statut != "" {
		query += ` WHERE statut = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, statut, limit, (page-1)*limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return docs, errors.New("unable to list justificatifs")
	}
	defer rows.Close()
	for rows.Next() {
		j, err := scanJustificatif(rows)
		if err != nil {
			return docs, err
		}
		docs = append(docs, j)
	}
	return docs, nil
}

// SetStatut records the admin decision on a document.
func (q *JustificatifQueries) SetStatut(id uuid.UUID, statut, comment string) error {
	query := `UPDATE justificatifs SET statut = $1, admin_comment = $2, updated_at = now() WHERE id = $3`
	res, err := q.DB.Exec(query, statut, comment, id)
	if err != nil {
		return errors.New("unable to update justificatif, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("justificatif not found")
	}
	return nil
}

// CountPendingByUser is used after a validation to decide whether the user
// can be flipped to verified.
func (q *JustificatifQueries) CountPendingByUser(userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM justificatifs WHERE user_id = $1 AND statut = $2`
	err := q.DB.QueryRow(query, userID, models.JustificatifEnAttente).Scan(&count)
	if err != nil {
		return 0, errors.New("unable to count justificatifs, DB error")
	}
	return count, nil
}
