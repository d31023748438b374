package queries

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
)

type ComplaintQueries struct {
	DB *sql.DB
}

const complaintColumns = `id, user_id, demande_id, subject, message, statut, admin_response, created_at, updated_at`

func scanComplaint(row interface{ Scan(...interface{}) error }) (models.Complaint, error) {
	c := models.Complaint{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.DemandeID, &c.Subject, &c.Message,
		&c.Statut, &c.AdminResponse, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (q *ComplaintQueries) CreateComplaint(c *models.Complaint) error {
	query := `INSERT INTO reclamations (id, user_id, demande_id, subject, message, statut, admin_response, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.DB.Exec(query,
		c.ID, c.UserID, c.DemandeID, c.Subject, c.Message,
		c.Statut, c.AdminResponse, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create reclamation, DB error")
	}
	return nil
}

func (q *ComplaintQueries) GetComplaintByID(id uuid.UUID) (models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM reclamations WHERE id = $1`
	c, err := scanComplaint(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return c, errors.New("reclamation not found")
		}
		return c, errors.New("unable to get reclamation, DB error")
	}
	return c, nil
}

func (q *ComplaintQueries) GetComplaintsByUser(userID uuid.UUID) ([]models.Complaint, error) {
	var complaints []models.Complaint
	query := `SELECT ` + complaintColumns + ` FROM reclamations WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := q.DB.Query(query, userID)
	if err != nil {
		return complaints, errors.New("unable to query reclamations")
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return complaints, err
		}
		complaints = append(complaints, c)
	}
	return complaints, nil
}

func (q *ComplaintQueries) ListComplaints(statut string, page, limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint

	where := []string{"1=1"}
	args := []interface{}{}
	argID := 1

	if statut != "" {
		where = append(where, fmt.Sprintf("statut = $%d", argID))
		args = append(args, statut)
		argID++
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`SELECT %s FROM reclamations WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		complaintColumns, strings.Join(where, " AND "), argID, argID+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return complaints, errors.New("unable to list reclamations")
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return complaints, err
		}
		complaints = append(complaints, c)
	}
	return complaints, nil
}

// Respond sets the admin response text and the new status.
func (q *ComplaintQueries) Respond(id uuid.UUID, response, statut string) error {
	query := `UPDATE reclamations SET admin_response = $1, statut = $2, updated_at = now() WHERE id = $3`
	res, err := q.DB.Exec(query, response, statut, id)
	if err != nil {
		return errors.New("unable to respond to reclamation, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("reclamation not found")
	}
	return nil
}
