package queries

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
)

type ReviewQueries struct {
	DB *sql.DB
}

func (q *ReviewQueries) CreateReview(r *models.Review) error {
	query := `INSERT INTO reviews (id, demande_id, author_id, target_id, direction, ponctualite, proprete, qualite, note, comment, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := q.DB.Exec(query,
		r.ID, r.DemandeID, r.AuthorID, r.TargetID, r.Direction,
		r.Ponctualite, r.Proprete, r.Qualite, r.Note, r.Comment, r.CreatedAt,
	)
	if err != nil {
		return errors.New("unable to create review, DB error")
	}
	return nil
}

// ExistsForDemandeDirection reports whether a review in the given direction
// already exists for a demande. Checked before insert; the unique index on
// (demande_id, direction) backs it up.
func (q *ReviewQueries) ExistsForDemandeDirection(demandeID uuid.UUID, direction string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE demande_id = $1 AND direction = $2)`
	err := q.DB.QueryRow(query, demandeID, direction).Scan(&exists)
	if err != nil {
		return false, errors.New("unable to check review, DB error")
	}
	return exists, nil
}

func (q *ReviewQueries) GetReviewsForUser(targetID uuid.UUID) ([]models.Review, error) {
	return q.listReviews(`SELECT id, demande_id, author_id, target_id, direction, ponctualite, proprete, qualite, note, comment, created_at FROM reviews WHERE target_id = $1 ORDER BY created_at DESC`, targetID)
}

func (q *ReviewQueries) GetReviewsByAuthor(authorID uuid.UUID) ([]models.Review, error) {
	return q.listReviews(`SELECT id, demande_id, author_id, target_id, direction, ponctualite, proprete, qualite, note, comment, created_at FROM reviews WHERE author_id = $1 ORDER BY created_at DESC`, authorID)
}

func (q *ReviewQueries) listReviews(query string, id uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	rows, err := q.DB.Query(query, id)
	if err != nil {
		return reviews, errors.New("unable to query reviews")
	}
	defer rows.Close()
	for rows.Next() {
		var r models.Review
		err := rows.Scan(&r.ID, &r.DemandeID, &r.AuthorID, &r.TargetID, &r.Direction,
			&r.Ponctualite, &r.Proprete, &r.Qualite, &r.Note, &r.Comment, &r.CreatedAt)
		if err != nil {
			return reviews, err
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}
