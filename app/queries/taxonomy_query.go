package queries

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
)

type TaxonomyQueries struct {
	DB *sql.DB
}

func (q *TaxonomyQueries) GetMetiers() ([]models.Metier, error) {
	var metiers []models.Metier
	rows, err := q.DB.Query(`SELECT id, name, label FROM metiers ORDER BY name`)
	if err != nil {
		return metiers, errors.New("unable to query metiers")
	}
	defer rows.Close()
	for rows.Next() {
		var m models.Metier
		if err := rows.Scan(&m.ID, &m.Name, &m.Label); err != nil {
			return metiers, err
		}
		metiers = append(metiers, m)
	}
	return metiers, nil
}

func (q *TaxonomyQueries) GetCategoriesByMetier(metierID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	rows, err := q.DB.Query(`SELECT id, metier_id, name, label FROM categories WHERE metier_id = $1 ORDER BY name`, metierID)
	if err != nil {
		return categories, errors.New("unable to query categories")
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.MetierID, &c.Name, &c.Label); err != nil {
			return categories, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// GetSousServices lists sub-services, optionally restricted to one metier by
// name.
func (q *TaxonomyQueries) GetSousServices(metierName string) ([]models.SousService, error) {
	var sousServices []models.SousService

	query := `SELECT ss.id, ss.category_id, ss.name, ss.label
			  FROM sous_services ss
			  JOIN categories c ON c.id = ss.category_id
			  JOIN metiers m ON m.id = c.metier_id`
	args := []interface{}{}
	if metierName != "" {
		query += ` WHERE m.name = $1`
		args = append(args, metierName)
	}
	query += ` ORDER BY ss.name`

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return sousServices, errors.New("unable to query sous-services")
	}
	defer rows.Close()
	for rows.Next() {
		var ss models.SousService
		if err := rows.Scan(&ss.ID, &ss.CategoryID, &ss.Name, &ss.Label); err != nil {
			return sousServices, err
		}
		sousServices = append(sousServices, ss)
	}
	return sousServices, nil
}

func (q *TaxonomyQueries) GetSousServiceByID(id uuid.UUID) (models.SousService, error) {
	ss := models.SousService{}
	query := `SELECT id, category_id, name, label FROM sous_services WHERE id = $1`
	err := q.DB.QueryRow(query, id).Scan(&ss.ID, &ss.CategoryID, &ss.Name, &ss.Label)
	if err != nil {
		if err == sql.ErrNoRows {
			return ss, errors.New("sous-service not found")
		}
		return ss, errors.New("unable to get sous-service, DB error")
	}
	return ss, nil
}
