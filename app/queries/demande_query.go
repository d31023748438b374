package queries

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/servicepro/servicepro-backend/app/models"
)

type DemandeQueries struct {
	DB *sql.DB
}

const demandeColumns = `id, client_id, service_id, description, categories, date_souhaitee, address, city, proposed_price, statut, created_at, updated_at`

func scanDemande(row interface{ Scan(...interface{}) error }) (models.Demande, error) {
	d := models.Demande{}
	err := row.Scan(
		&d.ID,
		&d.ClientID,
		&d.ServiceID,
		&d.Description,
		pq.Array(&d.Categories),
		&d.DateSouhaitee,
		&d.Address,
		&d.City,
		&d.ProposedPrice,
		&d.Statut,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (q *DemandeQueries) CreateDemande(d *models.Demande) error {
	query := `INSERT INTO demandes (id, client_id, service_id, description, categories, date_souhaitee, address, city, proposed_price, statut, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := q.DB.Exec(query,
		d.ID, d.ClientID, d.ServiceID, d.Description, pq.Array(d.Categories),
		d.DateSouhaitee, d.Address, d.City, d.ProposedPrice, d.Statut,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create demande, DB error")
	}
	return nil
}

func (q *DemandeQueries) GetDemandeByID(id uuid.UUID) (models.Demande, error) {
	query := `SELECT ` + demandeColumns + ` FROM demandes WHERE id = $1`
	d, err := scanDemande(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return d, errors.New("demande not found")
		}
		return d, errors.New("unable to get demande, DB error")
	}
	return d, nil
}

// GetProviderForDemande returns the user owning the service the demande
// targets.
func (q *DemandeQueries) GetProviderForDemande(demandeID uuid.UUID) (uuid.UUID, error) {
	var provider uuid.UUID
	query := `SELECT s.user_id FROM demandes d JOIN services s ON s.id = d.service_id WHERE d.id = $1`
	err := q.DB.QueryRow(query, demandeID).Scan(&provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return provider, errors.New("demande not found")
		}
		return provider, errors.New("unable to get demande, DB error")
	}
	return provider, nil
}

func (q *DemandeQueries) GetDemandesByClient(clientID uuid.UUID) ([]models.Demande, error) {
	var demandes []models.Demande
	query := `SELECT ` + demandeColumns + ` FROM demandes WHERE client_id = $1 ORDER BY created_at DESC`
	rows, err := q.DB.Query(query, clientID)
	if err != nil {
		return demandes, errors.New("unable to query demandes")
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanDemande(rows)
		if err != nil {
			return demandes, err
		}
		demandes = append(demandes, d)
	}
	return demandes, nil
}

// GetMissionsForProvider lists demandes targeting any of the provider's
// services, joined with service title and client name.
func (q *DemandeQueries) GetMissionsForProvider(providerID uuid.UUID, statut string) ([]models.MissionView, error) {
	var missions []models.MissionView

	query := `SELECT d.id, d.client_id, d.service_id, d.description, d.categories, d.date_souhaitee, d.address, d.city, d.proposed_price, d.statut, d.created_at, d.updated_at,
					 s.title, u.username, s.user_id
			  FROM demandes d
			  JOIN services s ON s.id = d.service_id
			  JOIN users u ON u.uid = d.client_id
			  WHERE s.user_id = $1`
	args := []interface{}{providerID}
	if statut != "" {
		query += ` AND d.statut = $2`
		args = append(args, statut)
	}
	query += ` ORDER BY d.created_at DESC`

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return missions, errors.New("unable to query missions")
	}
	defer rows.Close()
	for rows.Next() {
		var mv models.MissionView
		d := &mv.Demande
		err := rows.Scan(
			&d.ID, &d.ClientID, &d.ServiceID, &d.Description, pq.Array(&d.Categories),
			&d.DateSouhaitee, &d.Address, &d.City, &d.ProposedPrice, &d.Statut,
			&d.CreatedAt, &d.UpdatedAt,
			&mv.ServiceTitle, &mv.ClientName, &mv.ProviderID,
		)
		if err != nil {
			return missions, err
		}
		missions = append(missions, mv)
	}
	return missions, nil
}

// TransitionStatut moves a demande from one status to another. The WHERE
// clause on the current status makes the update conditional, so of two
// concurrent transitions only one can win.
func (q *DemandeQueries) TransitionStatut(demandeID uuid.UUID, from, to string) error {
	query := `UPDATE demandes SET statut = $1, updated_at = now() WHERE id = $2 AND statut = $3`
	res, err := q.DB.Exec(query, to, demandeID, from)
	if err != nil {
		return errors.New("unable to update demande statut, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("demande statut changed concurrently")
	}
	return nil
}

// ListDemandes is the admin view over all demandes.
func (q *DemandeQueries) ListDemandes(statut string, page, limit int) ([]models.Demande, error) {
	var demandes []models.Demande

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

	query := fmt.Sprintf(`SELECT %s FROM demandes WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		demandeColumns, strings.Join(where, " AND "), argID, argID+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return demandes, errors.New("unable to list demandes")
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanDemande(rows)
		if err != nil {
			return demandes, err
		}
		demandes = append(demandes, d)
	}
	return demandes, nil
}
