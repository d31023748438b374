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

type ServiceQueries struct {
	DB *sql.DB
}

const serviceColumns = `id, user_id, metier, sous_service_id, title, description, address, city, latitude, longitude, price, price_unit, days, active, archived, created_at, updated_at`

func scanService(row interface{ Scan(...interface{}) error }) (models.Service, error) {
	s := models.Service{}
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Metier,
		&s.SousServiceID,
		&s.Title,
		&s.Description,
		&s.Address,
		&s.City,
		&s.Latitude,
		&s.Longitude,
		&s.Price,
		&s.PriceUnit,
		pq.Array(&s.Days),
		&s.Active,
		&s.Archived,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// CreateService inserts the listing and its options in one transaction.
func (q *ServiceQueries) CreateService(s *models.Service) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return errors.New("unable to start transaction, DB error")
	}
	defer tx.Rollback()

	query := `INSERT INTO services (id, user_id, metier, sous_service_id, title, description, address, city, latitude, longitude, price, price_unit, days, active, archived, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = tx.Exec(query,
		s.ID, s.UserID, s.Metier, s.SousServiceID, s.Title, s.Description,
		s.Address, s.City, s.Latitude, s.Longitude, s.Price, s.PriceUnit,
		pq.Array(s.Days), s.Active, s.Archived, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create service, DB error")
	}

	for _, opt := range s.Options {
		_, err := tx.Exec(
			`INSERT INTO service_options (id, service_id, option_group, name, enabled, price, unit) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			opt.ID, s.ID, opt.Group, opt.Name, opt.Enabled, opt.Price, opt.Unit,
		)
		if err != nil {
			return errors.New("unable to create service option, DB error")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.New("unable to commit service, DB error")
	}
	return nil
}

func (q *ServiceQueries) GetServiceByID(id uuid.UUID) (models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	s, err := scanService(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return s, errors.New("service not found")
		}
		return s, errors.New("unable to get service, DB error")
	}

	opts, err := q.GetOptionsByService(s.ID)
	if err != nil {
		return s, err
	}
	s.Options = opts
	return s, nil
}

func (q *ServiceQueries) GetOptionsByService(serviceID uuid.UUID) ([]models.ServiceOption, error) {
	var opts []models.ServiceOption
	rows, err := q.DB.Query(
		`SELECT id, service_id, option_group, name, enabled, price, unit FROM service_options WHERE service_id = $1 ORDER BY option_group, name`,
		serviceID,
	)
	if err != nil {
		return opts, errors.New("unable to query service options")
	}
	defer rows.Close()
	for rows.Next() {
		var o models.ServiceOption
		if err := rows.Scan(&o.ID, &o.ServiceID, &o.Group, &o.Name, &o.Enabled, &o.Price, &o.Unit); err != nil {
			return opts, err
		}
		opts = append(opts, o)
	}
	return opts, nil
}

func (q *ServiceQueries) GetServicesByOwner(userID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	query := `SELECT ` + serviceColumns + ` FROM services WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := q.DB.Query(query, userID)
	if err != nil {
		return services, errors.New("unable to query services")
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return services, err
		}
		services = append(services, s)
	}
	return services, nil
}

// SearchServices lists active, non-archived listings for the public catalog.
func (q *ServiceQueries) SearchServices(f models.ServiceFilter) ([]models.Service, error) {
	var services []models.Service

	where := []string{"active = TRUE", "archived = FALSE"}
	args := []interface{}{}
	argID := 1

	if f.Metier != "" {
		where = append(where, fmt.Sprintf("metier = $%d", argID))
		args = append(args, f.Metier)
		argID++
	}
	if f.City != "" {
		where = append(where, fmt.Sprintf("city ILIKE $%d", argID))
		args = append(args, f.City)
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

	query := fmt.Sprintf(`SELECT %s FROM services WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		serviceColumns, strings.Join(where, " AND "), argID, argID+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return services, errors.New("unable to search services")
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return services, err
		}
		services = append(services, s)
	}
	return services, nil
}

// UpdateService updates listing fields and, when options are given, replaces
// the option set inside the same transaction.
func (q *ServiceQueries) UpdateService(serviceID uuid.UUID, req *models.UpdateServiceRequest, options []models.ServiceOption) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return errors.New("unable to start transaction, DB error")
	}
	defer tx.Rollback()

	setClauses := []string{}
	args := []interface{}{}
	argID := 1

	if req.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *req.Title)
		argID++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *req.Description)
		argID++
	}
	if req.Address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", argID))
		args = append(args, *req.Address)
		argID++
	}
	if req.City != nil {
		setClauses = append(setClauses, fmt.Sprintf("city = $%d", argID))
		args = append(args, *req.City)
		argID++
	}
	if req.Price != nil {
		setClauses = append(setClauses, fmt.Sprintf("price = $%d", argID))
		args = append(args, *req.Price)
		argID++
	}
	if req.PriceUnit != nil {
		setClauses = append(setClauses, fmt.Sprintf("price_unit = $%d", argID))
		args = append(args, *req.PriceUnit)
		argID++
	}
	if req.Days != nil {
		setClauses = append(setClauses, fmt.Sprintf("days = $%d", argID))
		args = append(args, pq.Array(req.Days))
		argID++
	}

	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = now()")
		query := fmt.Sprintf(`UPDATE services SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argID)
		args = append(args, serviceID)

		res, err := tx.Exec(query, args...)
		if err != nil {
			return errors.New("unable to update service, DB error")
		}
		rows, _ := res.RowsAffected()
		if rows == 0 {
			return errors.New("service not found")
		}
	}

	if options != nil {
		if _, err := tx.Exec(`DELETE FROM service_options WHERE service_id = $1`, serviceID); err != nil {
			return errors.New("unable to replace service options, DB error")
		}
		for _, opt := range options {
			_, err := tx.Exec(
				`INSERT INTO service_options (id, service_id, option_group, name, enabled, price, unit) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				opt.ID, serviceID, opt.Group, opt.Name, opt.Enabled, opt.Price, opt.Unit,
			)
			if err != nil {
				return errors.New("unable to replace service options, DB error")
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.New("unable to commit service update, DB error")
	}
	return nil
}

// ToggleActive flips the active flag and returns the new value.
func (q *ServiceQueries) ToggleActive(serviceID uuid.UUID) (bool, error) {
	var active bool
	query := `UPDATE services SET active = NOT active, updated_at = now() WHERE id = $1 AND archived = FALSE RETURNING active`
	err := q.DB.QueryRow(query, serviceID).Scan(&active)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, errors.New("service not found or archived")
		}
		return false, errors.New("unable to toggle service, DB error")
	}
	return active, nil
}

// SetArchived archives or reactivates a listing. Archiving also deactivates;
// un-archiving leaves the owner's active flag as it was.
func (q *ServiceQueries) SetArchived(serviceID uuid.UUID, archived bool) error {
	query := `UPDATE services SET archived = $1, active = (active AND NOT $1), updated_at = now() WHERE id = $2`
	res, err := q.DB.Exec(query, archived, serviceID)
	if err != nil {
		return errors.New("unable to archive service, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("service not found")
	}
	return nil
}

// ListServices is the unfiltered admin view, archived included.
func (q *ServiceQueries) ListServices(page, limit int) ([]models.Service, error) {
	var services []models.Service

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := q.DB.Query(query, limit, (page-1)*limit)
	if err != nil {
		return services, errors.New("unable to list services")
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return services, err
		}
		services = append(services, s)
	}
	return services, nil
}
