package queries

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
)

type AvailabilityQueries struct {
	DB *sql.DB
}

func (q *AvailabilityQueries) GetByService(serviceID uuid.UUID) ([]models.Disponibilite, error) {
	var slots []models.Disponibilite
	query := `SELECT id, service_id, kind, day, date, start_time, end_time FROM disponibilites WHERE service_id = $1 ORDER BY kind, day, date`
	rows, err := q.DB.Query(query, serviceID)
	if err != nil {
		return slots, errors.New("unable to query disponibilites")
	}
	defer rows.Close()
	for rows.Next() {
		var d models.Disponibilite
		if err := rows.Scan(&d.ID, &d.ServiceID, &d.Kind, &d.Day, &d.Date, &d.StartTime, &d.EndTime); err != nil {
			return slots, err
		}
		slots = append(slots, d)
	}
	return slots, nil
}

// ReplaceWeekly swaps the whole recurring week for a service in one
// transaction. One-off dated slots are untouched.
func (q *AvailabilityQueries) ReplaceWeekly(serviceID uuid.UUID, slots []models.Disponibilite) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return errors.New("unable to start transaction, DB error")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM disponibilites WHERE service_id = $1 AND kind = $2`, serviceID, models.DispoSemaine); err != nil {
		return errors.New("unable to clear weekly disponibilites, DB error")
	}

	for _, d := range slots {
		_, err := tx.Exec(
			`INSERT INTO disponibilites (id, service_id, kind, day, start_time, end_time) VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, serviceID, models.DispoSemaine, d.Day, d.StartTime, d.EndTime,
		)
		if err != nil {
			return errors.New("unable to insert weekly disponibilite, DB error")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.New("unable to commit disponibilites, DB error")
	}
	return nil
}

func (q *AvailabilityQueries) CreateDateSlot(serviceID uuid.UUID, date time.Time, startTime, endTime string) (models.Disponibilite, error) {
	d := models.Disponibilite{
		ID:        uuid.New(),
		ServiceID: serviceID,
		Kind:      models.DispoDate,
		Date:      &date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	query := `INSERT INTO disponibilites (id, service_id, kind, date, start_time, end_time) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.DB.Exec(query, d.ID, d.ServiceID, d.Kind, d.Date, d.StartTime, d.EndTime)
	if err != nil {
		return d, errors.New("unable to create disponibilite, DB error")
	}
	return d, nil
}

// GetSlotOwner returns the user owning the service a slot belongs to, used
// for the ownership check on delete.
func (q *AvailabilityQueries) GetSlotOwner(slotID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	query := `SELECT s.user_id FROM disponibilites d JOIN services s ON s.id = d.service_id WHERE d.id = $1`
	err := q.DB.QueryRow(query, slotID).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return owner, errors.New("disponibilite not found")
		}
		return owner, errors.New("unable to get disponibilite, DB error")
	}
	return owner, nil
}

func (q *AvailabilityQueries) DeleteSlot(slotID uuid.UUID) error {
	res, err := q.DB.Exec(`DELETE FROM disponibilites WHERE id = $1`, slotID)
	if err != nil {
		return errors.New("unable to delete disponibilite, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("disponibilite not found")
	}
	return nil
}
