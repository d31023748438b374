package queries

import (
	"database/sql"
	"errors"

	"github.com/servicepro/servicepro-backend/app/models"
	"github.com/servicepro/servicepro-backend/pkg/utils"
)

type AdminQueries struct {
	DB *sql.DB
}

// GetStats aggregates the back-office dashboard numbers in a handful of
// simple queries. Revenue is a read-only sum, nothing is mutated here.
func (q *AdminQueries) GetStats() (models.AdminStats, error) {
	stats := models.AdminStats{DemandesByStatut: make(map[string]int)}

	err := q.DB.QueryRow(`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE user_role = 'client'),
			COUNT(*) FILTER (WHERE user_role = 'intervenant'),
			COUNT(*) FILTER (WHERE banned)
		FROM users`).Scan(&stats.TotalUsers, &stats.TotalClients, &stats.TotalIntervenants, &stats.BannedUsers)
	if err != nil {
		return stats, errors.New("unable to aggregate user stats, DB error")
	}

	err = q.DB.QueryRow(`SELECT COUNT(*), COUNT(*) FILTER (WHERE active AND NOT archived) FROM services`).
		Scan(&stats.TotalServices, &stats.ActiveServices)
	if err != nil {
		return stats, errors.New("unable to aggregate service stats, DB error")
	}

	rows, err := q.DB.Query(`SELECT statut, COUNT(*) FROM demandes GROUP BY statut`)
	if err != nil {
		return stats, errors.New("unable to aggregate demande stats, DB error")
	}
	defer rows.Close()
	for rows.Next() {
		var statut string
		var count int
		if err := rows.Scan(&statut, &count); err != nil {
			return stats, err
		}
		stats.DemandesByStatut[statut] = count
	}

	err = q.DB.QueryRow(`SELECT COALESCE(SUM(proposed_price), 0) FROM demandes WHERE statut = $1`, utils.StatutTermine).
		Scan(&stats.CompletedRevenue)
	if err != nil {
		return stats, errors.New("unable to aggregate revenue, DB error")
	}

	err = q.DB.QueryRow(`SELECT COALESCE(AVG(note), 0) FROM reviews`).Scan(&stats.AverageRating)
	if err != nil {
		return stats, errors.New("unable to aggregate ratings, DB error")
	}

	err = q.DB.QueryRow(`SELECT COUNT(*) FROM justificatifs WHERE statut = $1`, models.JustificatifEnAttente).
		Scan(&stats.PendingDocuments)
	if err != nil {
		return stats, errors.New("unable to count pending documents, DB error")
	}

	err = q.DB.QueryRow(`SELECT COUNT(*) FROM reclamations WHERE statut IN ($1, $2)`,
		models.ComplaintPending, models.ComplaintInProgress).Scan(&stats.OpenComplaints)
	if err != nil {
		return stats, errors.New("unable to count open reclamations, DB error")
	}

	return stats, nil
}
