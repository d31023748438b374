package models

// AdminStats is the back-office dashboard aggregate. Revenue is the read-only
// sum of proposed prices of completed missions.
type AdminStats struct {
	TotalUsers        int            `json:"total_users"`
	TotalClients      int            `json:"total_clients"`
	TotalIntervenants int            `json:"total_intervenants"`
	BannedUsers       int            `json:"banned_users"`
	TotalServices     int            `json:"total_services"`
	ActiveServices    int            `json:"active_services"`
	DemandesByStatut  map[string]int `json:"demandes_by_statut"`
	CompletedRevenue  float64        `json:"completed_revenue"`
	AverageRating     float64        `json:"average_rating"`
	PendingDocuments  int            `json:"pending_documents"`
	OpenComplaints    int            `json:"open_complaints"`
}
