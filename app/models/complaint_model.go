package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ComplaintPending    = "pending"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
	ComplaintClosed     = "closed"
)

var ValidComplaintStatuts = []string{ComplaintPending, ComplaintInProgress, ComplaintResolved, ComplaintClosed}

type Complaint struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	DemandeID     *uuid.UUID `json:"demande_id,omitempty" db:"demande_id"`
	Subject       string     `json:"subject" db:"subject"`
	Message       string     `json:"message" db:"message"`
	Statut        string     `json:"statut" db:"statut"`
	AdminResponse string     `json:"admin_response,omitempty" db:"admin_response"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateComplaintRequest struct {
	DemandeID *uuid.UUID `json:"demande_id"`
	Subject   string     `json:"subject" validate:"required,lte=255"`
	Message   string     `json:"message" validate:"required,lte=4000"`
}

type RespondComplaintRequest struct {
	Response string `json:"response" validate:"required,lte=4000"`
	Statut   string `json:"statut" validate:"required,oneof=pending in_progress resolved closed"`
}
