package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	JustificatifEnAttente = "en_attente"
	JustificatifValide    = "valide"
	JustificatifRejete    = "rejete"
)

// Justificatif is an identity or qualification document uploaded by an
// intervenant, reviewed by an admin.
type Justificatif struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	DocType      string    `json:"doc_type" db:"doc_type"`
	FilePath     string    `json:"-" db:"file_path"`
	FileName     string    `json:"file_name" db:"file_name"`
	Statut       string    `json:"statut" db:"statut"`
	AdminComment string    `json:"admin_comment,omitempty" db:"admin_comment"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
