package models

import (
	"time"

	"github.com/google/uuid"
)

// Review directions: who the review is aimed at.
const (
	ReviewOfIntervenant = "client_vers_intervenant"
	ReviewOfClient      = "intervenant_vers_client"
)

type Review struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DemandeID   uuid.UUID `json:"demande_id" db:"demande_id"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	TargetID    uuid.UUID `json:"target_id" db:"target_id"`
	Direction   string    `json:"direction" db:"direction"`
	Ponctualite int       `json:"ponctualite" db:"ponctualite"`
	Proprete    int       `json:"proprete" db:"proprete"`
	Qualite     int       `json:"qualite" db:"qualite"`
	Note        float64   `json:"note" db:"note"`
	Comment     string    `json:"comment,omitempty" db:"comment"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateReviewRequest struct {
	DemandeID   uuid.UUID `json:"demande_id" validate:"required"`
	Ponctualite int       `json:"ponctualite" validate:"required,gte=1,lte=5"`
	Proprete    int       `json:"proprete" validate:"required,gte=1,lte=5"`
	Qualite     int       `json:"qualite" validate:"required,gte=1,lte=5"`
	Comment     string    `json:"comment" validate:"omitempty,lte=2000"`
}
