package models

import (
	"time"

	"github.com/google/uuid"
)

type Demande struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ClientID      uuid.UUID  `json:"client_id" db:"client_id"`
	ServiceID     uuid.UUID  `json:"service_id" db:"service_id"`
	Description   string     `json:"description,omitempty" db:"description"`
	Categories    []string   `json:"categories,omitempty" db:"categories"`
	DateSouhaitee *time.Time `json:"date_souhaitee,omitempty" db:"date_souhaitee"`
	Address       string     `json:"address" db:"address"`
	City          string     `json:"city" db:"city"`
	ProposedPrice float64    `json:"proposed_price,omitempty" db:"proposed_price"`
	Statut        string     `json:"statut" db:"statut"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateDemandeRequest struct {
	ServiceID     uuid.UUID `json:"service_id" validate:"required"`
	Description   string    `json:"description" validate:"omitempty,lte=2000"`
	Categories    []string  `json:"categories" validate:"omitempty,dive,lte=100"`
	DateSouhaitee string    `json:"date_souhaitee" validate:"omitempty,datetime=2006-01-02"`
	Address       string    `json:"address" validate:"required,lte=255"`
	City          string    `json:"city" validate:"required,lte=100"`
	ProposedPrice float64   `json:"proposed_price" validate:"omitempty,gte=0"`
}

// MissionView is a demande joined with its target service, as listed on the
// intervenant side.
type MissionView struct {
	Demande      Demande   `json:"demande"`
	ServiceTitle string    `json:"service_title"`
	ClientName   string    `json:"client_name"`
	ProviderID   uuid.UUID `json:"provider_id"`
}
