package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Metier        string    `json:"metier" db:"metier"`
	SousServiceID uuid.UUID `json:"sous_service_id" db:"sous_service_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description,omitempty" db:"description"`
	Address       string    `json:"address" db:"address"`
	City          string    `json:"city" db:"city"`
	Latitude      float64   `json:"latitude" db:"latitude"`
	Longitude     float64   `json:"longitude" db:"longitude"`
	Price         float64   `json:"price" db:"price"`
	PriceUnit     string    `json:"price_unit" db:"price_unit"`
	Days          []string  `json:"days" db:"days"`
	Active        bool      `json:"active" db:"active"`
	Archived      bool      `json:"archived" db:"archived"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Options []ServiceOption `json:"options,omitempty"`
}

// ServiceOption is one priced option of a listing (a material, finish or work
// type), validated against the per-metier schema at write time.
type ServiceOption struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ServiceID uuid.UUID `json:"service_id" db:"service_id"`
	Group     string    `json:"group" db:"option_group"`
	Name      string    `json:"name" db:"name"`
	Enabled   bool      `json:"enabled" db:"enabled"`
	Price     float64   `json:"price" db:"price"`
	Unit      string    `json:"unit" db:"unit"`
}

type ServiceOptionInput struct {
	Group   string  `json:"group" validate:"required,lte=50"`
	Name    string  `json:"name" validate:"required,lte=50"`
	Enabled bool    `json:"enabled"`
	Price   float64 `json:"price" validate:"gte=0"`
	Unit    string  `json:"unit" validate:"omitempty,lte=20"`
}

// CreateServiceRequest is the payload produced by the publishing wizard.
type CreateServiceRequest struct {
	Metier        string               `json:"metier" validate:"required"`
	SousServiceID uuid.UUID            `json:"sous_service_id" validate:"required"`
	Title         string               `json:"title" validate:"required,lte=255"`
	Description   string               `json:"description" validate:"omitempty,lte=2000"`
	Address       string               `json:"address" validate:"required,lte=255"`
	City          string               `json:"city" validate:"required,lte=100"`
	Latitude      *float64             `json:"latitude" validate:"required"`
	Longitude     *float64             `json:"longitude" validate:"required"`
	Price         float64              `json:"price" validate:"required,gt=0"`
	PriceUnit     string               `json:"price_unit" validate:"required,oneof=heure jour forfait m2"`
	Days          []string             `json:"days" validate:"omitempty,dive,oneof=lundi mardi mercredi jeudi vendredi samedi dimanche"`
	Options       []ServiceOptionInput `json:"options" validate:"omitempty,dive"`
}

type UpdateServiceRequest struct {
	Title       *string              `json:"title" validate:"omitempty,lte=255"`
	Description *string              `json:"description" validate:"omitempty,lte=2000"`
	Address     *string              `json:"address" validate:"omitempty,lte=255"`
	City        *string              `json:"city" validate:"omitempty,lte=100"`
	Price       *float64             `json:"price" validate:"omitempty,gt=0"`
	PriceUnit   *string              `json:"price_unit" validate:"omitempty,oneof=heure jour forfait m2"`
	Days        []string             `json:"days" validate:"omitempty,dive,oneof=lundi mardi mercredi jeudi vendredi samedi dimanche"`
	Options     []ServiceOptionInput `json:"options" validate:"omitempty,dive"`
}

type ServiceFilter struct {
	Metier string
	City   string
	Page   int
	Limit  int
}
