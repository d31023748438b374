package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DispoSemaine = "semaine"
	DispoDate    = "date"
)

// Disponibilite is one availability slot of a service, either a recurring
// weekly slot (Day set) or a one-off dated slot (Date set).
type Disponibilite struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ServiceID uuid.UUID  `json:"service_id" db:"service_id"`
	Kind      string     `json:"kind" db:"kind"`
	Day       string     `json:"day,omitempty" db:"day"`
	Date      *time.Time `json:"date,omitempty" db:"date"`
	StartTime string     `json:"start_time" db:"start_time"`
	EndTime   string     `json:"end_time" db:"end_time"`
}

type WeeklySlotInput struct {
	Day       string `json:"day" validate:"required,oneof=lundi mardi mercredi jeudi vendredi samedi dimanche"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type ReplaceWeeklyRequest struct {
	Slots []WeeklySlotInput `json:"slots" validate:"required,dive"`
}

type DateSlotRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}
