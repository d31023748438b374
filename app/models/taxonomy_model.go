package models

import "github.com/google/uuid"

// Metier, Category and SousService form the static trade taxonomy loaded by
// the seed binary. They are never mutated at runtime.

type Metier struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Label string    `json:"label" db:"label"`
}

type Category struct {
	ID       uuid.UUID `json:"id" db:"id"`
	MetierID uuid.UUID `json:"metier_id" db:"metier_id"`
	Name     string    `json:"name" db:"name"`
	Label    string    `json:"label" db:"label"`
}

type SousService struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	Label      string    `json:"label" db:"label"`
}
