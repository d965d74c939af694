package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategories lists the categories a service may belong to.
var ServiceCategories = []string{"plumbing", "electrical", "cleaning", "tutoring", "other"}

// ValidServiceCategory reports whether category is one of ServiceCategories.
func ValidServiceCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Service struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	Description  *string   `json:"description" db:"description"`
	Available    bool      `json:"available" db:"available"`
	Rating       float64   `json:"rating" db:"rating"`
	ReviewsCount int       `json:"reviews_count" db:"reviews_count"`
	Price        *float64  `json:"price" db:"price"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
