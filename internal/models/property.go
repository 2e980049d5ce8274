package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Property listing statuses.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusSold      = "sold"
)

// ValidStatus reports whether status is one of the enumerated values.
func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

// Property is a real-estate listing. Array columns may be NULL in the
// database; the service layer normalizes them to empty slices.
type Property struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string         `gorm:"not null;size:255" json:"title"`
	Description  *string        `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"type:numeric(14,2);not null;check:price >= 0" json:"price"`
	Location     string         `gorm:"not null;size:255" json:"location"`
	Bedrooms     *int           `json:"bedrooms"`
	Bathrooms    *int           `json:"bathrooms"`
	SquareFeet   *int           `json:"square_feet"`
	LotSize      *string        `gorm:"size:100" json:"lot_size"`
	YearBuilt    *int           `json:"year_built"`
	PropertyType *string        `gorm:"size:100" json:"property_type"`
	Status       string         `gorm:"size:20;not null;default:'available'" json:"status"`
	Featured     bool           `gorm:"default:false" json:"featured"`
	Images       pq.StringArray `gorm:"type:text[]" json:"images"`
	Amenities    pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Features     pq.StringArray `gorm:"type:text[]" json:"features"`
	Agent        datatypes.JSON `gorm:"type:jsonb" json:"agent"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
