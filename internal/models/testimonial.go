package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a client review. DisplayOrder is operator-assigned
// and never renumbered on delete; gaps are fine.
type Testimonial struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string     `gorm:"not null;size:255" json:"name"`
	Role         *string    `gorm:"size:255" json:"role"`
	Company      *string    `gorm:"size:255" json:"company"`
	Photo        *string    `gorm:"type:text" json:"photo"`
	Quote        string     `gorm:"type:text;not null" json:"quote"`
	Rating       int        `gorm:"not null;default:5;check:rating >= 1 AND rating <= 5" json:"rating"`
	PropertyID   *uuid.UUID `gorm:"type:uuid;index" json:"property_id"`
	Published    bool       `gorm:"default:true" json:"published"`
	DisplayOrder int        `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Property     *Property  `gorm:"foreignKey:PropertyID" json:"-"`
}
