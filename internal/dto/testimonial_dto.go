package dto

import "github.com/google/uuid"

type CreateTestimonialRequest struct {
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Photo        string     `json:"photo"`
	Quote        string     `json:"quote"`
	Rating       *int       `json:"rating"` // omitted -> 5
	PropertyID   *uuid.UUID `json:"property_id"`
	Published    *bool      `json:"published"` // omitted -> true
	DisplayOrder int        `json:"display_order"`
}

type UpdateTestimonialRequest struct {
	Name         *string    `json:"name"`
	Role         *string    `json:"role"`
	Company      *string    `json:"company"`
	Photo        *string    `json:"photo"`
	Quote        *string    `json:"quote"`
	Rating       *int       `json:"rating"`
	PropertyID   *uuid.UUID `json:"property_id"`
	Published    *bool      `json:"published"`
	DisplayOrder *int       `json:"display_order"`
}

type TestimonialResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Photo        string     `json:"photo"`
	Quote        string     `json:"quote"`
	Rating       int        `json:"rating"`
	PropertyID   *uuid.UUID `json:"property_id"`
	Published    bool       `json:"published"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
}
