package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        *Price          `json:"price"`
	Location     string          `json:"location"`
	Status       string          `json:"status"`
	Featured     bool            `json:"featured"`
	Images       []string        `json:"images"`
	Amenities    []string        `json:"amenities"`
	Features     []string        `json:"features"`
	PropertyType string          `json:"property_type"`
	Type         string          `json:"type"` // UI alias for property_type
	Bedrooms     *int            `json:"bedrooms"`
	Bathrooms    *int            `json:"bathrooms"`
	SquareFeet   *int            `json:"square_feet"`
	LotSize      string          `json:"lot_size"`
	YearBuilt    *int            `json:"year_built"`
	Area         string          `json:"area"` // "5000 sqft" style; feeds square_feet + lot_size
	Agent        json.RawMessage `json:"agent"`

	VirtualTourURL  string   `json:"virtual_tour_url"`
	VideoURL        string   `json:"video_url"`
	FloorPlanImages []string `json:"floor_plan_images"`
}

// UpdatePropertyRequest carries only the fields to change; nil means
// "leave untouched".
type UpdatePropertyRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Price        *Price          `json:"price"`
	Location     *string         `json:"location"`
	Status       *string         `json:"status"`
	Featured     *bool           `json:"featured"`
	Images       []string        `json:"images"`
	Amenities    []string        `json:"amenities"`
	Features     []string        `json:"features"`
	PropertyType *string         `json:"property_type"`
	Type         *string         `json:"type"`
	Bedrooms     *int            `json:"bedrooms"`
	Bathrooms    *int            `json:"bathrooms"`
	SquareFeet   *int            `json:"square_feet"`
	LotSize      *string         `json:"lot_size"`
	YearBuilt    *int            `json:"year_built"`
	Area         *string         `json:"area"`
	Agent        json.RawMessage `json:"agent"`
}

// PropertyResponse is the normalized view-model shape: collection
// fields are never null and Area/Type are derived on every read.
type PropertyResponse struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Location     string          `json:"location"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	SquareFeet   int             `json:"square_feet"`
	LotSize      string          `json:"lot_size"`
	YearBuilt    int             `json:"year_built"`
	PropertyType string          `json:"property_type"`
	Type         string          `json:"type"`
	Area         string          `json:"area"`
	Status       string          `json:"status"`
	Featured     bool            `json:"featured"`
	Images       []string        `json:"images"`
	Amenities    []string        `json:"amenities"`
	Features     []string        `json:"features"`
	Agent        json.RawMessage `json:"agent,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type PropertySearchRequest struct {
	Location string   `query:"location"`
	Bedrooms int      `query:"bedrooms"`
	Type     string   `query:"type"`
	MinPrice *float64 `query:"min_price"`
	MaxPrice *float64 `query:"max_price"`
}
