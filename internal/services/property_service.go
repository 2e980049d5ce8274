package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrPriceRequired    = errors.New("price is required")
	ErrLocationRequired = errors.New("location is required")
	ErrInvalidStatus    = errors.New("status must be available, pending or sold")
)

type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// List returns all properties, newest first, normalized.
func (s *PropertyService) List() ([]dto.PropertyResponse, error) {
	var props []models.Property
	if err := s.db.Order("created_at DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	resp := make([]dto.PropertyResponse, len(props))
	for i := range props {
		resp[i] = *mapPropertyToResponse(&props[i])
	}
	return resp, nil
}

func (s *PropertyService) Get(id uuid.UUID) (*dto.PropertyResponse, error) {
	var prop models.Property
	if err := s.db.First(&prop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return mapPropertyToResponse(&prop), nil
}

func (s *PropertyService) Create(req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.Price == nil {
		return nil, ErrPriceRequired
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, ErrLocationRequired
	}

	status := req.Status
	if status == "" {
		status = models.StatusAvailable
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	prop := models.Property{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		Price:     float64(*req.Price),
		Location:  strings.TrimSpace(req.Location),
		Status:    status,
		Featured:  req.Featured,
		Images:    orEmpty(req.Images),
		Amenities: orEmpty(req.Amenities),
		Features:  orEmpty(req.Features),
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		YearBuilt: req.YearBuilt,
	}
	if req.Description != "" {
		prop.Description = &req.Description
	}
	if t := firstNonEmpty(req.Type, req.PropertyType); t != "" {
		prop.PropertyType = &t
	}
	if req.SquareFeet != nil {
		prop.SquareFeet = req.SquareFeet
	}
	if req.LotSize != "" {
		prop.LotSize = &req.LotSize
	}
	// A UI-style "area" string feeds both stored fields: digits become
	// square_feet, the verbatim string becomes lot_size.
	if req.Area != "" {
		if sq := digitsToInt(req.Area); sq > 0 {
			prop.SquareFeet = &sq
		}
		area := req.Area
		prop.LotSize = &area
	}
	if agent := buildAgentBlob(req.Agent, req.VirtualTourURL, req.VideoURL, req.FloorPlanImages); agent != nil {
		prop.Agent = agent
	}

	if err := s.db.Create(&prop).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return mapPropertyToResponse(&prop), nil
}

func (s *PropertyService) Update(id uuid.UUID, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	updates := map[string]interface{}{}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = trimmed
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = float64(*req.Price)
	}
	if req.Location != nil {
		trimmed := strings.TrimSpace(*req.Location)
		if trimmed == "" {
			return nil, ErrLocationRequired
		}
		updates["location"] = trimmed
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Amenities != nil {
		updates["amenities"] = pq.StringArray(req.Amenities)
	}
	if req.Features != nil {
		updates["features"] = pq.StringArray(req.Features)
	}
	if t := firstNonEmptyPtr(req.Type, req.PropertyType); t != "" {
		updates["property_type"] = t
	}
	if req.Bedrooms != nil {
		updates["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		updates["bathrooms"] = *req.Bathrooms
	}
	if req.SquareFeet != nil {
		updates["square_feet"] = *req.SquareFeet
	}
	if req.LotSize != nil {
		updates["lot_size"] = *req.LotSize
	}
	if req.YearBuilt != nil {
		updates["year_built"] = *req.YearBuilt
	}
	if req.Area != nil && *req.Area != "" {
		if sq := digitsToInt(*req.Area); sq > 0 {
			updates["square_feet"] = sq
		}
		updates["lot_size"] = *req.Area
	}
	if len(req.Agent) > 0 {
		updates["agent"] = datatypes.JSON(req.Agent)
	}

	if len(updates) == 0 {
		return s.Get(id)
	}

	result := s.db.Model(&models.Property{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrPropertyNotFound
	}
	return s.Get(id)
}

// Delete removes a property. Deleting an id that does not exist is an
// error, not a no-op.
func (s *PropertyService) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.Property{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// Published returns listings visible on the public site: everything
// not yet sold, newest first.
func (s *PropertyService) Published() ([]dto.PropertyResponse, error) {
	var props []models.Property
	if err := s.db.Where("status <> ?", models.StatusSold).
		Order("created_at DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	resp := make([]dto.PropertyResponse, len(props))
	for i := range props {
		resp[i] = *mapPropertyToResponse(&props[i])
	}
	return resp, nil
}

func (s *PropertyService) Featured() ([]dto.PropertyResponse, error) {
	var props []models.Property
	if err := s.db.Where("featured = ? AND status <> ?", true, models.StatusSold).
		Order("created_at DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	resp := make([]dto.PropertyResponse, len(props))
	for i := range props {
		resp[i] = *mapPropertyToResponse(&props[i])
	}
	return resp, nil
}

// Search filters published listings in the database.
func (s *PropertyService) Search(req *dto.PropertySearchRequest) ([]dto.PropertyResponse, error) {
	query := s.db.Where("status <> ?", models.StatusSold)
	if req.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(req.Location)+"%")
	}
	if req.Bedrooms > 0 {
		query = query.Where("bedrooms = ?", req.Bedrooms)
	}
	if req.Type != "" {
		query = query.Where("LOWER(property_type) = ?", strings.ToLower(req.Type))
	}
	if req.MinPrice != nil {
		query = query.Where("price >= ?", *req.MinPrice)
	}
	if req.MaxPrice != nil {
		query = query.Where("price <= ?", *req.MaxPrice)
	}

	var props []models.Property
	if err := query.Order("created_at DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	resp := make([]dto.PropertyResponse, len(props))
	for i := range props {
		resp[i] = *mapPropertyToResponse(&props[i])
	}
	return resp, nil
}

// mapPropertyToResponse normalizes a stored row into the view-model
// shape: collections are never nil and area/type are derived fields,
// recomputed on every read.
func mapPropertyToResponse(p *models.Property) *dto.PropertyResponse {
	resp := &dto.PropertyResponse{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Location:  p.Location,
		Status:    p.Status,
		Featured:  p.Featured,
		Images:    orEmpty(p.Images),
		Amenities: orEmpty(p.Amenities),
		Features:  orEmpty(p.Features),
		Area:      deriveArea(p.LotSize, p.SquareFeet),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Description != nil {
		resp.Description = *p.Description
	}
	if p.Bedrooms != nil {
		resp.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		resp.Bathrooms = *p.Bathrooms
	}
	if p.SquareFeet != nil {
		resp.SquareFeet = *p.SquareFeet
	}
	if p.LotSize != nil {
		resp.LotSize = *p.LotSize
	}
	if p.YearBuilt != nil {
		resp.YearBuilt = *p.YearBuilt
	}
	if p.PropertyType != nil {
		resp.PropertyType = *p.PropertyType
		resp.Type = *p.PropertyType
	}
	if len(p.Agent) > 0 {
		resp.Agent = json.RawMessage(p.Agent)
	}
	return resp
}

// deriveArea prefers the explicit lot-size string, then falls back to
// "{square_feet} sqft", then empty.
func deriveArea(lotSize *string, squareFeet *int) string {
	if lotSize != nil && *lotSize != "" {
		return *lotSize
	}
	if squareFeet != nil && *squareFeet > 0 {
		return fmt.Sprintf("%d sqft", *squareFeet)
	}
	return ""
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func digitsToInt(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, _ := strconv.Atoi(b.String())
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptyPtr(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func buildAgentBlob(raw json.RawMessage, tourURL, videoURL string, floorPlans []string) datatypes.JSON {
	if len(raw) > 0 {
		return datatypes.JSON(raw)
	}
	if tourURL == "" && videoURL == "" && len(floorPlans) == 0 {
		return nil
	}
	blob := map[string]interface{}{}
	if tourURL != "" {
		blob["virtual_tour_url"] = tourURL
	}
	if videoURL != "" {
		blob["video_url"] = videoURL
	}
	if len(floorPlans) > 0 {
		blob["floor_plan_images"] = floorPlans
	}
	b, err := json.Marshal(blob)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
