package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrNameRequired        = errors.New("name is required")
	ErrQuoteRequired       = errors.New("quote is required")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

const defaultRating = 5

type TestimonialService struct {
	db *gorm.DB
}

func NewTestimonialService(db *gorm.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

// List returns all testimonials in operator-assigned display order.
func (s *TestimonialService) List() ([]dto.TestimonialResponse, error) {
	var items []models.Testimonial
	if err := s.db.Order("display_order ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	resp := make([]dto.TestimonialResponse, len(items))
	for i := range items {
		resp[i] = *mapTestimonialToResponse(&items[i])
	}
	return resp, nil
}

// Published returns only published testimonials, for the public site.
func (s *TestimonialService) Published() ([]dto.TestimonialResponse, error) {
	var items []models.Testimonial
	if err := s.db.Where("published = ?", true).
		Order("display_order ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	resp := make([]dto.TestimonialResponse, len(items))
	for i := range items {
		resp[i] = *mapTestimonialToResponse(&items[i])
	}
	return resp, nil
}

func (s *TestimonialService) Get(id uuid.UUID) (*dto.TestimonialResponse, error) {
	var item models.Testimonial
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("failed to fetch testimonial: %w", err)
	}
	return mapTestimonialToResponse(&item), nil
}

func (s *TestimonialService) Create(req *dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Quote) == "" {
		return nil, ErrQuoteRequired
	}

	rating := defaultRating
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		rating = *req.Rating
	}
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	item := models.Testimonial{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Quote:        strings.TrimSpace(req.Quote),
		Rating:       rating,
		PropertyID:   req.PropertyID,
		Published:    published,
		DisplayOrder: req.DisplayOrder,
	}
	if req.Role != "" {
		item.Role = &req.Role
	}
	if req.Company != "" {
		item.Company = &req.Company
	}
	if req.Photo != "" {
		item.Photo = &req.Photo
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return mapTestimonialToResponse(&item), nil
}

func (s *TestimonialService) Update(id uuid.UUID, req *dto.UpdateTestimonialRequest) (*dto.TestimonialResponse, error) {
	updates := map[string]interface{}{}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = trimmed
	}
	if req.Quote != nil {
		trimmed := strings.TrimSpace(*req.Quote)
		if trimmed == "" {
			return nil, ErrQuoteRequired
		}
		updates["quote"] = trimmed
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *req.Rating
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}

	if len(updates) == 0 {
		return s.Get(id)
	}

	result := s.db.Model(&models.Testimonial{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTestimonialNotFound
	}
	return s.Get(id)
}

// Delete removes a testimonial. Remaining display orders are left
// untouched; gaps are acceptable.
func (s *TestimonialService) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.Testimonial{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete testimonial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

func mapTestimonialToResponse(t *models.Testimonial) *dto.TestimonialResponse {
	resp := &dto.TestimonialResponse{
		ID:           t.ID,
		Name:         t.Name,
		Quote:        t.Quote,
		Rating:       t.Rating,
		PropertyID:   t.PropertyID,
		Published:    t.Published,
		DisplayOrder: t.DisplayOrder,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Rating == 0 {
		resp.Rating = defaultRating
	}
	if t.Role != nil {
		resp.Role = *t.Role
	}
	if t.Company != nil {
		resp.Company = *t.Company
	}
	if t.Photo != nil {
		resp.Photo = *t.Photo
	}
	return resp
}
