package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/services"
)

// PublicHandler serves the unauthenticated website endpoints: published
// listings, testimonials and company info.
type PublicHandler struct {
	properties   *services.PropertyService
	testimonials *services.TestimonialService
	settings     *services.SettingsService
}

func NewPublicHandler(properties *services.PropertyService, testimonials *services.TestimonialService, settings *services.SettingsService) *PublicHandler {
	return &PublicHandler{
		properties:   properties,
		testimonials: testimonials,
		settings:     settings,
	}
}

func (h *PublicHandler) Properties(c *fiber.Ctx) error {
	properties, err := h.properties.Published()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch properties",
		})
	}
	return c.JSON(properties)
}

func (h *PublicHandler) FeaturedProperties(c *fiber.Ctx) error {
	properties, err := h.properties.Featured()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch featured properties",
		})
	}
	return c.JSON(properties)
}

func (h *PublicHandler) Property(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid property ID",
		})
	}

	property, err := h.properties.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch property",
		})
	}

	// Sold listings stay hidden even when linked directly.
	if property.Status == "sold" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Property not found",
		})
	}
	return c.JSON(property)
}

func (h *PublicHandler) SearchProperties(c *fiber.Ctx) error {
	var req dto.PropertySearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid search parameters",
		})
	}

	properties, err := h.properties.Search(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search properties",
		})
	}
	return c.JSON(properties)
}

func (h *PublicHandler) Testimonials(c *fiber.Ctx) error {
	testimonials, err := h.testimonials.Published()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch testimonials",
		})
	}
	return c.JSON(testimonials)
}

func (h *PublicHandler) CompanyInfo(c *fiber.Ctx) error {
	settings, err := h.settings.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch company info",
		})
	}
	return c.JSON(dto.CompanyInfo{
		CompanyName:     settings.CompanyName,
		CompanySubtitle: settings.CompanySubtitle,
		PrimaryColor:    settings.PrimaryColor,
		SecondaryColor:  settings.SecondaryColor,
		Currency:        settings.Currency,
	})
}
