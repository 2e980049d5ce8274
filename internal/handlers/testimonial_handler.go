package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/services"
)

type TestimonialHandler struct {
	testimonials *services.TestimonialService
}

func NewTestimonialHandler(testimonials *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

func (h *TestimonialHandler) List(c *fiber.Ctx) error {
	items, err := h.testimonials.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch testimonials",
		})
	}
	return c.JSON(items)
}

func (h *TestimonialHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid testimonial ID",
		})
	}

	item, err := h.testimonials.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTestimonialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch testimonial",
		})
	}
	return c.JSON(item)
}

func (h *TestimonialHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTestimonialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	item, err := h.testimonials.Create(&req)
	if err != nil {
		if isTestimonialValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create testimonial",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *TestimonialHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid testimonial ID",
		})
	}

	var req dto.UpdateTestimonialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	item, err := h.testimonials.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrTestimonialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if isTestimonialValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update testimonial",
		})
	}
	return c.JSON(item)
}

func (h *TestimonialHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid testimonial ID",
		})
	}

	if err := h.testimonials.Delete(id); err != nil {
		if errors.Is(err, services.ErrTestimonialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete testimonial",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Testimonial deleted successfully"})
}

func isTestimonialValidationErr(err error) bool {
	return errors.Is(err, services.ErrNameRequired) ||
		errors.Is(err, services.ErrQuoteRequired) ||
		errors.Is(err, services.ErrInvalidRating)
}
