package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/services"
)

type DashboardHandler struct {
	stats *services.StatsService
}

func NewDashboardHandler(stats *services.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.stats.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute dashboard stats",
		})
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) Reports(c *fiber.Ctx) error {
	reports, err := h.stats.Reports()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute reports",
		})
	}
	return c.JSON(reports)
}
