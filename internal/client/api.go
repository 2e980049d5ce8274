package client

import (
	"context"

	"github.com/mansaluxe/realty-backend/internal/dto"
)

// Admin API calls used by the CLI. Each requires a signed-in session.

func (c *Client) Properties(ctx context.Context) ([]dto.PropertyResponse, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}
	var out []dto.PropertyResponse
	if _, err := c.get(ctx, "/api/admin/properties", &out, token); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Testimonials(ctx context.Context) ([]dto.TestimonialResponse, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}
	var out []dto.TestimonialResponse
	if _, err := c.get(ctx, "/api/admin/testimonials", &out, token); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}
	var out dto.DashboardStats
	if _, err := c.get(ctx, "/api/admin/dashboard/stats", &out, token); err != nil {
		return nil, err
	}
	return &out, nil
}
