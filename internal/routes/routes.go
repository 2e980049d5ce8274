package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/mansaluxe/realty-backend/internal/config"
	"github.com/mansaluxe/realty-backend/internal/handlers"
	"github.com/mansaluxe/realty-backend/internal/middleware"
	"github.com/mansaluxe/realty-backend/internal/models"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	publicHandler *handlers.PublicHandler,
	authHandler *handlers.AuthHandler,
	propertyHandler *handlers.PropertyHandler,
	testimonialHandler *handlers.TestimonialHandler,
	userHandler *handlers.UserHandler,
	settingsHandler *handlers.SettingsHandler,
	dashboardHandler *handlers.DashboardHandler,
	uploadHandler *handlers.UploadHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public website endpoints, no auth
	public := api.Group("/public")
	public.Get("/properties", publicHandler.Properties)
	public.Get("/properties/featured", publicHandler.FeaturedProperties)
	public.Get("/properties/search", publicHandler.SearchProperties)
	public.Get("/properties/:id", publicHandler.Property)
	public.Get("/testimonials", publicHandler.Testimonials)
	public.Get("/company", publicHandler.CompanyInfo)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Admin panel: JWT plus an administrative role
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))

	admin.Get("/dashboard/stats", dashboardHandler.Stats)
	admin.Get("/reports", middleware.PermissionRequired(models.PermissionReportsView), dashboardHandler.Reports)

	admin.Get("/properties", propertyHandler.List)
	admin.Get("/properties/:id", propertyHandler.Get)
	propertyWrite := middleware.PermissionRequired(models.PermissionPropertyManagement)
	admin.Post("/properties", propertyWrite, propertyHandler.Create)
	admin.Put("/properties/:id", propertyWrite, propertyHandler.Update)
	admin.Delete("/properties/:id", propertyWrite, propertyHandler.Delete)

	admin.Get("/testimonials", testimonialHandler.List)
	admin.Get("/testimonials/:id", testimonialHandler.Get)
	testimonialWrite := middleware.PermissionRequired(models.PermissionTestimonialManagement)
	admin.Post("/testimonials", testimonialWrite, testimonialHandler.Create)
	admin.Put("/testimonials/:id", testimonialWrite, testimonialHandler.Update)
	admin.Delete("/testimonials/:id", testimonialWrite, testimonialHandler.Delete)

	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)
	admin.Put("/users/:id", middleware.PermissionRequired(models.PermissionFullAccess), userHandler.Update)

	admin.Get("/settings", settingsHandler.Get)
	admin.Put("/settings", middleware.PermissionRequired(models.PermissionFullAccess), settingsHandler.Update)

	admin.Post("/uploads/:bucket", propertyWrite, uploadHandler.Upload)
}
