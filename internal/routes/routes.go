package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/phoneindex/phoneindex-backend/internal/config"
	"github.com/phoneindex/phoneindex-backend/internal/handlers"
	"github.com/phoneindex/phoneindex-backend/internal/middleware"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store storage.Storage,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	deviceHandler *handlers.DeviceHandler,
	caseHandler *handlers.CaseHandler,
	foundHandler *handlers.FoundHandler,
	verifyHandler *handlers.VerifyHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Health)

	// Public registry checks. Verification never reveals owner identity.
	api.Post("/verify", verifyHandler.Verify)

	// Finders submit reports without an account.
	api.Post("/found-reports", foundHandler.Submit)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so the public routes above are not affected
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Devices — owner endpoints (protected)
	devices := api.Group("/devices", middleware.JWTProtected(cfg))
	devices.Post("/", deviceHandler.Register)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:id", deviceHandler.Get)
	devices.Delete("/:id", deviceHandler.Delete)
	devices.Post("/:id/theft-report", caseHandler.ReportStolen)

	// Theft cases — owner endpoints (protected)
	cases := api.Group("/cases", middleware.JWTProtected(cfg))
	cases.Get("/", caseHandler.ListMine)
	cases.Get("/:caseID", caseHandler.Get)
	cases.Get("/:caseID/found-reports", foundHandler.ListForCase)
	cases.Post("/:caseID/resolve", caseHandler.Resolve)

	// Staff panel (protected + staff required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.StaffRequired(store, cfg))
	admin.Get("/cases", caseHandler.ListCases)
	admin.Get("/found-reports", foundHandler.List)
	admin.Put("/found-reports/:id", foundHandler.MarkProcessed)
}
