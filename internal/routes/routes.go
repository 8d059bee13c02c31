// Package routes wires the HTTP handlers onto the fiber app.
package routes

import (
	"time"

	"wasit/internal/handlers"
	"wasit/internal/middleware"
	"wasit/internal/models"
	"wasit/internal/transferapi"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Transfer *handlers.TransferHandler
	Admin    *handlers.AdminHandler
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	AuthMW   *middleware.AuthMiddleware
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// RateLimit bounds requests per client IP on the write-heavy public endpoints.
type RateLimit struct {
	Max        int
	Expiration time.Duration
}

var DefaultRateLimit = RateLimit{Max: 30, Expiration: time.Minute}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers, rl RateLimit) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Wasit API",
			"docs":    "/api",
		})
	})
	if h.Health != nil {
		app.Get("/health", h.Health.HealthCheck)
	}
	if h.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	transfer := api.Group("/transfer")
	transfer.Get("/methods", h.Transfer.ListMethods)
	transfer.Post("/quote", limit(rl), h.Transfer.Quote)
	transfer.Post("/confirm", limit(rl), h.Transfer.Confirm)
	transfer.Get("/orders", h.Transfer.ListOrders)

	auth := api.Group("/auth")
	auth.Post("/login", limit(RateLimit{Max: 5, Expiration: time.Minute}), h.Auth.LoginUser)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", h.AuthMW.Handler, h.Auth.LogoutUser)

	setupAdminRoutes(api, h)
}

func setupAdminRoutes(api fiber.Router, h Handlers) {
	admin := api.Group("/admin", h.AuthMW.Handler)

	methods := admin.Group("/methods")
	methods.Get("/", middleware.HasPermission(models.PermissionMethodRead), h.Admin.ListMethods)
	methods.Get("/:id", middleware.HasPermission(models.PermissionMethodRead), h.Admin.GetMethod)
	methods.Post("/", middleware.HasPermission(models.PermissionMethodWrite), h.Admin.CreateMethod)
	methods.Put("/:id", middleware.HasPermission(models.PermissionMethodWrite), h.Admin.UpdateMethod)
	methods.Post("/:id/enable", middleware.HasPermission(models.PermissionMethodWrite), h.Admin.ToggleMethod(true))
	methods.Post("/:id/disable", middleware.HasPermission(models.PermissionMethodWrite), h.Admin.ToggleMethod(false))
	methods.Delete("/:id", middleware.AdminAuthMiddleware, h.Admin.DeleteMethod)

	rules := admin.Group("/fee-rules")
	rules.Get("/", middleware.HasPermission(models.PermissionFeeRuleRead), h.Admin.ListFeeRules)
	rules.Get("/:id", middleware.HasPermission(models.PermissionFeeRuleRead), h.Admin.GetFeeRule)
	rules.Post("/", middleware.HasPermission(models.PermissionFeeRuleWrite), h.Admin.CreateFeeRule)
	rules.Put("/:id", middleware.HasPermission(models.PermissionFeeRuleWrite), h.Admin.UpdateFeeRule)
	rules.Delete("/:id", middleware.AdminAuthMiddleware, h.Admin.DeleteFeeRule)

	orders := admin.Group("/orders")
	orders.Get("/", middleware.HasPermission(models.PermissionOrderRead), h.Admin.ListOrders)
	orders.Get("/:id", middleware.HasPermission(models.PermissionOrderRead), h.Admin.GetOrder)
	orders.Patch("/:id", middleware.HasPermission(models.PermissionOrderWrite), h.Admin.UpdateOrder)
}

func limit(rl RateLimit) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        rl.Max,
		Expiration: rl.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(transferapi.ErrorBody{
				Message: "too many requests, please try again later",
				Code:    "RATE_LIMITED",
			})
		},
	})
}
