package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"lojavirtual/internal/config"
	"lojavirtual/internal/domain"
	applog "lojavirtual/internal/log"
)

// NewApp builds the Fiber app with the global middlewares and all API routes.
func NewApp(cfg config.Config, deps *Deps) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20 // 1 MiB
	}
	app := fiber.New(fiber.Config{
		AppName:      "lojavirtual",
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(AccessLog())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return cfg.RateLimit <= 0 || c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return messages(c, fiber.StatusTooManyRequests, "Muitas requisições, tente novamente em instantes")
		},
	}))

	Register(app, deps)
	return app
}

// Register mounts the API under /api behind bearer authentication.
func Register(app *fiber.App, deps *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api", Authenticate(deps.Verifier))

	api.Post("/users", RequireScope(domain.ScopeUsersWrite), deps.UserHandler.Create)
	api.Get("/users", RequireScope(domain.ScopeUsersRead), deps.UserHandler.List)

	api.Post("/categories", RequireScope(domain.ScopeCategoriesWrite), deps.CategoryHandler.Create)
	api.Get("/categories", RequireScope(domain.ScopeCategoriesRead), deps.CategoryHandler.List)

	api.Post("/products", RequireScope(domain.ScopeProductsWrite), deps.ProductHandler.Create)
	api.Get("/products/:id", RequireScope(domain.ScopeProductsRead), deps.ProductHandler.Detail)
	api.Post("/products/:id/questions", RequireScope(domain.ScopeProductsWrite), deps.ReviewHandler.AskQuestion)
	api.Get("/products/:id/questions", RequireScope(domain.ScopeProductsRead), deps.ReviewHandler.Questions)
	api.Post("/opinions", RequireScope(domain.ScopeProductsWrite), deps.ReviewHandler.CreateOpinion)

	api.Post("/purchase", RequireScope(domain.ScopePurchaseWrite), deps.PurchaseHandler.Create)
	api.Post("/purchases/confirm-payment", RequireScope(domain.ScopePurchaseWrite), deps.PurchaseHandler.ConfirmPayment)
	api.Get("/purchases/:id", RequireScope(domain.ScopePurchaseWrite), deps.PurchaseHandler.Detail)

	app.Use(func(c *fiber.Ctx) error { return empty(c, fiber.StatusNotFound) })
}

// AccessLog emits one http.access entry per request once the response is known.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler set the final status before logging
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = empty(c, fiber.StatusInternalServerError)
			}
		}
		applog.Info(c, "http.access", map[string]any{
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}
}
