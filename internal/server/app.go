// Package server assembles the HTTP surface: the Fiber app, the static route
// table, and the request-level middleware.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/watchjournal/backend/config"
)

// New builds the Fiber app with CORS, panic recovery, request logging, the
// top-level error handler, and the full route table.
func New(cfg *config.Config, log *zap.Logger, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "watchjournal",
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))

	RegisterRoutes(app, cfg.APIPrefix, h)

	return app
}

// errorHandler is the outermost dispatch boundary: expected failures are
// answered where they are detected, so anything arriving here is either a
// Fiber-level error or an unexpected storage/runtime failure. The latter is
// logged in full and answered with a generic 500 body.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}
}
