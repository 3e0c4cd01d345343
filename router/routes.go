package router

import (
	"github.com/gofiber/fiber/v2"
	handler "github.com/mizukif/photo-diary/handlers"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	app.Get("/", h.Health)
	app.Post("/analyze-and-save", h.AnalyzeAndSave)
	app.Get("/photos", h.ListPhotos)
	app.Get("/user-stats", h.UserStats)

	api := app.Group("/api")
	api.Get("/photos", h.ListPhotos)

	// Deprecated: auth is expected to move to a third-party provider.
	api.Post("/login", h.Login)
}
