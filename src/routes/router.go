package routes

import (
	"github.com/gofiber/fiber/v2"
)

// InitRoutes registers every module's routes on the app.
func InitRoutes(app *fiber.App) {
	authRoutes(app)
	formRoutes(app)
	requestRoutes(app)
	formstateRoutes(app)
	itemRoutes(app)
	projectRoutes(app)
	equipmentRoutes(app)
	draftRoutes(app)
	signerRoutes(app)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
