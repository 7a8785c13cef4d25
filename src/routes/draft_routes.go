package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func draftRoutes(app *fiber.App) {
	drafts := app.Group("/drafts")
	drafts.Use(middleware.AuthJWT)
	drafts.Get("/:id", controllers.GetDraft)
	drafts.Put("/:id", controllers.SaveDraft)
	drafts.Delete("/:id", controllers.DeleteDraft)
}
