package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func formstateRoutes(app *fiber.App) {
	formstate := app.Group("/formstate")
	formstate.Use(middleware.AuthJWT)
	formstate.Post("/duplicate-section", controllers.DuplicateSection)
	formstate.Post("/resolve-cascade", controllers.ResolveCascade)
}
