package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/login", controllers.Login)

	app.Get("/processors", middleware.AuthJWT, controllers.GetProcessors)
}
