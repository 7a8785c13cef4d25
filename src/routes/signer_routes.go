package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func signerRoutes(app *fiber.App) {
	signers := app.Group("/signers")
	signers.Use(middleware.AuthJWT)
	signers.Get("/", controllers.GetProjectSigners)
	signers.Get("/special-approvers", controllers.GetSpecialApprovers)
}
