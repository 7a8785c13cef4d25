package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func formRoutes(app *fiber.App) {
	forms := app.Group("/forms")
	forms.Use(middleware.AuthJWT)
	forms.Get("/", controllers.GetForms)
	forms.Post("/", controllers.CreateForm)
	forms.Get("/:id", controllers.GetFormByID)
	forms.Put("/:id", controllers.UpdateForm)
	forms.Delete("/:id", controllers.DeleteForm)
}
