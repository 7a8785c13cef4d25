package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func projectRoutes(app *fiber.App) {
	projects := app.Group("/projects")
	projects.Use(middleware.AuthJWT)
	projects.Get("/", controllers.GetProjects)
	projects.Post("/", controllers.CreateProject)
	projects.Get("/:id", controllers.GetProjectByID)
	projects.Put("/:id", controllers.UpdateProject)
	projects.Delete("/:id", controllers.DeleteProject)
	projects.Put("/:id/signers", controllers.AssignSigners)
}
