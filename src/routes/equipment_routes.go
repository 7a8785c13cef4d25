package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func equipmentRoutes(app *fiber.App) {
	equipment := app.Group("/equipment")
	equipment.Use(middleware.AuthJWT)
	equipment.Get("/", controllers.GetEquipments)
	equipment.Post("/", controllers.CreateEquipment)
	equipment.Get("/:id", controllers.GetEquipmentByID)
	equipment.Put("/:id", controllers.UpdateEquipment)
	equipment.Delete("/:id", controllers.DeleteEquipment)
}
