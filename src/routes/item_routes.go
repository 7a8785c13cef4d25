package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func itemRoutes(app *fiber.App) {
	items := app.Group("/items")
	items.Use(middleware.AuthJWT)
	items.Get("/", controllers.GetItems)
	items.Post("/", controllers.CreateItem)
	items.Get("/:id", controllers.GetItemByID)
	items.Put("/:id", controllers.UpdateItem)
	items.Delete("/:id", controllers.DeleteItem)

	suppliers := app.Group("/suppliers")
	suppliers.Use(middleware.AuthJWT)
	suppliers.Get("/", controllers.GetSuppliers)
}
