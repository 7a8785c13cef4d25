package routes

import (
	"Backend-Procure/src/controllers"
	"Backend-Procure/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func requestRoutes(app *fiber.App) {
	requests := app.Group("/requests")
	requests.Use(middleware.AuthJWT)
	requests.Get("/", controllers.GetRequests)
	requests.Post("/", controllers.CreateRequest)

	// quantity checks run before the :id routes so the fixed paths win
	requests.Post("/check-requisition-quantity", controllers.CheckRequisitionQuantity)
	requests.Post("/check-ro-quantity", controllers.CheckROItemQuantity)

	requests.Get("/:id", controllers.GetRequestByID)
	requests.Put("/:id", controllers.EditRequest)
	requests.Post("/:id/cancel", controllers.CancelRequest)
	requests.Get("/:id/qrcode", controllers.GetRequestQR)
	requests.Get("/:id/editable", controllers.CheckRequestEditable)
	requests.Get("/:id/pending", controllers.CheckRequestPending)
}
