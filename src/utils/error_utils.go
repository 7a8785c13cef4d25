// error_utils.go
package utils

import (
	"Backend-Procure/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// RetryMessage is the generic notification for failed reference fetches.
const RetryMessage = "Something went wrong. Please try again later."
