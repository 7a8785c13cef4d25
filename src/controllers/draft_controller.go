package controllers

import (
	"context"
	"errors"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/drafts"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
)

// SaveDraft godoc
// @Summary      Save a request draft
// @Description  Cache an in-progress request body under its request id
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID"
// @Param        body body models.RequestDto true "Draft payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /drafts/{id} [put]
func SaveDraft(c *fiber.Ctx) error {
	id := c.Params("id")

	var dto models.RequestDto
	if err := c.BodyParser(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := drafts.Save(ctx, id, &dto); err != nil {
		if errors.Is(err, drafts.ErrCacheUnavailable) {
			return utils.HandleError(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Draft saved successfully",
	})
}

// GetDraft godoc
// @Summary      Load a request draft
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200  {object}  models.RequestDto
// @Failure      404  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /drafts/{id} [get]
func GetDraft(c *fiber.Ctx) error {
	id := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var dto models.RequestDto
	if err := drafts.Load(ctx, id, &dto); err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, drafts.ErrCacheUnavailable):
			return utils.HandleError(c, fiber.StatusServiceUnavailable, err.Error())
		default:
			return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
		}
	}

	return c.Status(fiber.StatusOK).JSON(dto)
}

// DeleteDraft godoc
// @Summary      Drop a request draft
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /drafts/{id} [delete]
func DeleteDraft(c *fiber.Ctx) error {
	id := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := drafts.Delete(ctx, id); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Draft deleted successfully",
	})
}
