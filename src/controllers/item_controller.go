package controllers

import (
	"context"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/items"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateItem godoc
// @Summary      Create a catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body body models.Item true "Item"
// @Success      201  {object}  models.Item
// @Failure      400  {object}  models.ErrorResponse
// @Router       /items [post]
func CreateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	item.TeamID = teamID

	if err := utils.ValidateStruct(&item); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := items.CreateItem(ctx, &item)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetItems godoc
// @Summary      List catalog items
// @Tags         items
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        search query  string  false  "Search term"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /items [get]
func GetItems(c *fiber.Ctx) error {
	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	params := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := items.GetItems(ctx, teamID, params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch items")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetItemByID godoc
// @Summary      Get a catalog item by ID
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200  {object}  models.Item
// @Failure      404  {object}  models.ErrorResponse
// @Router       /items/{id} [get]
func GetItemByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	item, err := items.GetItemByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

// UpdateItem godoc
// @Summary      Update a catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        body body models.Item true "Item"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /items/{id} [put]
func UpdateItem(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := items.UpdateItem(ctx, id, &item); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Item updated successfully",
	})
}

// DeleteItem godoc
// @Summary      Delete a catalog item
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /items/{id} [delete]
func DeleteItem(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := items.DeleteItem(ctx, id); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Item deleted successfully",
	})
}

// GetSuppliers godoc
// @Summary      List suppliers
// @Tags         items
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        search query  string  false  "Search term"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /suppliers [get]
func GetSuppliers(c *fiber.Ctx) error {
	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	params := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := items.GetSuppliers(ctx, teamID, params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch suppliers")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}
