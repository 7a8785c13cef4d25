package controllers

import (
	"context"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/equipment"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateEquipment godoc
// @Summary      Create an equipment category
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        body body models.Equipment true "Equipment"
// @Success      201  {object}  models.Equipment
// @Failure      400  {object}  models.ErrorResponse
// @Router       /equipment [post]
func CreateEquipment(c *fiber.Ctx) error {
	var eq models.Equipment
	if err := c.BodyParser(&eq); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	eq.TeamID = teamID

	if err := utils.ValidateStruct(&eq); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := equipment.CreateEquipment(ctx, &eq)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetEquipments godoc
// @Summary      List equipment categories
// @Tags         equipment
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        search query  string  false  "Search term"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /equipment [get]
func GetEquipments(c *fiber.Ctx) error {
	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	params := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := equipment.GetEquipments(ctx, teamID, params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch equipment")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetEquipmentByID godoc
// @Summary      Get an equipment category by ID
// @Tags         equipment
// @Produce      json
// @Param        id path string true "Equipment ID"
// @Success      200  {object}  models.Equipment
// @Failure      404  {object}  models.ErrorResponse
// @Router       /equipment/{id} [get]
func GetEquipmentByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid equipment ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eq, err := equipment.GetEquipmentByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(eq)
}

// UpdateEquipment godoc
// @Summary      Update an equipment category
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        id path string true "Equipment ID"
// @Param        body body models.Equipment true "Equipment"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /equipment/{id} [put]
func UpdateEquipment(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid equipment ID")
	}

	var eq models.Equipment
	if err := c.BodyParser(&eq); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := equipment.UpdateEquipment(ctx, id, &eq); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Equipment updated successfully",
	})
}

// DeleteEquipment godoc
// @Summary      Delete an equipment category
// @Tags         equipment
// @Produce      json
// @Param        id path string true "Equipment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /equipment/{id} [delete]
func DeleteEquipment(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid equipment ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := equipment.DeleteEquipment(ctx, id); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Equipment deleted successfully",
	})
}
