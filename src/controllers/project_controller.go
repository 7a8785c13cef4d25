package controllers

import (
	"context"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/projects"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// assignSignersDto maps one form to the signer chain it uses on this project.
type assignSignersDto struct {
	FormID  string          `json:"formId" validate:"required"`
	Signers []models.Signer `json:"signers" validate:"required,min=1"`
}

// CreateProject godoc
// @Summary      Create a project site
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body body models.Project true "Project"
// @Success      201  {object}  models.Project
// @Failure      400  {object}  models.ErrorResponse
// @Router       /projects [post]
func CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	project.TeamID = teamID

	if err := utils.ValidateStruct(&project); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := projects.CreateProject(ctx, &project)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetProjects godoc
// @Summary      List project sites
// @Tags         projects
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        search query  string  false  "Search term"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /projects [get]
func GetProjects(c *fiber.Ctx) error {
	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	params := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := projects.GetProjects(ctx, teamID, params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetProjectByID godoc
// @Summary      Get a project by ID
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200  {object}  models.Project
// @Failure      404  {object}  models.ErrorResponse
// @Router       /projects/{id} [get]
func GetProjectByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	project, err := projects.GetProjectByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

// UpdateProject godoc
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        body body models.Project true "Project"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /projects/{id} [put]
func UpdateProject(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := projects.UpdateProject(ctx, id, &project); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Project updated successfully",
	})
}

// DeleteProject godoc
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /projects/{id} [delete]
func DeleteProject(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := projects.DeleteProject(ctx, id); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}

// AssignSigners godoc
// @Summary      Assign a project's signer chain for a form
// @Description  Replace the signer assignment of one project/form pair
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        body body assignSignersDto true "Form and signers"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /projects/{id}/signers [put]
func AssignSigners(c *fiber.Ctx) error {
	projectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var dto assignSignersDto
	if err := c.BodyParser(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	formID, err := primitive.ObjectIDFromHex(dto.FormID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := projects.AssignSigners(ctx, projectID, formID, dto.Signers); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Signers assigned successfully",
	})
}
