package controllers

import (
	"context"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/auth"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
)

// Login godoc
// @Summary      Log in with email and password
// @Description  Verifies credentials and returns a JWT with team context
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.LoginResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetProcessors godoc
// @Summary      List the team's request processors
// @Tags         auth
// @Produce      json
// @Param        page   query  int  false  "Page number" default(1)
// @Param        limit  query  int  false  "Number of items per page" default(10)
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /processors [get]
func GetProcessors(c *fiber.Ctx) error {
	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	params := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := auth.GetProcessors(ctx, teamID, params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch processors")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}
