package controllers

import (
	"strconv"

	"Backend-Procure/src/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// paginationFromQuery reads paging query parameters over the defaults.
func paginationFromQuery(c *fiber.Ctx) models.PaginationParams {
	params := models.DefaultPagination()

	params.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(params.Page)))
	params.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(params.Limit)))
	params.Search = c.Query("search", params.Search)
	params.SortBy = c.Query("sortBy", params.SortBy)
	params.Order = c.Query("order", params.Order)

	return params
}

// teamIDFromLocals reads the authenticated team context set by the JWT
// middleware.
func teamIDFromLocals(c *fiber.Ctx) (primitive.ObjectID, error) {
	teamID, _ := c.Locals("teamId").(string)
	return primitive.ObjectIDFromHex(teamID)
}

// userIDFromLocals reads the authenticated user id.
func userIDFromLocals(c *fiber.Ctx) (primitive.ObjectID, error) {
	userID, _ := c.Locals("userId").(string)
	return primitive.ObjectIDFromHex(userID)
}
