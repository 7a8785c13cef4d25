package middleware

import (
	"strings"

	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
)

func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
	}

	// A token without team context cannot reach team-scoped data; reject it
	// here instead of silently short-circuiting in the handlers.
	if claims.TeamID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No team membership in token"})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("teamId", claims.TeamID)
	c.Locals("role", claims.Role)

	return c.Next()
}
