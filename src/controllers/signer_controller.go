package controllers

import (
	"context"
	"strings"
	"sync"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/forms"
	"Backend-Procure/src/services/signers"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// One resolver per form, held across calls so the site-set memoization is
// effective: repeated lookups for an unchanged site set skip the database.
var (
	multiResolversMu sync.Mutex
	multiResolvers   = map[primitive.ObjectID]*signers.MultiProjectResolver{}
)

func multiProjectResolver(formID primitive.ObjectID) *signers.MultiProjectResolver {
	multiResolversMu.Lock()
	defer multiResolversMu.Unlock()
	r, ok := multiResolvers[formID]
	if !ok {
		r = signers.NewMultiProjectResolver(func(ctx context.Context, ids []primitive.ObjectID) ([]models.Signer, error) {
			return signers.GetMultipleProjectSignerWithTeamMember(ctx, ids, formID)
		})
		multiResolvers[formID] = r
	}
	return r
}

// GetProjectSigners godoc
// @Summary      Get the signer chain for a project and form
// @Description  Resolve the deduplicated union of per-site signers plus the form's default signers
// @Tags         signers
// @Produce      json
// @Param        projectIds query string true "Comma-separated project IDs"
// @Param        formId     query string true "Form ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /signers [get]
func GetProjectSigners(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Query("formId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
	}

	var projectIDs []primitive.ObjectID
	for _, raw := range strings.Split(c.Query("projectIds"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid project ID: "+raw)
		}
		projectIDs = append(projectIDs, id)
	}
	if len(projectIDs) == 0 {
		return utils.HandleError(c, fiber.StatusBadRequest, "At least one project ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := forms.GetFormByID(ctx, formID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}

	list, err := multiProjectResolver(formID).Resolve(ctx, form.Signers, projectIDs)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to resolve signers")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"signers": list})
}

// GetSpecialApprovers godoc
// @Summary      List the team's special-approver rules
// @Tags         signers
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /signers/special-approvers [get]
func GetSpecialApprovers(c *fiber.Ctx) error {
	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rules, err := signers.GetSpecialApprovers(ctx, teamID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch special approvers")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"specialApprovers": rules})
}
