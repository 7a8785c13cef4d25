package controllers

import (
	"context"
	"errors"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/formstate"
	"Backend-Procure/src/services/items"
	"Backend-Procure/src/services/projects"
	"Backend-Procure/src/services/signers"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// duplicateSectionDto carries the current section list together with the
// template to clone. PoolFields names the selector fields whose option pool
// must shrink to the options not yet taken by earlier clones.
type duplicateSectionDto struct {
	Sections          []models.Section `json:"sections" validate:"required,min=1"`
	TemplateSectionID string           `json:"templateSectionId" validate:"required"`
	PoolFields        []string         `json:"poolFields"`
}

// resolveCascadeDto is one driver-field change to run through the cascade
// rules. A null value means the driver was cleared.
type resolveCascadeDto struct {
	Sections     []models.Section `json:"sections" validate:"required,min=1"`
	SectionIndex int              `json:"sectionIndex"`
	Kind         models.FormKind  `json:"kind" validate:"required"`
	DriverField  string           `json:"driverField" validate:"required"`
	Value        *string          `json:"value"`
	FormID       string           `json:"formId"`
}

// DuplicateSection godoc
// @Summary      Duplicate a repeatable section
// @Description  Clone a template section into a new line item with a fresh group id and narrowed option pools
// @Tags         formstate
// @Accept       json
// @Produce      json
// @Param        body body duplicateSectionDto true "Sections and template"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /formstate/duplicate-section [post]
func DuplicateSection(c *fiber.Ctx) error {
	var dto duplicateSectionDto
	if err := c.BodyParser(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	templateID, err := primitive.ObjectIDFromHex(dto.TemplateSectionID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid template section ID")
	}

	pools, err := buildOptionPools(dto.Sections, templateID, dto.PoolFields)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	clone, index, err := formstate.DuplicateSection(dto.Sections, templateID, pools)
	if err != nil {
		if errors.Is(err, formstate.ErrNoAvailableOptions) {
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	store := formstate.NewSectionStore(dto.Sections)
	if err := store.InsertSection(index, clone); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	// every clone's pool reflects its siblings' selections, not just the new one
	sections := formstate.NarrowClonePools(store.Sections(), templateID, dto.PoolFields)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"sections":      sections,
		"insertedIndex": index,
		"section":       sections[index],
	})
}

// ResolveCascade godoc
// @Summary      Resolve a cascade after a driver-field change
// @Description  Apply the kind's cascade rule: fetch the selected record and rewrite dependent fields, or clear them when the driver was cleared
// @Tags         formstate
// @Accept       json
// @Produce      json
// @Param        body body resolveCascadeDto true "Driver change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      502  {object}  models.ErrorResponse
// @Router       /formstate/resolve-cascade [post]
func ResolveCascade(c *fiber.Ctx) error {
	var dto resolveCascadeDto
	if err := c.BodyParser(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := formstate.NewSectionStore(dto.Sections)
	resolver := formstate.NewResolver(items.NewTeamLookup(teamID))

	// a project driver change also swaps the request's signer list
	var resolvedSigners []models.Signer
	if dto.FormID != "" {
		formID, err := primitive.ObjectIDFromHex(dto.FormID)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form ID")
		}
		resolver.OnProjectChange = func(ctx context.Context, projectName string) error {
			project, err := projects.GetProjectByName(ctx, teamID, projectName)
			if err != nil {
				return err
			}
			resolvedSigners, err = signers.GetProjectSignerWithTeamMember(ctx, project.ID, formID)
			return err
		}
	}

	err = resolver.Resolve(ctx, store, dto.SectionIndex, dto.Kind, dto.DriverField, dto.Value)
	if err != nil {
		if errors.Is(err, formstate.ErrLookupFailed) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message":  err.Error(),
				"sections": store.Sections(),
			})
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	res := fiber.Map{"sections": store.Sections()}
	if resolvedSigners != nil {
		res["signers"] = resolvedSigners
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// buildOptionPools computes, per named selector field, the option subset not
// yet taken by existing clones of the template section.
func buildOptionPools(sections []models.Section, templateID primitive.ObjectID, poolFields []string) (map[string][]models.Option, error) {
	if len(poolFields) == 0 {
		return nil, nil
	}

	var template *models.Section
	for i := range sections {
		if sections[i].ID == templateID {
			template = &sections[i]
			break
		}
	}
	if template == nil {
		return nil, formstate.ErrSectionNotFound
	}

	pools := make(map[string][]models.Option, len(poolFields))
	for _, name := range poolFields {
		var full []models.Option
		found := false
		for _, f := range template.Fields {
			if f.Name == name {
				full = f.Options
				found = true
				break
			}
		}
		if !found {
			return nil, formstate.ErrFieldNotFound
		}
		taken := formstate.TakenValues(sections, templateID, name)
		pools[name] = formstate.RemainingOptions(full, taken)
	}
	return pools, nil
}
