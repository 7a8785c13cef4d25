package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"Backend-Procure/src/models"
	"Backend-Procure/src/qrcode"
	"Backend-Procure/src/services/drafts"
	"Backend-Procure/src/services/requests"
	"Backend-Procure/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// quantityCheckDto carries the quantities a new request wants to draw from a
// source request, keyed by item name.
type quantityCheckDto struct {
	SourceRequestID string             `json:"sourceRequestId" validate:"required"`
	Items           map[string]float64 `json:"items" validate:"required"`
}

// CreateRequest godoc
// @Summary      Submit a request
// @Description  Validate, merge line items, resolve signers and persist a new request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body body models.RequestDto true "Request payload"
// @Success      201  {object}  models.Request
// @Failure      400  {object}  models.ErrorResponse
// @Router       /requests [post]
func CreateRequest(c *fiber.Ctx) error {
	var dto models.RequestDto
	if err := c.BodyParser(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	request, err := requestFromDto(&dto)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	requestorID, err := userIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid user context")
	}
	request.RequestorID = requestorID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := requests.CreateRequest(ctx, request)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	// the working draft is superseded by the submission
	if dto.DraftID != "" {
		if err := drafts.Delete(ctx, dto.DraftID); err != nil {
			log.Println("⚠️ Failed to drop draft", dto.DraftID, ":", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// EditRequest godoc
// @Summary      Edit a pending request
// @Description  Replace the sections of a request no signer has acted on yet
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID"
// @Param        body body models.RequestDto true "Edited sections"
// @Success      200  {object}  models.Request
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /requests/{id} [put]
func EditRequest(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var dto models.RequestDto
	if err := c.BodyParser(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updated, err := requests.EditRequest(ctx, id, dto.Sections)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, requests.ErrRequestNotEditable):
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		default:
			return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// GetRequests godoc
// @Summary      List the team's requests
// @Tags         requests
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        status query  string  false  "Status filter"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /requests [get]
func GetRequests(c *fiber.Ctx) error {
	teamID, err := teamIDFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid team context")
	}
	params := paginationFromQuery(c)
	status := models.RequestStatus(c.Query("status"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := requests.GetRequests(ctx, teamID, status, params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetRequestByID godoc
// @Summary      Get a request by ID
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200  {object}  models.Request
// @Failure      404  {object}  models.ErrorResponse
// @Router       /requests/{id} [get]
func GetRequestByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request, err := requests.GetRequestByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(request)
}

// CancelRequest godoc
// @Summary      Cancel a pending request
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  models.ErrorResponse
// @Router       /requests/{id}/cancel [post]
func CancelRequest(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := requests.CancelRequest(ctx, id); err != nil {
		if errors.Is(err, requests.ErrRequestNotPending) {
			return utils.HandleError(c, fiber.StatusConflict, err.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Request canceled successfully",
	})
}

// CheckRequestEditable godoc
// @Summary      Check whether a request can still be edited
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /requests/{id}/editable [get]
func CheckRequestEditable(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	editable, err := requests.CheckIfRequestIsEditable(ctx, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"editable": editable})
}

// CheckRequestPending godoc
// @Summary      Check whether a request is still pending
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /requests/{id}/pending [get]
func CheckRequestPending(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pending, err := requests.CheckIfRequestIsPending(ctx, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"pending": pending})
}

// GetRequestQR godoc
// @Summary      Get the tracking QR code of a request
// @Description  PNG QR code resolving to the request's tracking URL, for printed purchase order headers
// @Tags         requests
// @Produce      png
// @Param        id path string true "Request ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  models.ErrorResponse
// @Router       /requests/{id}/qrcode [get]
func GetRequestQR(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := requests.GetRequestByID(ctx, id); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}

	png, err := qrcode.GenerateRequestQR(id.Hex())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, utils.RetryMessage)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}

// CheckRequisitionQuantity godoc
// @Summary      Check quantities against a requisition
// @Description  Report line items whose requested quantity exceeds what the source requisition still has available
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body body quantityCheckDto true "Requested quantities"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /requests/check-requisition-quantity [post]
func CheckRequisitionQuantity(c *fiber.Ctx) error {
	return checkQuantity(c, requests.CheckRequisitionQuantity)
}

// CheckROItemQuantity godoc
// @Summary      Check quantities against a release order
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body body quantityCheckDto true "Requested quantities"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /requests/check-ro-quantity [post]
func CheckROItemQuantity(c *fiber.Ctx) error {
	return checkQuantity(c, requests.CheckROItemQuantity)
}

func checkQuantity(c *fiber.Ctx, check func(context.Context, primitive.ObjectID, map[string]float64) ([]models.QuantityCheck, error)) error {
	var dto quantityCheckDto
	if err := c.BodyParser(&dto); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	sourceID, err := primitive.ObjectIDFromHex(dto.SourceRequestID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid source request ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	violations, err := check(ctx, sourceID, dto.Items)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":         len(violations) == 0,
		"violations": violations,
	})
}

func requestFromDto(dto *models.RequestDto) (*models.Request, error) {
	formID, err := primitive.ObjectIDFromHex(dto.FormID)
	if err != nil {
		return nil, errors.New("invalid form ID")
	}

	request := &models.Request{
		FormID:   formID,
		Sections: dto.Sections,
	}
	if dto.ProjectID != "" {
		projectID, err := primitive.ObjectIDFromHex(dto.ProjectID)
		if err != nil {
			return nil, errors.New("invalid project ID")
		}
		request.ProjectID = projectID
	}
	if dto.SourceRequestID != "" {
		sourceID, err := primitive.ObjectIDFromHex(dto.SourceRequestID)
		if err != nil {
			return nil, errors.New("invalid source request ID")
		}
		request.SourceRequestID = sourceID
	}
	return request, nil
}
