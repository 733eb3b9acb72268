package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolhub_backend/internals/features/school/schedules/dto"
	"schoolhub_backend/internals/features/school/schedules/service"
	helper "schoolhub_backend/internals/helpers"
)

// ChangeRequestAdminController is the admin review surface over the
// change-request workflow.
type ChangeRequestAdminController struct {
	Requests *service.ChangeRequestService
}

func NewChangeRequestAdminController(requests *service.ChangeRequestService) *ChangeRequestAdminController {
	return &ChangeRequestAdminController{Requests: requests}
}

// GET /api/a/schedule-change-requests, pending only.
func (ctrl *ChangeRequestAdminController) ListPending(c *fiber.Ctx) error {
	reqs, err := ctrl.Requests.ListPending(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] list pending requests: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}
	return helper.JsonOK(c, "", fiber.Map{
		"requests": dto.ToChangeRequestResponseList(reqs),
	})
}

// POST /api/a/schedule-change/:requestId/approve
func (ctrl *ChangeRequestAdminController) Approve(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	result, err := ctrl.Requests.Approve(c.UserContext(), requestID, adminID)
	if err != nil {
		switch {
		// already-processed reads as 404, same as the missing case
		case errors.Is(err, service.ErrRequestNotFound),
			errors.Is(err, service.ErrAlreadyProcessed):
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found or already processed")
		default:
			log.Printf("[ERROR] approve request %s: %v", requestID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to approve request")
		}
	}

	if result.UpdatedSlot != nil {
		return helper.JsonOK(c, "Request approved", fiber.Map{
			"request":      dto.ToChangeRequestResponse(result.Request),
			"updated_slot": dto.ToTeacherSlotResponse(result.UpdatedSlot),
		})
	}
	return helper.JsonOK(c, "Request approved", fiber.Map{
		"request": dto.ToChangeRequestResponse(result.Request),
	})
}

// POST /api/a/schedule-change/:requestId/decline
func (ctrl *ChangeRequestAdminController) Decline(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.DeclineRequest
	_ = c.BodyParser(&body) // body is optional

	if err := ctrl.Requests.Decline(c.UserContext(), requestID, adminID, body.DeclineReason); err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound),
			errors.Is(err, service.ErrAlreadyProcessed):
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found or already processed")
		default:
			log.Printf("[ERROR] decline request %s: %v", requestID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decline request")
		}
	}
	return helper.JsonOK(c, "Request declined", fiber.Map{"request_id": requestID})
}
