package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// RequestShiftChange godoc
// @Summary      Ask to move one of your schedules
// @Description  The Manager responsible for the schedule's division is notified.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ShiftChangeCreateRequest  true  "Request"
// @Success      201   {object}  models.ShiftChangeRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse  "Not the schedule owner"
// @Router       /api/schedules/change-request [post]
func RequestShiftChange(svc *services.ShiftChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.ShiftChangeCreateRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		start, err := parseDate("new_start_date", body.NewStartDate)
		if err != nil {
			return err
		}
		end, err := parseDate("new_end_date", body.NewEndDate)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		req, err := svc.Create(ctx, actor, services.ShiftChangeInput{
			ScheduleID:   body.ScheduleID,
			Reason:       body.Reason,
			NewStartDate: start,
			NewEndDate:   end,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(req)
	}
}

// ListShiftChanges godoc
// @Summary      Shift change requests visible to the caller
// @Description  Managers see pending requests in scope, VP all pending, everyone else their own.
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.ShiftChangeRequest
// @Router       /api/schedules/change-requests [get]
func ListShiftChanges(svc *services.ShiftChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		list, err := svc.List(ctx, actor)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// ReviewShiftChange godoc
// @Summary      Approve or reject a shift change
// @Description  Approval moves the schedule to the requested times.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ShiftChangeReviewRequest  true  "Decision"
// @Success      200   {object}  models.ShiftChangeRequest
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Already reviewed"
// @Router       /api/schedules/change-requests/review [post]
func ReviewShiftChange(svc *services.ShiftChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.ShiftChangeReviewRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		req, err := svc.Review(ctx, actor, body.RequestID, m.ReviewAction(body.Action), body.Comment)
		if err != nil {
			return err
		}
		return c.JSON(req)
	}
}
