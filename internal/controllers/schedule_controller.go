package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// CreateSchedule godoc
// @Summary      Assign a schedule
// @Description  The schedule takes the division of the assigned user. Monitoring accounts cannot manage schedules.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ScheduleRequest  true  "Schedule"
// @Success      201   {object}  models.Schedule
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/schedules [post]
func CreateSchedule(svc *services.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.ScheduleRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		start, err := parseDate("start_date", body.StartDate)
		if err != nil {
			return err
		}
		end, err := parseOptionalDate("end_date", body.EndDate)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		sch, err := svc.Create(ctx, actor, services.ScheduleInput{
			UserID:      body.UserID,
			Title:       body.Title,
			Description: body.Description,
			StartDate:   start,
			EndDate:     end,
			CategoryID:  body.CategoryID,
			SiteID:      body.SiteID,
			TicketID:    body.TicketID,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(sch)
	}
}

// BulkUploadSchedules godoc
// @Summary      Create schedules from a sheet
// @Description  Columns user_email, title, description, start_date, end_date. Rows that fail are reported and skipped.
// @Tags         schedules
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  ".csv or .xlsx"
// @Success      200   {object}  services.BulkResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schedules/bulk-upload [post]
func BulkUploadSchedules(svc *services.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		file, closeFile, err := formFile(c, "file", true)
		if err != nil {
			return err
		}
		defer closeFile()
		ctx, cancel := uploadCtx(c)
		defer cancel()

		res, err := svc.BulkUpload(ctx, actor, file.Name, file.Body)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// ListSchedules godoc
// @Summary   List schedules
// @Tags      schedules
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  models.Schedule
// @Router    /api/schedules [get]
func ListSchedules(svc *services.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		list, err := svc.List(ctx)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// UpdateSchedule godoc
// @Summary   Edit a schedule
// @Tags      schedules
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                     true  "Schedule ID"
// @Param     body  body      dto.ScheduleUpdateRequest  true  "Changes"
// @Success   200   {object}  models.Schedule
// @Failure   403   {object}  dto.ErrorResponse
// @Router    /api/schedules/{id} [put]
func UpdateSchedule(svc *services.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.ScheduleUpdateRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		start, err := parseOptionalDate("start_date", body.StartDate)
		if err != nil {
			return err
		}
		end, err := parseOptionalDate("end_date", body.EndDate)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		sch, err := svc.Update(ctx, actor, c.Params("id"), services.ScheduleUpdate{
			UserID:      body.UserID,
			Title:       body.Title,
			Description: body.Description,
			StartDate:   start,
			EndDate:     end,
			SiteID:      body.SiteID,
		})
		if err != nil {
			return err
		}
		return c.JSON(sch)
	}
}

// DeleteSchedule godoc
// @Summary   Delete a schedule
// @Tags      schedules
// @Security  BearerAuth
// @Param     id   path      string  true  "Schedule ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /api/schedules/{id} [delete]
func DeleteSchedule(svc *services.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.Delete(ctx, actor, c.Params("id")); err != nil {
			return err
		}
		return c.JSON(dto.MessageResponse{Message: "Schedule deleted successfully"})
	}
}
