package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// RecordActivity godoc
// @Summary      Record an action on your schedule
// @Description  cancel requires a reason; hold notifies the division Manager.
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ActivityRequest  true  "Action"
// @Success      201   {object}  models.Activity
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/activities [post]
func RecordActivity(svc *services.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.ActivityRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		a, err := svc.Record(ctx, actor, services.ActivityInput{
			ScheduleID: body.ScheduleID,
			Action:     m.ActivityAction(body.Action),
			Notes:      body.Notes,
			Reason:     body.Reason,
			Latitude:   body.Latitude,
			Longitude:  body.Longitude,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(a)
	}
}

// ListActivities godoc
// @Summary   Activities visible to the caller
// @Tags      activities
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  models.Activity
// @Router    /api/activities [get]
func ListActivities(svc *services.ActivityService) fiber.Handler {
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

// AddProgressUpdate godoc
// @Summary   Add a progress note to your activity
// @Tags      activities
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     activity_id  formData  string  true   "Activity ID"
// @Param     update_text  formData  string  true   "Progress text"
// @Param     latitude     formData  number  false  "Latitude"
// @Param     longitude    formData  number  false  "Longitude"
// @Param     file         formData  file    false  "Photo"
// @Success   201          {object}  models.ProgressUpdate
// @Failure   400          {object}  dto.ErrorResponse
// @Failure   403          {object}  dto.ErrorResponse
// @Router    /api/activities/progress-update [post]
func AddProgressUpdate(svc *services.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		lat, err := formFloat(c, "latitude")
		if err != nil {
			return err
		}
		lng, err := formFloat(c, "longitude")
		if err != nil {
			return err
		}
		file, closeFile, err := formFile(c, "file", false)
		if err != nil {
			return err
		}
		defer closeFile()
		ctx, cancel := uploadCtx(c)
		defer cancel()

		u, err := svc.AddProgress(ctx, actor, services.ProgressInput{
			ActivityID: c.FormValue("activity_id"),
			Text:       c.FormValue("update_text"),
			Latitude:   lat,
			Longitude:  lng,
		}, file)
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(u)
	}
}

// ScheduleActivity godoc
// @Summary   Activity status and progress of one schedule
// @Tags      activities
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Schedule ID"
// @Success   200  {object}  services.ScheduleActivity
// @Router    /api/activities/schedule/{id} [get]
func ScheduleActivity(svc *services.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		view, err := svc.ScheduleView(ctx, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(view)
	}
}

// TodaySchedules godoc
// @Summary   Today's schedules with their activity status
// @Tags      activities
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  services.TodaySchedule
// @Router    /api/activities/today [get]
func TodaySchedules(svc *services.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		list, err := svc.Today(ctx, actor)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}
