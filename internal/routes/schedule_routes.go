package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupSchedules(r fiber.Router, svc *services.ScheduleService, shifts *services.ShiftChangeService) {
	schedules := r.Group("/schedules")

	// static paths before /:id
	schedules.Post("/bulk-upload", controllers.BulkUploadSchedules(svc))
	schedules.Post("/change-request", controllers.RequestShiftChange(shifts))
	schedules.Get("/change-requests", controllers.ListShiftChanges(shifts))
	schedules.Post("/change-requests/review", controllers.ReviewShiftChange(shifts))

	schedules.Post("/", controllers.CreateSchedule(svc))
	schedules.Get("/", controllers.ListSchedules(svc))
	schedules.Put("/:id", controllers.UpdateSchedule(svc))
	schedules.Delete("/:id", controllers.DeleteSchedule(svc))
}
