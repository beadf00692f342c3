package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupActivities(r fiber.Router, svc *services.ActivityService) {
	activities := r.Group("/activities")
	activities.Get("/today", controllers.TodaySchedules(svc))
	activities.Post("/progress-update", controllers.AddProgressUpdate(svc))
	activities.Get("/schedule/:id", controllers.ScheduleActivity(svc))
	activities.Post("/", controllers.RecordActivity(svc))
	activities.Get("/", controllers.ListActivities(svc))
}
