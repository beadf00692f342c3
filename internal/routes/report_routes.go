package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupReports(r fiber.Router, svc *services.ReportService) {
	reports := r.Group("/reports")
	reports.Get("/statistics/user-counts", controllers.ReportStatistics(svc))
	reports.Post("/approve", controllers.ApproveReport(svc))

	reports.Post("/", controllers.CreateReport(svc))
	reports.Get("/", controllers.ListReports(svc))
	reports.Get("/:id", controllers.GetReport(svc))
	reports.Put("/:id", controllers.EditReport(svc))
	reports.Delete("/:id", controllers.DeleteReport(svc))
	reports.Post("/:id/comments", controllers.CommentOnReport(svc))
}
