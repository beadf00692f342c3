package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupNotifications(r fiber.Router, svc *services.NotificationService) {
	noti := r.Group("/notifications")
	noti.Get("/", controllers.ListNotifications(svc))
	noti.Get("/unread-count", controllers.UnreadCount(svc))
	noti.Post("/:id/read", controllers.MarkNotificationRead(svc))
}

func SetupDashboard(r fiber.Router, svc *services.DashboardService) {
	r.Get("/dashboard", controllers.Dashboard(svc))
}
