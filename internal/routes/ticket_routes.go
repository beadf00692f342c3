package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupTickets(r fiber.Router, svc *services.TicketService) {
	tickets := r.Group("/tickets")
	tickets.Get("/list/all", controllers.ListTicketOptions(svc))

	tickets.Post("/", controllers.CreateTicket(svc))
	tickets.Get("/", controllers.ListTickets(svc))
	tickets.Get("/:id", controllers.GetTicket(svc))
	tickets.Patch("/:id", controllers.PatchTicket(svc))
	tickets.Put("/:id", controllers.EditTicket(svc))
	tickets.Post("/:id/close", controllers.CloseTicket(svc))
	tickets.Post("/:id/comments", controllers.CommentOnTicket(svc))
	tickets.Post("/:id/link-report/:report_id", controllers.LinkReport(svc))
}
