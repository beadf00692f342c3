package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupAccounts(r fiber.Router, svc *services.AccountService) {
	accounts := r.Group("/accounts")
	accounts.Get("/pending", controllers.ListPendingAccounts(svc))
	accounts.Post("/review", controllers.ReviewAccount(svc))

	users := r.Group("/users")
	users.Get("/", controllers.ListUsers(svc))
	users.Get("/by-division/:division", controllers.ListUsersByDivision(svc))
	users.Delete("/:id", controllers.DeleteUser(svc))
}
