package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupSites(r fiber.Router, svc *services.SiteService) {
	sites := r.Group("/sites")
	sites.Post("/", controllers.CreateSite(svc))
	sites.Get("/", controllers.ListSites(svc))
	sites.Get("/:id", controllers.GetSite(svc))
	sites.Put("/:id", controllers.UpdateSite(svc))
	sites.Delete("/:id", controllers.DeleteSite(svc))

	cats := r.Group("/activity-categories")
	cats.Get("/", controllers.ListCategories(svc))
	cats.Post("/", controllers.CreateCategory(svc))
	cats.Delete("/:id", controllers.DeleteCategory(svc))
}
