package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/controllers"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

func SetupAuth(r fiber.Router, svc *services.AccountService) {
	auth := r.Group("/auth")
	auth.Post("/register", controllers.Register(svc))
	auth.Post("/login", controllers.Login(svc))
}

func SetupProfile(r fiber.Router, svc *services.AccountService) {
	auth := r.Group("/auth")
	auth.Get("/me", controllers.Me(svc))
	auth.Put("/profile", controllers.UpdateProfile(svc))
	auth.Post("/profile/photo", controllers.UploadProfilePhoto(svc))
}
