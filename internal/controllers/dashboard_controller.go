package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// Dashboard godoc
// @Summary      Landing page data for the caller
// @Description  Sections the caller's role has no use for are empty.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.Dashboard
// @Router       /api/dashboard [get]
func Dashboard(svc *services.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		d, err := svc.Get(ctx, actor)
		if err != nil {
			return err
		}
		return c.JSON(d)
	}
}
