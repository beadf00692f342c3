package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// ListNotifications godoc
// @Summary   Latest notifications of the caller
// @Tags      notifications
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  models.Notification
// @Router    /api/notifications [get]
func ListNotifications(svc *services.NotificationService) fiber.Handler {
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

// MarkNotificationRead godoc
// @Summary   Mark one of your notifications read
// @Tags      notifications
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Notification ID"
// @Success   200  {object}  models.Notification
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /api/notifications/{id}/read [post]
func MarkNotificationRead(svc *services.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		n, err := svc.MarkRead(ctx, actor, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(n)
	}
}

// UnreadCount godoc
// @Summary   Number of unread notifications
// @Tags      notifications
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.CountResponse
// @Router    /api/notifications/unread-count [get]
func UnreadCount(svc *services.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		n, err := svc.UnreadCount(ctx, actor)
		if err != nil {
			return err
		}
		return c.JSON(dto.CountResponse{Count: n})
	}
}
