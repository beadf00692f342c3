package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// ListPendingAccounts godoc
// @Summary      Pending registrations the caller may review
// @Description  VP sees every pending account; a Manager sees Staff of their division and its sub-divisions.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/accounts/pending [get]
func ListPendingAccounts(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		users, err := svc.ListPending(ctx, actor)
		if err != nil {
			return err
		}
		return c.JSON(users)
	}
}

// ReviewAccount godoc
// @Summary      Approve or reject a pending account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.AccountReviewRequest  true  "Decision"
// @Success      200   {object}  models.User
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Already reviewed"
// @Router       /api/accounts/review [post]
func ReviewAccount(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.AccountReviewRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		u, err := svc.Review(ctx, actor, body.UserID, body.Action)
		if err != nil {
			return err
		}
		return c.JSON(u)
	}
}

// ListUsers godoc
// @Summary   Approved users
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  models.User
// @Router    /api/users [get]
func ListUsers(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		users, err := svc.ListUsers(ctx)
		if err != nil {
			return err
		}
		return c.JSON(users)
	}
}

// ListUsersByDivision godoc
// @Summary   Approved users of one division
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Param     division  path      string  true  "Division"  Enums(Monitoring, Infra, TS, Apps, Fiberzone)
// @Success   200       {array}   models.User
// @Failure   400       {object}  dto.ErrorResponse
// @Router    /api/users/by-division/{division} [get]
func ListUsersByDivision(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		users, err := svc.ListByDivision(ctx, m.Division(c.Params("division")))
		if err != nil {
			return err
		}
		return c.JSON(users)
	}
}

// DeleteUser godoc
// @Summary   Delete a user
// @Tags      users
// @Security  BearerAuth
// @Param     id   path  string  true  "User ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   403  {object}  dto.ErrorResponse  "SuperUser only; never self"
// @Router    /api/users/{id} [delete]
func DeleteUser(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.DeleteUser(ctx, actor, c.Params("id")); err != nil {
			return err
		}
		return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "User deleted successfully"})
	}
}
