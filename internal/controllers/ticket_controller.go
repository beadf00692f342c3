package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// CreateTicket godoc
// @Summary      Open a ticket
// @Description  The Manager of the assigned division is notified.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.TicketRequest  true  "Ticket"
// @Success      201   {object}  models.Ticket
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets [post]
func CreateTicket(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.TicketRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		t, err := svc.Create(ctx, actor, services.TicketInput{
			Title:              body.Title,
			Description:        body.Description,
			Priority:           body.Priority,
			AssignedToDivision: m.Division(body.AssignedToDivision),
			SiteID:             body.SiteID,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(t)
	}
}

// ListTickets godoc
// @Summary   List tickets
// @Tags      tickets
// @Produce   json
// @Security  BearerAuth
// @Param     site_id  query    string  false  "Filter by site"
// @Success   200      {array}  models.Ticket
// @Router    /api/tickets [get]
func ListTickets(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		list, err := svc.List(ctx, c.Query("site_id"))
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// ListTicketOptions godoc
// @Summary   Id and title of every ticket, for pickers
// @Tags      tickets
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  dto.TicketOption
// @Router    /api/tickets/list/all [get]
func ListTicketOptions(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		list, err := svc.List(ctx, "")
		if err != nil {
			return err
		}
		out := make([]dto.TicketOption, 0, len(list))
		for _, t := range list {
			out = append(out, dto.TicketOption{ID: t.ID, Title: t.Title, CreatedAt: t.CreatedAt})
		}
		return c.JSON(out)
	}
}

// GetTicket godoc
// @Summary   Get a ticket
// @Tags      tickets
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Ticket ID"
// @Success   200  {object}  models.Ticket
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /api/tickets/{id} [get]
func GetTicket(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		t, err := svc.Get(ctx, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

// PatchTicket godoc
// @Summary      Change ticket status or assignee
// @Description  Closed cannot be set here; use the close action.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Ticket ID"
// @Param        body  body      dto.TicketPatchRequest  true  "Changes"
// @Success      200   {object}  models.Ticket
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [patch]
func PatchTicket(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.TicketPatchRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		in := services.TicketPatch{AssignedTo: body.AssignedTo}
		if body.Status != nil {
			st := m.TicketStatus(*body.Status)
			in.Status = &st
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		t, err := svc.Patch(ctx, c.Params("id"), in)
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

// EditTicket godoc
// @Summary   Edit ticket details
// @Tags      tickets
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                 true  "Ticket ID"
// @Param     body  body      dto.TicketEditRequest  true  "Changes"
// @Success   200   {object}  models.Ticket
// @Router    /api/tickets/{id} [put]
func EditTicket(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.TicketEditRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		t, err := svc.Edit(ctx, c.Params("id"), services.TicketEdit{
			Title:              body.Title,
			Description:        body.Description,
			Priority:           body.Priority,
			AssignedToDivision: m.Division(body.AssignedToDivision),
			SiteID:             body.SiteID,
		})
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

// CloseTicket godoc
// @Summary      Close a ticket
// @Description  A linked report must exist and be Final.
// @Tags         tickets
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/close [post]
func CloseTicket(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.Close(ctx, actor, c.Params("id")); err != nil {
			return err
		}
		return c.JSON(dto.MessageResponse{Message: "Ticket closed successfully"})
	}
}

// CommentOnTicket godoc
// @Summary   Comment on a ticket
// @Tags      tickets
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                    true  "Ticket ID"
// @Param     body  body      dto.TicketCommentRequest  true  "Comment"
// @Success   201   {object}  models.TicketComment
// @Router    /api/tickets/{id}/comments [post]
func CommentOnTicket(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.TicketCommentRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		cm, err := svc.AddComment(ctx, actor, c.Params("id"), body.Comment)
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(cm)
	}
}

// LinkReport godoc
// @Summary   Link a report to a ticket
// @Tags      tickets
// @Security  BearerAuth
// @Param     id         path      string  true  "Ticket ID"
// @Param     report_id  path      string  true  "Report ID"
// @Success   200        {object}  dto.MessageResponse
// @Failure   404        {object}  dto.ErrorResponse
// @Router    /api/tickets/{id}/link-report/{report_id} [post]
func LinkReport(svc *services.TicketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.LinkReport(ctx, c.Params("id"), c.Params("report_id")); err != nil {
			return err
		}
		return c.JSON(dto.MessageResponse{Message: "Report linked to ticket"})
	}
}
