package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// CreateReport godoc
// @Summary      Submit a report
// @Description  The report enters the approval chain at the stage matching the submitter's role.
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        category_id  formData  string  false  "Activity category"
// @Param        site_id      formData  string  false  "Site"
// @Param        ticket_id    formData  string  false  "Ticket"
// @Param        file         formData  file    true   "Attachment"
// @Success      201          {object}  models.Report
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func CreateReport(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		file, closeFile, err := formFile(c, "file", true)
		if err != nil {
			return err
		}
		defer closeFile()
		ctx, cancel := uploadCtx(c)
		defer cancel()

		r, err := svc.Create(ctx, actor, services.ReportInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			CategoryID:  formValue(c, "category_id"),
			SiteID:      formValue(c, "site_id"),
			TicketID:    formValue(c, "ticket_id"),
		}, file)
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(r)
	}
}

// ListReports godoc
// @Summary   List reports
// @Tags      reports
// @Produce   json
// @Security  BearerAuth
// @Param     site_id  query    string  false  "Filter by site"
// @Success   200      {array}  models.Report
// @Router    /api/reports [get]
func ListReports(svc *services.ReportService) fiber.Handler {
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

// GetReport godoc
// @Summary   Get a report
// @Tags      reports
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Report ID"
// @Success   200  {object}  models.Report
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /api/reports/{id} [get]
func GetReport(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		r, err := svc.Get(ctx, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(r)
	}
}

// ReportStatistics godoc
// @Summary   Reports per submitter for a month
// @Tags      reports
// @Produce   json
// @Security  BearerAuth
// @Param     month        query    int     true   "1-12"
// @Param     year         query    int     true   "Year"
// @Param     category_id  query    string  false  "Category, or all"
// @Success   200          {array}  models.SubmitterCount
// @Failure   400          {object} dto.ErrorResponse
// @Router    /api/reports/statistics/user-counts [get]
func ReportStatistics(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		rows, err := svc.Statistics(ctx, c.QueryInt("month"), c.QueryInt("year"), c.Query("category_id"))
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// ApproveReport godoc
// @Summary      Approve a report or send it back for revision
// @Description  Only the report's current approver may act; a second concurrent decision gets 409.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ReportApproveRequest  true  "Decision"
// @Success      200   {object}  models.Report
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reports/approve [post]
func ApproveReport(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.ReportApproveRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		r, err := svc.Approve(ctx, actor, body.ReportID, services.ReportAction(body.Action), body.Comment)
		if err != nil {
			return err
		}
		return c.JSON(r)
	}
}

// EditReport godoc
// @Summary      Edit your report
// @Description  Editing a report in Revisi resubmits it. Omitted fields are left unchanged; an empty site_id or ticket_id clears the link.
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "Report ID"
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Description"
// @Param        site_id      formData  string  false  "Site"
// @Param        ticket_id    formData  string  false  "Ticket"
// @Param        file         formData  file    false  "New attachment"
// @Success      200          {object}  models.Report
// @Failure      403          {object}  dto.ErrorResponse
// @Failure      409          {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [put]
func EditReport(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		file, closeFile, err := formFile(c, "file", false)
		if err != nil {
			return err
		}
		defer closeFile()
		ctx, cancel := uploadCtx(c)
		defer cancel()

		r, err := svc.Edit(ctx, actor, c.Params("id"), services.ReportEdit{
			Title:       formValue(c, "title"),
			Description: formValue(c, "description"),
			SiteID:      formValue(c, "site_id"),
			TicketID:    formValue(c, "ticket_id"),
		}, file)
		if err != nil {
			return err
		}
		return c.JSON(r)
	}
}

// DeleteReport godoc
// @Summary   Delete a report
// @Tags      reports
// @Security  BearerAuth
// @Param     id   path      string  true  "Report ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /api/reports/{id} [delete]
func DeleteReport(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.Delete(ctx, actor, c.Params("id")); err != nil {
			return err
		}
		return c.JSON(dto.MessageResponse{Message: "Report deleted successfully"})
	}
}

// CommentOnReport godoc
// @Summary   Comment on a report
// @Tags      reports
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string              true  "Report ID"
// @Param     body  body      dto.CommentRequest  true  "Comment"
// @Success   201   {object}  models.Comment
// @Router    /api/reports/{id}/comments [post]
func CommentOnReport(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.CommentRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		cm, err := svc.AddComment(ctx, actor, c.Params("id"), body.Text)
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(cm)
	}
}
