package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// CreateSite godoc
// @Summary   Create a site
// @Tags      sites
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.SiteRequest  true  "Site"
// @Success   201   {object}  models.Site
// @Failure   400   {object}  dto.ErrorResponse
// @Router    /api/sites [post]
func CreateSite(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.SiteRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		site, err := svc.CreateSite(ctx, actor, services.SiteInput{
			Name:        body.Name,
			Location:    body.Location,
			Description: body.Description,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(site)
	}
}

// ListSites godoc
// @Summary   List sites
// @Tags      sites
// @Produce   json
// @Security  BearerAuth
// @Param     active  query    bool  false  "Only active sites"
// @Success   200     {array}  models.Site
// @Router    /api/sites [get]
func ListSites(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		sites, err := svc.ListSites(ctx, c.QueryBool("active", false))
		if err != nil {
			return err
		}
		return c.JSON(sites)
	}
}

// GetSite godoc
// @Summary   Get a site
// @Tags      sites
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Site ID"
// @Success   200  {object}  models.Site
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /api/sites/{id} [get]
func GetSite(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		site, err := svc.GetSite(ctx, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(site)
	}
}

// UpdateSite godoc
// @Summary   Update a site
// @Tags      sites
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                 true  "Site ID"
// @Param     body  body      dto.SiteUpdateRequest  true  "Changes"
// @Success   200   {object}  models.Site
// @Router    /api/sites/{id} [put]
func UpdateSite(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.SiteUpdateRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		site, err := svc.UpdateSite(ctx, c.Params("id"), services.SiteUpdate{
			Name:        body.Name,
			Location:    body.Location,
			Description: body.Description,
			Status:      body.Status,
		})
		if err != nil {
			return err
		}
		return c.JSON(site)
	}
}

// DeleteSite godoc
// @Summary      Deactivate a site
// @Description  Sites are never removed; the status becomes inactive.
// @Tags         sites
// @Security     BearerAuth
// @Param        id   path      string  true  "Site ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/sites/{id} [delete]
func DeleteSite(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.DeleteSite(ctx, c.Params("id")); err != nil {
			return err
		}
		return c.JSON(dto.MessageResponse{Message: "Site deactivated successfully"})
	}
}

// ListCategories godoc
// @Summary   Activity categories
// @Tags      categories
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  models.ActivityCategory
// @Router    /api/activity-categories [get]
func ListCategories(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestCtx(c)
		defer cancel()
		cats, err := svc.ListCategories(ctx)
		if err != nil {
			return err
		}
		return c.JSON(cats)
	}
}

// CreateCategory godoc
// @Summary   Create an activity category
// @Tags      categories
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.CategoryRequest  true  "Category"
// @Success   201   {object}  models.ActivityCategory
// @Failure   403   {object}  dto.ErrorResponse  "SuperUser only"
// @Failure   409   {object}  dto.ErrorResponse  "Name taken"
// @Router    /api/activity-categories [post]
func CreateCategory(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.CategoryRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		cat, err := svc.CreateCategory(ctx, actor, body.Name)
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(cat)
	}
}

// DeleteCategory godoc
// @Summary   Delete an activity category
// @Tags      categories
// @Security  BearerAuth
// @Param     id   path      string  true  "Category ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /api/activity-categories/{id} [delete]
func DeleteCategory(svc *services.SiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.DeleteCategory(ctx, actor, c.Params("id")); err != nil {
			return err
		}
		return c.JSON(dto.MessageResponse{Message: "Category deleted successfully"})
	}
}
