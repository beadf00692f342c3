package controllers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/dto"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// maxPhotoBytes caps profile photos, which are stored inline on the user.
const maxPhotoBytes = 2 << 20

// Register godoc
// @Summary      Register an account
// @Description  Staff and Manager accounts start pending and notify their reviewer; other roles are approved immediately.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Account"
// @Success      201   {object}  models.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func Register(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.RegisterRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		u, err := svc.Register(ctx, services.RegisterInput{
			Username: body.Username,
			Email:    body.Email,
			Password: body.Password,
			Role:     body.Role,
			Division: body.Division,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(u)
	}
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse  "Invalid email or password"
// @Failure      403   {object}  dto.ErrorResponse  "Account pending or rejected"
// @Router       /api/auth/login [post]
func Login(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.LoginRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		token, u, err := svc.Login(ctx, body.Email, body.Password)
		if err != nil {
			return err
		}
		return c.JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer", User: u})
	}
}

// Me godoc
// @Summary   Current user
// @Tags      auth
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  models.User
// @Router    /api/auth/me [get]
func Me(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		u, err := svc.Me(ctx, actor)
		if err != nil {
			return err
		}
		return c.JSON(u)
	}
}

// UpdateProfile godoc
// @Summary      Update username and/or password
// @Description  Any change requires current_password; new_password must equal confirm_password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ProfileUpdateRequest  true  "Changes"
// @Success      200   {object}  models.User
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/profile [put]
func UpdateProfile(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		var body dto.ProfileUpdateRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		ctx, cancel := requestCtx(c)
		defer cancel()

		u, err := svc.UpdateProfile(ctx, actor, services.ProfileUpdate{
			Username:        body.Username,
			CurrentPassword: body.CurrentPassword,
			NewPassword:     body.NewPassword,
			ConfirmPassword: body.ConfirmPassword,
		})
		if err != nil {
			return err
		}
		return c.JSON(u)
	}
}

// UploadProfilePhoto godoc
// @Summary      Upload a profile photo
// @Description  The image is stored base64-encoded on the user record.
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        photo  formData  file  true  "Image"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/auth/profile/photo [post]
func UploadProfilePhoto(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOf(c)
		if err != nil {
			return err
		}
		file, closeFile, err := formFile(c, "photo", true)
		if err != nil {
			return err
		}
		defer closeFile()
		if file.Size > maxPhotoBytes {
			return apperr.Validation("photo", "profile photo is too large")
		}
		raw, err := io.ReadAll(io.LimitReader(file.Body, maxPhotoBytes+1))
		if err != nil {
			return apperr.Wrap(err, "read photo")
		}

		contentType := file.ContentType
		if contentType == "" || !strings.HasPrefix(contentType, "image/") {
			contentType = http.DetectContentType(raw)
		}
		dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw)

		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := svc.UpdatePhoto(ctx, actor, dataURL); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Profile photo updated successfully", "photo_data": dataURL})
	}
}
