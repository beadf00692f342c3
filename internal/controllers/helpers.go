package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/middleware"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

const (
	requestTimeout = 5 * time.Second
	// uploads stream to object storage, so they get longer.
	uploadTimeout = 60 * time.Second
)

func requestCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

func uploadCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), uploadTimeout)
}

func actorOf(c *fiber.Ctx) (m.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return m.Actor{}, apperr.Unauthorized("not authenticated")
	}
	return a, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("body", "invalid request body")
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := services.ParseTime(s)
	if err != nil {
		return time.Time{}, apperr.Validation(field, err.Error())
	}
	return t, nil
}

func parseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formValue distinguishes a missing multipart field (nil) from an empty one.
func formValue(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		if v := c.FormValue(key); v != "" {
			return &v
		}
		return nil
	}
	vs, ok := form.Value[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

func formFloat(c *fiber.Ctx, key string) (*float64, error) {
	v := formValue(c, key)
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil {
		return nil, apperr.Validation(key, key+" must be a number")
	}
	return &f, nil
}

// formFile opens the uploaded file under key. The returned closer is
// never nil.
func formFile(c *fiber.Ctx, key string, required bool) (*services.Attachment, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(key)
	if err != nil || fh == nil {
		if required {
			return nil, noop, apperr.Validation(key, key+" is required")
		}
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, apperr.Wrap(err, "open upload")
	}
	return attachmentOf(fh, f), func() { _ = f.Close() }, nil
}

func attachmentOf(fh *multipart.FileHeader, body io.Reader) *services.Attachment {
	return &services.Attachment{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Body:        body,
	}
}
