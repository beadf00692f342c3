package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/middleware"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
	"github.com/rs/zerolog"
)

type noUsers struct{}

func (noUsers) Get(_ context.Context, id string) (*m.User, error) {
	return nil, apperr.NotFound("user", id)
}

func testApp() *fiber.App {
	log := zerolog.New(io.Discard)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	app.Use(middleware.JWTUidOnly("secret"))
	accounts := services.NewAccountService(nil, nil, services.NewTokenIssuer("secret", time.Hour), "", log)
	Setup(app, Services{Accounts: accounts}, noUsers{})
	return app
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := testApp()
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/accounts/pending"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/sites"},
		{http.MethodGet, "/api/activity-categories"},
		{http.MethodPost, "/api/schedules/bulk-upload"},
		{http.MethodGet, "/api/schedules/change-requests"},
		{http.MethodGet, "/api/activities/today"},
		{http.MethodPost, "/api/reports/approve"},
		{http.MethodGet, "/api/tickets/list/all"},
		{http.MethodGet, "/api/notifications/unread-count"},
		{http.MethodGet, "/api/dashboard"},
	}
	for _, p := range paths {
		resp, err := app.Test(httptest.NewRequest(p.method, p.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s: status=%d", p.method, p.path, resp.StatusCode)
		}
	}
}

func TestAuthRoutesArePublic(t *testing.T) {
	app := testApp()
	for _, path := range []string{"/api/auth/login", "/api/auth/register"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: status=%d", path, resp.StatusCode)
		}
	}
}
