package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/middleware"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Accounts      *services.AccountService
	Sites         *services.SiteService
	Schedules     *services.ScheduleService
	ShiftChanges  *services.ShiftChangeService
	Activities    *services.ActivityService
	Reports       *services.ReportService
	Tickets       *services.TicketService
	Notifications *services.NotificationService
	Dashboard     *services.DashboardService
}

// Setup mounts the public auth routes and, behind RequireActor, the rest
// of the API under /api. JWTUidOnly must already be installed on app.
func Setup(app *fiber.App, svc Services, users middleware.UserLookup) {
	api := app.Group("/api")
	// Registered ahead of the RequireActor group so they stay public.
	SetupAuth(api, svc.Accounts)

	protected := api.Group("", middleware.RequireActor(users))
	SetupProfile(protected, svc.Accounts)
	SetupAccounts(protected, svc.Accounts)
	SetupSites(protected, svc.Sites)
	SetupSchedules(protected, svc.Schedules, svc.ShiftChanges)
	SetupActivities(protected, svc.Activities)
	SetupReports(protected, svc.Reports)
	SetupTickets(protected, svc.Tickets)
	SetupNotifications(protected, svc.Notifications)
	SetupDashboard(protected, svc.Dashboard)
}
