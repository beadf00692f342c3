package services

import (
	"errors"
	"testing"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
)

var (
	_ UserStore         = (*fakeUsers)(nil)
	_ ScheduleStore     = (*fakeSchedules)(nil)
	_ ShiftChangeStore  = (*fakeShiftChanges)(nil)
	_ ActivityStore     = (*fakeActivities)(nil)
	_ ReportStore       = (*fakeReports)(nil)
	_ TicketStore       = (*fakeTickets)(nil)
	_ SiteStore         = (*fakeSites)(nil)
	_ CategoryStore     = (*fakeCategories)(nil)
	_ NotificationStore = (*fakeNotifications)(nil)
	_ Notifier          = (*recorder)(nil)
	_ AttachmentStore   = (*fakeFiles)(nil)
)

// harness wires every service to one set of in-memory stores.
type harness struct {
	users      *fakeUsers
	schedules  *fakeSchedules
	shifts     *fakeShiftChanges
	activities *fakeActivities
	reports    *fakeReports
	tickets    *fakeTickets
	sites      *fakeSites
	categories *fakeCategories
	files      *fakeFiles
	noti       *recorder
}

const siteA = "site-a"

func newHarness(users ...*m.User) *harness {
	loc := "Jakarta"
	return &harness{
		users:      newFakeUsers(users...),
		schedules:  newFakeSchedules(),
		shifts:     newFakeShiftChanges(),
		activities: newFakeActivities(),
		reports:    newFakeReports(),
		tickets:    newFakeTickets(),
		sites: newFakeSites(&m.Site{
			ID: siteA, Name: "Site A - Main Office", Location: &loc, Status: m.SiteActive, CreatedAt: testNow,
		}),
		categories: newFakeCategories(&m.ActivityCategory{ID: "cat-survey", Name: "Survey", CreatedAt: testNow}),
		files:      &fakeFiles{},
		noti:       &recorder{},
	}
}

func (h *harness) reportService() *ReportService {
	s := NewReportService(h.reports, h.users, h.sites, h.categories, h.tickets, h.files, h.noti, nopLog())
	s.now = fixedClock
	return s
}

func (h *harness) accountService() *AccountService {
	s := NewAccountService(h.users, h.noti, NewTokenIssuer("test-secret", 0), "", nopLog())
	s.now = fixedClock
	return s
}

func (h *harness) shiftService(policy ShiftScope) *ShiftChangeService {
	s := NewShiftChangeService(h.shifts, h.schedules, h.users, h.noti, policy, nopLog())
	s.now = fixedClock
	return s
}

func (h *harness) scheduleService() *ScheduleService {
	s := NewScheduleService(h.schedules, h.users, h.sites, h.categories, h.tickets, h.noti, nopLog())
	s.now = fixedClock
	return s
}

func (h *harness) activityService() *ActivityService {
	s := NewActivityService(h.activities, h.schedules, h.users, h.files, h.noti, nopLog())
	s.now = fixedClock
	return s
}

func (h *harness) ticketService() *TicketService {
	s := NewTicketService(h.tickets, h.reports, h.sites, h.users, h.noti, nopLog())
	s.now = fixedClock
	return s
}

func (h *harness) actor(id string) m.Actor {
	u, err := h.users.get(id)
	if err != nil {
		panic(err)
	}
	return m.ActorFromUser(u)
}

func wantKind(t *testing.T, err error, k apperr.Kind) {
	t.Helper()
	if !apperr.Is(err, k) {
		t.Fatalf("want %s error, got %v", k, err)
	}
}

func wantDeny(t *testing.T, err error, reason DenyReason) {
	t.Helper()
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindForbidden || ae.Reason != string(reason) {
		t.Fatalf("want Forbidden(%s), got %v", reason, err)
	}
}

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return v
	}
}

func wantInvalid(t *testing.T, err error, field string) {
	t.Helper()
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation || ae.Reason != field {
		t.Fatalf("want Validation(%s), got %v", field, err)
	}
}
