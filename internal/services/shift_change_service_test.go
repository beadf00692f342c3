package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func shiftHarness() *harness {
	return newHarness(
		user("vp", m.RoleVP, nil),
		user("mgr-ts", m.RoleManager, div(m.DivisionTS)),
		user("mgr-infra", m.RoleManager, div(m.DivisionInfra)),
		user("staff-ts", m.RoleStaff, div(m.DivisionTS)),
		user("staff-apps", m.RoleStaff, div(m.DivisionApps)),
	)
}

func scheduleFor(t *testing.T, h *harness, id, owner string) *m.Schedule {
	t.Helper()
	u, err := h.users.get(owner)
	if err != nil {
		t.Fatal(err)
	}
	s := &m.Schedule{
		ID: id, UserID: u.ID, UserName: u.Username, Division: u.Division, Title: "patrol",
		StartDate: testNow, EndDate: testNow.Add(8 * time.Hour), CreatedBy: "vp", CreatedAt: testNow,
	}
	if err := h.schedules.Insert(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	return s
}

func shiftInput(scheduleID string) ShiftChangeInput {
	return ShiftChangeInput{
		ScheduleID:   scheduleID,
		Reason:       " family event ",
		NewStartDate: testNow.Add(24 * time.Hour),
		NewEndDate:   testNow.Add(32 * time.Hour),
	}
}

func TestShiftChangeCreate(t *testing.T) {
	h := shiftHarness()
	svc := h.shiftService(ShiftScopeExact)
	ctx := context.Background()
	scheduleFor(t, h, "sch-ts", "staff-ts")

	_, err := svc.Create(ctx, h.actor("staff-apps"), shiftInput("sch-ts"))
	wantDeny(t, err, DenyNotOwner)

	in := shiftInput("sch-ts")
	in.NewEndDate = in.NewStartDate.Add(-time.Minute)
	_, err = svc.Create(ctx, h.actor("staff-ts"), in)
	wantInvalid(t, err, "new_end_date")

	_, err = svc.Create(ctx, h.actor("staff-ts"), shiftInput(""))
	wantInvalid(t, err, "schedule_id")
	_, err = svc.Create(ctx, h.actor("staff-ts"), shiftInput("missing"))
	wantKind(t, err, apperr.KindNotFound)

	req := must[*m.ShiftChangeRequest](t)(svc.Create(ctx, h.actor("staff-ts"), shiftInput("sch-ts")))
	if req.Status != m.ShiftChangePending || req.Reason != "family event" || req.RequestedByName != "staff-ts" {
		t.Fatalf("request=%+v", req)
	}
	if n := h.noti.to("mgr-ts"); len(n) != 1 || n[0].Kind != NotiShiftChangeRequested || n[0].RelatedID != req.ID {
		t.Fatalf("manager notifications=%+v", n)
	}
}

func TestShiftChangeApproveMovesSchedule(t *testing.T) {
	h := shiftHarness()
	svc := h.shiftService(ShiftScopeExact)
	ctx := context.Background()
	scheduleFor(t, h, "sch-ts", "staff-ts")
	req := must[*m.ShiftChangeRequest](t)(svc.Create(ctx, h.actor("staff-ts"), shiftInput("sch-ts")))

	_, err := svc.Review(ctx, h.actor("mgr-infra"), req.ID, m.ReviewApprove, "")
	wantDeny(t, err, DenyWrongDivision)
	_, err = svc.Review(ctx, h.actor("staff-ts"), req.ID, m.ReviewApprove, "")
	wantDeny(t, err, DenyWrongRole)

	got := must[*m.ShiftChangeRequest](t)(svc.Review(ctx, h.actor("mgr-ts"), req.ID, m.ReviewApprove, " ok "))
	if got.Status != m.ShiftChangeApproved || got.ReviewComment == nil || *got.ReviewComment != "ok" {
		t.Fatalf("reviewed=%+v", got)
	}
	sch := must[*m.Schedule](t)(h.schedules.Get(ctx, "sch-ts"))
	if !sch.StartDate.Equal(req.NewStartDate) || !sch.EndDate.Equal(req.NewEndDate) {
		t.Fatalf("schedule not moved: %v - %v", sch.StartDate, sch.EndDate)
	}
	if n := h.noti.to("staff-ts"); len(n) != 1 || n[0].Kind != NotiShiftChangeReviewed || n[0].Params.Status != "approved" {
		t.Fatalf("requester notifications=%+v", n)
	}

	_, err = svc.Review(ctx, h.actor("vp"), req.ID, m.ReviewReject, "")
	wantKind(t, err, apperr.KindConflict)
}

// failingSchedules refuses schedule writes while down is set.
type failingSchedules struct {
	*fakeSchedules
	down bool
}

func (f *failingSchedules) UpdateFields(ctx context.Context, id string, set bson.M) error {
	if f.down {
		return errors.New("mongo down")
	}
	return f.fakeSchedules.UpdateFields(ctx, id, set)
}

func TestShiftChangeApproveFailedMoveCanRetry(t *testing.T) {
	h := shiftHarness()
	orig := scheduleFor(t, h, "sch-ts", "staff-ts")
	schedules := &failingSchedules{fakeSchedules: h.schedules, down: true}
	svc := NewShiftChangeService(h.shifts, schedules, h.users, h.noti, ShiftScopeExact, nopLog())
	svc.now = fixedClock
	ctx := context.Background()
	req := must[*m.ShiftChangeRequest](t)(svc.Create(ctx, h.actor("staff-ts"), shiftInput("sch-ts")))

	if _, err := svc.Review(ctx, h.actor("mgr-ts"), req.ID, m.ReviewApprove, "ok"); err == nil {
		t.Fatal("expected the failed schedule move to surface")
	}
	stored := must[*m.ShiftChangeRequest](t)(h.shifts.Get(ctx, req.ID))
	if stored.Status != m.ShiftChangePending || stored.ReviewedBy != nil || stored.ReviewComment != nil {
		t.Fatalf("request left half-reviewed: %+v", stored)
	}
	sch := must[*m.Schedule](t)(h.schedules.Get(ctx, "sch-ts"))
	if !sch.StartDate.Equal(orig.StartDate) {
		t.Fatalf("schedule moved to %v", sch.StartDate)
	}
	if n := h.noti.to("staff-ts"); len(n) != 0 {
		t.Fatalf("requester notified of a failed review: %+v", n)
	}

	schedules.down = false
	got := must[*m.ShiftChangeRequest](t)(svc.Review(ctx, h.actor("mgr-ts"), req.ID, m.ReviewApprove, "ok"))
	if got.Status != m.ShiftChangeApproved {
		t.Fatalf("retry status=%s", got.Status)
	}
	sch = must[*m.Schedule](t)(h.schedules.Get(ctx, "sch-ts"))
	if !sch.StartDate.Equal(req.NewStartDate) || !sch.EndDate.Equal(req.NewEndDate) {
		t.Fatalf("schedule not moved on retry: %v - %v", sch.StartDate, sch.EndDate)
	}
}

func TestShiftChangeRejectKeepsSchedule(t *testing.T) {
	h := shiftHarness()
	svc := h.shiftService(ShiftScopeExact)
	ctx := context.Background()
	orig := scheduleFor(t, h, "sch-ts", "staff-ts")
	req := must[*m.ShiftChangeRequest](t)(svc.Create(ctx, h.actor("staff-ts"), shiftInput("sch-ts")))

	_, err := svc.Review(ctx, h.actor("vp"), req.ID, "later", "")
	wantInvalid(t, err, "action")

	must[*m.ShiftChangeRequest](t)(svc.Review(ctx, h.actor("vp"), req.ID, m.ReviewReject, ""))
	sch := must[*m.Schedule](t)(h.schedules.Get(ctx, "sch-ts"))
	if !sch.StartDate.Equal(orig.StartDate) {
		t.Fatalf("rejected change moved the schedule to %v", sch.StartDate)
	}
	stored := must[*m.ShiftChangeRequest](t)(h.shifts.Get(ctx, req.ID))
	if stored.Status != m.ShiftChangeRejected || stored.ReviewedBy == nil || *stored.ReviewedBy != "vp" {
		t.Fatalf("stored=%+v", stored)
	}
}

func TestShiftChangeSubDivisionPolicy(t *testing.T) {
	cases := []struct {
		policy      ShiftScope
		tsMayReview bool
	}{
		{ShiftScopeExact, false},
		{ShiftScopeRouted, true},
	}
	for _, tt := range cases {
		t.Run(string(tt.policy), func(t *testing.T) {
			h := shiftHarness()
			svc := h.shiftService(tt.policy)
			ctx := context.Background()
			scheduleFor(t, h, "sch-apps", "staff-apps")
			req := must[*m.ShiftChangeRequest](t)(svc.Create(ctx, h.actor("staff-apps"), shiftInput("sch-apps")))

			notified := len(h.noti.to("mgr-ts")) == 1
			listed := must[[]m.ShiftChangeRequest](t)(svc.List(ctx, h.actor("mgr-ts")))
			_, err := svc.Review(ctx, h.actor("mgr-ts"), req.ID, m.ReviewApprove, "")

			if notified != tt.tsMayReview || (len(listed) == 1) != tt.tsMayReview || (err == nil) != tt.tsMayReview {
				t.Fatalf("notified=%v listed=%d err=%v", notified, len(listed), err)
			}
		})
	}
}

func TestShiftChangeList(t *testing.T) {
	h := shiftHarness()
	svc := h.shiftService(ShiftScopeExact)
	ctx := context.Background()
	scheduleFor(t, h, "sch-ts", "staff-ts")
	scheduleFor(t, h, "sch-apps", "staff-apps")
	ts := must[*m.ShiftChangeRequest](t)(svc.Create(ctx, h.actor("staff-ts"), shiftInput("sch-ts")))
	must[*m.ShiftChangeRequest](t)(svc.Create(ctx, h.actor("staff-apps"), shiftInput("sch-apps")))

	if got := must[[]m.ShiftChangeRequest](t)(svc.List(ctx, h.actor("vp"))); len(got) != 2 {
		t.Fatalf("vp sees %d", len(got))
	}
	if got := must[[]m.ShiftChangeRequest](t)(svc.List(ctx, h.actor("mgr-infra"))); len(got) != 0 {
		t.Fatalf("infra manager sees %d", len(got))
	}
	mine := must[[]m.ShiftChangeRequest](t)(svc.List(ctx, h.actor("staff-ts")))
	if len(mine) != 1 || mine[0].ID != ts.ID {
		t.Fatalf("own list=%+v", mine)
	}

	must[*m.ShiftChangeRequest](t)(svc.Review(ctx, h.actor("mgr-ts"), ts.ID, m.ReviewApprove, ""))
	if got := must[[]m.ShiftChangeRequest](t)(svc.List(ctx, h.actor("mgr-ts"))); len(got) != 0 {
		t.Fatalf("reviewed request still listed: %+v", got)
	}
	if got := must[[]m.ShiftChangeRequest](t)(svc.List(ctx, h.actor("staff-ts"))); len(got) != 1 {
		t.Fatalf("requester history lost: %d", len(got))
	}
}
