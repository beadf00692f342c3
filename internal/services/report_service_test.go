package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// field builds the standard cast: one VP, managers and SPVs for TS and
// Infra, and staff in the two sub-divisions plus Infra.
func field() *harness {
	return newHarness(
		user("vp", m.RoleVP, nil),
		user("mgr-ts", m.RoleManager, div(m.DivisionTS)),
		user("spv-ts", m.RoleSPV, div(m.DivisionTS)),
		user("mgr-infra", m.RoleManager, div(m.DivisionInfra)),
		user("spv-infra", m.RoleSPV, div(m.DivisionInfra)),
		user("staff-apps", m.RoleStaff, div(m.DivisionApps)),
		user("staff-fz", m.RoleStaff, div(m.DivisionFiberzone)),
		user("staff-infra", m.RoleStaff, div(m.DivisionInfra)),
	)
}

func submit(t *testing.T, h *harness, by string) *m.Report {
	t.Helper()
	r, err := h.reportService().Create(context.Background(), h.actor(by), ReportInput{
		Title:       "Fiber cut at " + by,
		Description: "details",
		SiteID:      str(siteA),
	}, attachment("Laporan.PDF", "%PDF"))
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	return r
}

func TestCreateReportRoutesSubDivisionStaff(t *testing.T) {
	h := field()
	r := submit(t, h, "staff-apps")

	if r.Status != m.ReportPendingSPV {
		t.Fatalf("status=%s", r.Status)
	}
	if !r.IsApprover("spv-ts") {
		t.Fatalf("approver=%v, want spv-ts", r.CurrentApprover)
	}
	if r.Version != 1 || r.SiteName == nil || *r.SiteName != "Site A - Main Office" {
		t.Fatalf("unexpected report %+v", r)
	}
	if got := h.noti.to("spv-ts"); len(got) != 1 || got[0].Kind != NotiReportSubmitted {
		t.Fatalf("spv notifications=%+v", got)
	}
	if len(h.files.files) != 1 {
		t.Fatalf("files=%d", len(h.files.files))
	}
	f := h.files.files[0]
	if f.Folder != "reports/Site_A_-_Main_Office" || !strings.HasPrefix(f.Name, "report_20250314093000_") || !strings.HasSuffix(f.Name, ".pdf") {
		t.Fatalf("stored as %s/%s", f.Folder, f.Name)
	}
	if r.FileURL != "/uploads/"+f.Folder+"/"+f.Name {
		t.Fatalf("file_url=%s", r.FileURL)
	}
}

func TestCreateReportByManagerGoesToManager(t *testing.T) {
	h := field()
	r := submit(t, h, "spv-infra")
	if r.Status != m.ReportPendingManager || !r.IsApprover("mgr-infra") {
		t.Fatalf("got %s / %v", r.Status, r.CurrentApprover)
	}
}

func TestCreateReportValidation(t *testing.T) {
	h := field()
	svc := h.reportService()
	ctx := context.Background()
	a := h.actor("staff-apps")

	_, err := svc.Create(ctx, a, ReportInput{Title: " "}, attachment("a.pdf", "x"))
	wantKind(t, err, apperr.KindValidation)
	_, err = svc.Create(ctx, a, ReportInput{Title: "t"}, nil)
	wantKind(t, err, apperr.KindValidation)
	_, err = svc.Create(ctx, a, ReportInput{Title: "t", SiteID: str("nope")}, attachment("a.pdf", "x"))
	wantKind(t, err, apperr.KindNotFound)
	_, err = svc.Create(ctx, a, ReportInput{Title: "t", CategoryID: str("nope")}, attachment("a.pdf", "x"))
	wantKind(t, err, apperr.KindNotFound)
	if len(h.files.files) != 0 {
		t.Fatalf("file stored for rejected report")
	}
}

func TestReportFullChain(t *testing.T) {
	h := field()
	svc := h.reportService()
	ctx := context.Background()
	r := submit(t, h, "staff-apps")

	r = must[*m.Report](t)(svc.Approve(ctx, h.actor("spv-ts"), r.ID, ReportApprove, ""))
	if r.Status != m.ReportPendingManager || !r.IsApprover("mgr-ts") {
		t.Fatalf("after spv: %s / %v", r.Status, r.CurrentApprover)
	}
	r = must[*m.Report](t)(svc.Approve(ctx, h.actor("mgr-ts"), r.ID, ReportApprove, ""))
	if r.Status != m.ReportPendingVP || !r.IsApprover("vp") {
		t.Fatalf("after manager: %s / %v", r.Status, r.CurrentApprover)
	}
	r = must[*m.Report](t)(svc.Approve(ctx, h.actor("vp"), r.ID, ReportApprove, ""))
	if r.Status != m.ReportFinal || r.CurrentApprover != nil {
		t.Fatalf("after vp: %s / %v", r.Status, r.CurrentApprover)
	}

	stored, _ := h.reports.Get(ctx, r.ID)
	if stored.Status != m.ReportFinal || stored.CurrentApprover != nil {
		t.Fatalf("stored %s / %v", stored.Status, stored.CurrentApprover)
	}
	got := h.noti.to("staff-apps")
	if len(got) != 1 || got[0].Kind != NotiReportApproved {
		t.Fatalf("submitter notifications=%+v", got)
	}
	if len(h.noti.to("mgr-ts")) != 1 || len(h.noti.to("vp")) != 1 {
		t.Fatalf("approver notifications: %v", h.noti.kinds())
	}

	_, err := svc.Approve(ctx, h.actor("vp"), r.ID, ReportApprove, "")
	wantKind(t, err, apperr.KindConflict)
}

func TestRoutingParentManagerMayApproveAtSPVStage(t *testing.T) {
	h := field()
	svc := h.reportService()
	r := submit(t, h, "staff-fz")
	if !r.IsApprover("spv-infra") {
		t.Fatalf("approver=%v", r.CurrentApprover)
	}

	r, err := svc.Approve(context.Background(), h.actor("mgr-infra"), r.ID, ReportApprove, "")
	if err != nil {
		t.Fatalf("infra manager on fiberzone report: %v", err)
	}
	if r.Status != m.ReportPendingVP || !r.IsApprover("vp") {
		t.Fatalf("got %s / %v", r.Status, r.CurrentApprover)
	}
}

func TestOtherDivisionManagerDenied(t *testing.T) {
	h := field()
	r := submit(t, h, "staff-fz")
	_, err := h.reportService().Approve(context.Background(), h.actor("mgr-ts"), r.ID, ReportApprove, "")
	wantDeny(t, err, DenyWrongDivision)

	_, err = h.reportService().Approve(context.Background(), h.actor("spv-ts"), r.ID, ReportApprove, "")
	wantDeny(t, err, DenyNotCurrentApprover)
}

func TestRevisiAndResubmit(t *testing.T) {
	h := field()
	svc := h.reportService()
	ctx := context.Background()
	r := submit(t, h, "staff-apps")

	_, err := svc.Approve(ctx, h.actor("spv-ts"), r.ID, ReportRevisi, "")
	wantKind(t, err, apperr.KindValidation)
	same := must[*m.Report](t)(h.reports.Get(ctx, r.ID))
	if same.Status != r.Status || !same.IsApprover("spv-ts") || same.Version != r.Version || same.RejectionComment != nil {
		t.Fatalf("rejected revisi changed the report: %+v", same)
	}

	r = must[*m.Report](t)(svc.Approve(ctx, h.actor("spv-ts"), r.ID, ReportRevisi, "photo missing"))
	if r.Status != m.ReportRevisi || r.RejectionComment == nil || *r.RejectionComment != "photo missing" {
		t.Fatalf("revisi: %+v", r)
	}
	if !r.IsApprover("spv-ts") {
		t.Fatalf("revisi must keep approver, got %v", r.CurrentApprover)
	}
	if got := h.noti.to("staff-apps"); len(got) != 1 || got[0].Kind != NotiReportRevisi || got[0].Params.Comment != "photo missing" {
		t.Fatalf("submitter notifications=%+v", got)
	}

	_, err = svc.Approve(ctx, h.actor("spv-ts"), r.ID, ReportApprove, "")
	wantKind(t, err, apperr.KindConflict)

	_, err = svc.Edit(ctx, h.actor("spv-ts"), r.ID, ReportEdit{Title: str("x")}, nil)
	wantDeny(t, err, DenyNotOwner)

	r = must[*m.Report](t)(svc.Edit(ctx, h.actor("staff-apps"), r.ID, ReportEdit{Title: str(" Rack B survey "), Description: str("with photo")}, attachment("v2.pdf", "%PDF2")))
	if r.Status != m.ReportPendingSPV || !r.IsApprover("spv-ts") {
		t.Fatalf("resubmit: %s / %v", r.Status, r.CurrentApprover)
	}
	if r.Version != 2 || r.RejectionComment != nil || r.Description != "with photo" || r.FileName != "v2.pdf" {
		t.Fatalf("resubmitted report %+v", r)
	}
	last := h.noti.to("spv-ts")
	if n := last[len(last)-1]; n.Kind != NotiReportResubmitted || n.Params.Subject != "Rack B survey" {
		t.Fatalf("spv notifications=%+v", last)
	}
}

func TestResubmitFallsThroughEntryChain(t *testing.T) {
	h := newHarness(
		user("vp", m.RoleVP, nil),
		user("mgr-ts", m.RoleManager, div(m.DivisionTS)),
		user("staff-apps", m.RoleStaff, div(m.DivisionApps)),
	)
	ctx := context.Background()
	r := submit(t, h, "staff-apps")
	if r.CurrentApprover != nil {
		t.Fatalf("no TS SPV exists, approver=%v", r.CurrentApprover)
	}
	must[*m.Report](t)(h.reportService().Approve(ctx, h.actor("mgr-ts"), r.ID, ReportRevisi, "fix"))

	r = must[*m.Report](t)(h.reportService().Edit(ctx, h.actor("staff-apps"), r.ID, ReportEdit{}, nil))
	if r.Status != m.ReportPendingManager || !r.IsApprover("mgr-ts") {
		t.Fatalf("got %s / %v", r.Status, r.CurrentApprover)
	}
}

func TestResubmitWithoutAnyApproverStaysRevisi(t *testing.T) {
	h := newHarness(user("staff-apps", m.RoleStaff, div(m.DivisionApps)), user("vp0", m.RoleVP, nil))
	ctx := context.Background()
	r := submit(t, h, "staff-apps")
	must[*m.Report](t)(h.reportService().Approve(ctx, h.actor("vp0"), r.ID, ReportRevisi, "fix"))
	_ = h.users.Delete(ctx, "vp0")

	r = must[*m.Report](t)(h.reportService().Edit(ctx, h.actor("staff-apps"), r.ID, ReportEdit{Title: str("v2")}, nil))
	if r.Status != m.ReportRevisi || r.Version != 2 || r.Title != "v2" {
		t.Fatalf("got %+v", r)
	}
}

func TestConcurrentApprovalConflicts(t *testing.T) {
	h := field()
	svc := h.reportService()
	ctx := context.Background()
	r := submit(t, h, "staff-apps")

	// The VP finalizes between the SPV's read and write.
	h.reports.beforeWrite = func() {
		if err := h.reports.update(r.ID, nil, bson.M{"status": m.ReportFinal, "current_approver": nil}, nil); err != nil {
			t.Errorf("competing write: %v", err)
		}
	}
	_, err := svc.Approve(ctx, h.actor("spv-ts"), r.ID, ReportApprove, "")
	wantKind(t, err, apperr.KindConflict)

	stored, _ := h.reports.Get(ctx, r.ID)
	if stored.Status != m.ReportFinal {
		t.Fatalf("status=%s", stored.Status)
	}
	if len(h.noti.to("mgr-ts")) != 0 {
		t.Fatalf("loser must not notify")
	}
}

func TestConcurrentEditConflicts(t *testing.T) {
	h := field()
	ctx := context.Background()
	r := submit(t, h, "staff-apps")
	h.reports.beforeWrite = func() {
		_ = h.reports.update(r.ID, nil, bson.M{"version": 7}, nil)
	}
	_, err := h.reportService().Edit(ctx, h.actor("staff-apps"), r.ID, ReportEdit{Title: str("late")}, nil)
	wantKind(t, err, apperr.KindConflict)
}

func TestDeleteReport(t *testing.T) {
	h := field()
	ctx := context.Background()
	_ = h.users.Insert(ctx, user("root", m.RoleSuperUser, nil))
	svc := h.reportService()
	r := submit(t, h, "staff-apps")

	wantDeny(t, svc.Delete(ctx, h.actor("vp"), r.ID), DenyNotOwner)
	if err := svc.Delete(ctx, h.actor("root"), r.ID); err != nil {
		t.Fatalf("superuser delete: %v", err)
	}
	wantKind(t, svc.Delete(ctx, h.actor("root"), r.ID), apperr.KindNotFound)
}

func TestReportComments(t *testing.T) {
	h := field()
	svc := h.reportService()
	ctx := context.Background()
	r := submit(t, h, "staff-apps")

	_, err := svc.AddComment(ctx, h.actor("spv-ts"), r.ID, "   ")
	wantKind(t, err, apperr.KindValidation)
	must[*m.Comment](t)(svc.AddComment(ctx, h.actor("staff-apps"), r.ID, "self note"))
	must[*m.Comment](t)(svc.AddComment(ctx, h.actor("spv-ts"), r.ID, "looks fine"))

	stored, _ := h.reports.Get(ctx, r.ID)
	if len(stored.Comments) != 2 {
		t.Fatalf("comments=%d", len(stored.Comments))
	}
	got := h.noti.to("staff-apps")
	if len(got) != 1 || got[0].Kind != NotiReportComment {
		t.Fatalf("only the other commenter notifies, got %+v", got)
	}
}

func TestReportStatistics(t *testing.T) {
	h := field()
	ctx := context.Background()
	cat := "cat-survey"
	for i, c := range []struct {
		name string
		at   time.Time
		cat  *string
	}{
		{"Alice", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), &cat},
		{"Alice", time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC), nil},
		{"Bob", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), &cat},
		{"Bob", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), &cat},
	} {
		_ = h.reports.Insert(ctx, &m.Report{ID: string(rune('a' + i)), SubmittedByName: c.name, CategoryID: c.cat, CreatedAt: c.at})
	}
	svc := h.reportService()

	got := must[[]m.SubmitterCount](t)(svc.Statistics(ctx, 3, 2025, "all"))
	if len(got) != 2 || got[0] != (m.SubmitterCount{Name: "Alice", Value: 2}) || got[1] != (m.SubmitterCount{Name: "Bob", Value: 1}) {
		t.Fatalf("march=%+v", got)
	}
	got = must[[]m.SubmitterCount](t)(svc.Statistics(ctx, 3, 2025, cat))
	if len(got) != 2 || got[0].Value != 1 || got[1].Value != 1 {
		t.Fatalf("march survey=%+v", got)
	}

	_, err := svc.Statistics(ctx, 13, 2025, "")
	wantKind(t, err, apperr.KindValidation)
}

func TestCreateReportStorageFailure(t *testing.T) {
	h := field()
	h.files.err = errors.New("disk full")
	_, err := h.reportService().Create(context.Background(), h.actor("staff-apps"), ReportInput{Title: "t"}, attachment("a.pdf", "x"))
	wantKind(t, err, apperr.KindInternal)
	if len(h.reports.all()) != 0 {
		t.Fatalf("report inserted after storage failure")
	}
}
