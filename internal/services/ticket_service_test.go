package services

import (
	"context"
	"testing"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func ticketHarness() *harness {
	return newHarness(
		user("vp", m.RoleVP, nil),
		user("mgr-infra", m.RoleManager, div(m.DivisionInfra)),
		user("staff-fz", m.RoleStaff, div(m.DivisionFiberzone)),
	)
}

func openTicket(t *testing.T, h *harness) *m.Ticket {
	t.Helper()
	return must[*m.Ticket](t)(h.ticketService().Create(context.Background(), h.actor("vp"), TicketInput{
		Title: "Fiber cut", Priority: "high", AssignedToDivision: m.DivisionFiberzone, SiteID: str(siteA),
	}))
}

func TestCreateTicket(t *testing.T) {
	h := ticketHarness()
	svc := h.ticketService()
	ctx := context.Background()

	_, err := svc.Create(ctx, h.actor("vp"), TicketInput{Title: "x", Priority: "low", AssignedToDivision: "Sales"})
	wantInvalid(t, err, "assigned_to_division")
	_, err = svc.Create(ctx, h.actor("vp"), TicketInput{Title: "x", AssignedToDivision: m.DivisionInfra})
	wantInvalid(t, err, "priority")

	tk := openTicket(t, h)
	if tk.Status != m.TicketOpen || *tk.SiteName != "Site A - Main Office" || tk.CreatedByName != "vp" {
		t.Fatalf("ticket=%+v", tk)
	}
	n := h.noti.to("mgr-infra")
	if len(n) != 1 || n[0].Kind != NotiTicketAssigned || n[0].Params.Priority != "high" || n[0].RelatedID != tk.ID {
		t.Fatalf("routed manager notifications=%+v", n)
	}
}

func TestPatchAndEditTicket(t *testing.T) {
	h := ticketHarness()
	svc := h.ticketService()
	ctx := context.Background()
	tk := openTicket(t, h)

	closed := m.TicketClosed
	_, err := svc.Patch(ctx, tk.ID, TicketPatch{Status: &closed})
	wantInvalid(t, err, "status")
	bogus := m.TicketStatus("Done")
	_, err = svc.Patch(ctx, tk.ID, TicketPatch{Status: &bogus})
	wantInvalid(t, err, "status")
	_, err = svc.Patch(ctx, tk.ID, TicketPatch{AssignedTo: str("ghost")})
	wantKind(t, err, apperr.KindNotFound)

	progress := m.TicketInProgress
	got := must[*m.Ticket](t)(svc.Patch(ctx, tk.ID, TicketPatch{Status: &progress, AssignedTo: str("staff-fz")}))
	if got.Status != m.TicketInProgress || *got.AssignedTo != "staff-fz" {
		t.Fatalf("patched=%+v", got)
	}

	got = must[*m.Ticket](t)(svc.Edit(ctx, tk.ID, TicketEdit{Title: " Fiber cut km 12 ", SiteID: str("")}))
	if got.Title != "Fiber cut km 12" || got.SiteID != nil || got.Priority != "high" {
		t.Fatalf("edited=%+v", got)
	}
	_, err = svc.Edit(ctx, "missing", TicketEdit{Title: "x"})
	wantKind(t, err, apperr.KindNotFound)
}

func TestCloseTicketRequiresFinalReport(t *testing.T) {
	h := ticketHarness()
	svc := h.ticketService()
	ctx := context.Background()
	tk := openTicket(t, h)

	report := &m.Report{ID: "rep-1", Title: "splice", Status: m.ReportPendingManager, SubmittedBy: "staff-fz", Version: 1}
	if err := h.reports.Insert(ctx, report); err != nil {
		t.Fatal(err)
	}
	wantKind(t, svc.LinkReport(ctx, tk.ID, "nope"), apperr.KindNotFound)
	if err := svc.LinkReport(ctx, tk.ID, report.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	wantInvalid(t, svc.Close(ctx, h.actor("mgr-infra"), tk.ID), "linked_report_id")

	if err := h.reports.update(report.ID, nil, bson.M{"status": m.ReportFinal}, nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.Close(ctx, h.actor("mgr-infra"), tk.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := must[*m.Ticket](t)(svc.Get(ctx, tk.ID)); got.Status != m.TicketClosed {
		t.Fatalf("status=%s", got.Status)
	}
}

func TestCloseTicketWithDeletedReport(t *testing.T) {
	h := ticketHarness()
	svc := h.ticketService()
	ctx := context.Background()
	tk := openTicket(t, h)
	if err := h.reports.Insert(ctx, &m.Report{ID: "rep-1", Status: m.ReportFinal}); err != nil {
		t.Fatal(err)
	}
	if err := svc.LinkReport(ctx, tk.ID, "rep-1"); err != nil {
		t.Fatal(err)
	}
	if err := h.reports.Delete(ctx, "rep-1"); err != nil {
		t.Fatal(err)
	}
	wantInvalid(t, svc.Close(ctx, h.actor("vp"), tk.ID), "linked_report_id")
}

func TestUnlinkedTicketClosesAndTakesComments(t *testing.T) {
	h := ticketHarness()
	svc := h.ticketService()
	ctx := context.Background()
	tk := openTicket(t, h)

	_, err := svc.AddComment(ctx, h.actor("staff-fz"), tk.ID, "  ")
	wantInvalid(t, err, "comment")
	c := must[*m.TicketComment](t)(svc.AddComment(ctx, h.actor("staff-fz"), tk.ID, "on my way"))
	if c.UserName != "staff-fz" || !c.CreatedAt.Equal(testNow) {
		t.Fatalf("comment=%+v", c)
	}

	if err := svc.Close(ctx, h.actor("vp"), tk.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	got := must[*m.Ticket](t)(svc.Get(ctx, tk.ID))
	if got.Status != m.TicketClosed || len(got.Comments) != 1 {
		t.Fatalf("ticket=%+v", got)
	}
	if list := must[[]m.Ticket](t)(svc.List(ctx, siteA)); len(list) != 1 {
		t.Fatalf("site filter returned %d", len(list))
	}
	if list := must[[]m.Ticket](t)(svc.List(ctx, "site-b")); len(list) != 0 {
		t.Fatalf("other site returned %d", len(list))
	}
}
