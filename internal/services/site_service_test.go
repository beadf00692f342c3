package services

import (
	"context"
	"testing"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
)

func TestSiteLifecycle(t *testing.T) {
	h := newHarness(user("vp", m.RoleVP, nil))
	svc := NewSiteService(h.sites, h.categories, nopLog())
	svc.now = fixedClock
	ctx := context.Background()

	_, err := svc.CreateSite(ctx, h.actor("vp"), SiteInput{Name: "  "})
	wantInvalid(t, err, "name")

	loc := "Bali"
	site := must[*m.Site](t)(svc.CreateSite(ctx, h.actor("vp"), SiteInput{Name: " Site B ", Location: &loc}))
	if site.Name != "Site B" || site.Status != m.SiteActive || site.CreatedBy != "vp" {
		t.Fatalf("site=%+v", site)
	}

	bad := m.SiteStatus("closed")
	_, err = svc.UpdateSite(ctx, site.ID, SiteUpdate{Status: &bad})
	wantInvalid(t, err, "status")
	got := must[*m.Site](t)(svc.UpdateSite(ctx, site.ID, SiteUpdate{Name: str("Site B - DC")}))
	if got.Name != "Site B - DC" || *got.Location != "Bali" {
		t.Fatalf("updated=%+v", got)
	}

	if err := svc.DeleteSite(ctx, site.ID); err != nil {
		t.Fatal(err)
	}
	if all := must[[]m.Site](t)(svc.ListSites(ctx, false)); len(all) != 2 {
		t.Fatalf("all sites=%d", len(all))
	}
	active := must[[]m.Site](t)(svc.ListSites(ctx, true))
	if len(active) != 1 || active[0].ID != siteA {
		t.Fatalf("active=%+v", active)
	}
	wantKind(t, svc.DeleteSite(ctx, "missing"), apperr.KindNotFound)
}

func TestCategoriesAreSuperUserOnly(t *testing.T) {
	h := newHarness(user("root", m.RoleSuperUser, nil), user("vp", m.RoleVP, nil))
	svc := NewSiteService(h.sites, h.categories, nopLog())
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, h.actor("vp"), "Audit")
	wantDeny(t, err, DenyWrongRole)
	_, err = svc.CreateCategory(ctx, h.actor("root"), "Survey")
	wantKind(t, err, apperr.KindConflict)

	c := must[*m.ActivityCategory](t)(svc.CreateCategory(ctx, h.actor("root"), " Audit "))
	if c.Name != "Audit" {
		t.Fatalf("category=%+v", c)
	}
	wantDeny(t, svc.DeleteCategory(ctx, h.actor("vp"), c.ID), DenyWrongRole)
	if err := svc.DeleteCategory(ctx, h.actor("root"), c.ID); err != nil {
		t.Fatal(err)
	}
	if cats := must[[]m.ActivityCategory](t)(svc.ListCategories(ctx)); len(cats) != 1 {
		t.Fatalf("categories=%+v", cats)
	}
}
