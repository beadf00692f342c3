package services

import (
	"context"
	"strings"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type SiteInput struct {
	Name        string
	Location    *string
	Description *string
}

// SiteUpdate leaves nil fields unchanged.
type SiteUpdate struct {
	Name        *string
	Location    *string
	Description *string
	Status      *m.SiteStatus
}

// SiteService manages sites and activity categories.
type SiteService struct {
	sites      SiteStore
	categories CategoryStore
	log        zerolog.Logger
	now        Clock
}

func NewSiteService(sites SiteStore, categories CategoryStore, log zerolog.Logger) *SiteService {
	return &SiteService{sites: sites, categories: categories, log: log, now: systemClock}
}

func (s *SiteService) CreateSite(ctx context.Context, actor m.Actor, in SiteInput) (*m.Site, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	site := &m.Site{
		ID:          m.NewID(),
		Name:        name,
		Location:    in.Location,
		Description: in.Description,
		Status:      m.SiteActive,
		CreatedBy:   actor.ID,
		CreatedAt:   s.now(),
	}
	if err := s.sites.Insert(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *SiteService) ListSites(ctx context.Context, activeOnly bool) ([]m.Site, error) {
	return s.sites.Find(ctx, activeOnly)
}

func (s *SiteService) GetSite(ctx context.Context, id string) (*m.Site, error) {
	return s.sites.Get(ctx, id)
}

func (s *SiteService) UpdateSite(ctx context.Context, id string, in SiteUpdate) (*m.Site, error) {
	set := bson.M{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.Validation("name", "name cannot be empty")
		}
		set["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		set["location"] = *in.Location
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Status != nil {
		if *in.Status != m.SiteActive && *in.Status != m.SiteInactive {
			return nil, apperr.Validation("status", "status must be active or inactive")
		}
		set["status"] = *in.Status
	}
	if len(set) > 0 {
		if err := s.sites.UpdateFields(ctx, id, set); err != nil {
			return nil, err
		}
	}
	return s.sites.Get(ctx, id)
}

// DeleteSite marks the site inactive; schedules and reports keep their
// denormalized site name.
func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	return s.sites.UpdateFields(ctx, id, bson.M{"status": m.SiteInactive})
}

func (s *SiteService) ListCategories(ctx context.Context) ([]m.ActivityCategory, error) {
	return s.categories.FindAll(ctx)
}

func (s *SiteService) CreateCategory(ctx context.Context, actor m.Actor, name string) (*m.ActivityCategory, error) {
	if err := CanManageCategories(actor).Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	c := &m.ActivityCategory{ID: m.NewID(), Name: name, CreatedAt: s.now()}
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("category", c.Name).Msg("category created")
	return c, nil
}

func (s *SiteService) DeleteCategory(ctx context.Context, actor m.Actor, id string) error {
	if err := CanManageCategories(actor).Err(); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
