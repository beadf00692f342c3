package services

import (
	"context"
	"strings"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type TicketInput struct {
	Title              string
	Description        string
	Priority           string
	AssignedToDivision m.Division
	SiteID             *string
}

// TicketPatch changes workflow fields. Closing goes through Close.
type TicketPatch struct {
	Status     *m.TicketStatus
	AssignedTo *string
}

// TicketEdit is a full edit; empty strings leave fields unchanged and an
// empty SiteID clears the site.
type TicketEdit struct {
	Title              string
	Description        string
	Priority           string
	AssignedToDivision m.Division
	SiteID             *string
}

type TicketService struct {
	tickets  TicketStore
	reports  ReportStore
	sites    SiteStore
	users    UserStore
	notifier Notifier
	log      zerolog.Logger
	now      Clock
}

func NewTicketService(tickets TicketStore, reports ReportStore, sites SiteStore, users UserStore,
	notifier Notifier, log zerolog.Logger) *TicketService {
	return &TicketService{
		tickets:  tickets,
		reports:  reports,
		sites:    sites,
		users:    users,
		notifier: notifier,
		log:      log,
		now:      systemClock,
	}
}

func (s *TicketService) Create(ctx context.Context, actor m.Actor, in TicketInput) (*m.Ticket, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if strings.TrimSpace(in.Priority) == "" {
		return nil, apperr.Validation("priority", "priority is required")
	}
	if !in.AssignedToDivision.Valid() {
		return nil, apperr.Validation("assigned_to_division", "invalid division")
	}
	now := s.now()
	t := &m.Ticket{
		ID:                 m.NewID(),
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		Priority:           strings.TrimSpace(in.Priority),
		Status:             m.TicketOpen,
		AssignedToDivision: in.AssignedToDivision,
		CreatedBy:          actor.ID,
		CreatedByName:      actor.Name,
		Comments:           []m.TicketComment{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if id := nonEmpty(in.SiteID); id != nil {
		site, err := s.sites.Get(ctx, *id)
		if err != nil {
			return nil, err
		}
		t.SiteID, t.SiteName = id, &site.Name
	}
	if err := s.tickets.Insert(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().Str("ticket_id", t.ID).Str("division", string(t.AssignedToDivision)).Msg("ticket created")

	div := RoutingDivision(t.AssignedToDivision)
	mgr, err := s.users.FindApprover(ctx, m.RoleManager, &div)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("ticket_id", t.ID).Msg("ticket: manager lookup failed")
	case mgr != nil:
		s.notifier.Notify(ctx, mgr.ID, NotiTicketAssigned, m.NotiParams{Subject: t.Title, Priority: t.Priority}, t.ID)
	}
	return t, nil
}

func (s *TicketService) List(ctx context.Context, siteID string) ([]m.Ticket, error) {
	return s.tickets.Find(ctx, repo.TicketFilter{SiteID: siteID})
}

func (s *TicketService) Get(ctx context.Context, id string) (*m.Ticket, error) {
	return s.tickets.Get(ctx, id)
}

func (s *TicketService) Patch(ctx context.Context, id string, in TicketPatch) (*m.Ticket, error) {
	set := bson.M{"updated_at": s.now()}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("status", "invalid ticket status")
		}
		if *in.Status == m.TicketClosed {
			return nil, apperr.Validation("status", "use the close action to close a ticket")
		}
		set["status"] = *in.Status
	}
	if in.AssignedTo != nil {
		if *in.AssignedTo != "" {
			if _, err := s.users.Get(ctx, *in.AssignedTo); err != nil {
				return nil, err
			}
		}
		set["assigned_to"] = nonEmpty(in.AssignedTo)
	}
	if err := s.tickets.UpdateFields(ctx, id, set); err != nil {
		return nil, err
	}
	return s.tickets.Get(ctx, id)
}

func (s *TicketService) Edit(ctx context.Context, id string, in TicketEdit) (*m.Ticket, error) {
	if _, err := s.tickets.Get(ctx, id); err != nil {
		return nil, err
	}
	set := bson.M{"updated_at": s.now()}
	if v := strings.TrimSpace(in.Title); v != "" {
		set["title"] = v
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if v := strings.TrimSpace(in.Priority); v != "" {
		set["priority"] = v
	}
	if in.AssignedToDivision != "" {
		if !in.AssignedToDivision.Valid() {
			return nil, apperr.Validation("assigned_to_division", "invalid division")
		}
		set["assigned_to_division"] = in.AssignedToDivision
	}
	if in.SiteID != nil {
		if *in.SiteID == "" {
			set["site_id"] = nil
			set["site_name"] = nil
		} else {
			site, err := s.sites.Get(ctx, *in.SiteID)
			if err != nil {
				return nil, err
			}
			set["site_id"] = site.ID
			set["site_name"] = site.Name
		}
	}
	if err := s.tickets.UpdateFields(ctx, id, set); err != nil {
		return nil, err
	}
	return s.tickets.Get(ctx, id)
}

// Close closes a ticket. A linked report must exist and be Final; the
// write is conditional on the link not having changed since the check.
func (s *TicketService) Close(ctx context.Context, actor m.Actor, id string) error {
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.LinkedReportID != nil {
		r, err := s.reports.Get(ctx, *t.LinkedReportID)
		if err != nil && !apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		if r == nil || r.Status != m.ReportFinal {
			return apperr.Validation("linked_report_id", "cannot close ticket: linked report is not yet approved")
		}
	}
	if err := s.tickets.CloseIf(ctx, t.ID, t.LinkedReportID); err != nil {
		return err
	}
	s.log.Info().Str("ticket_id", t.ID).Str("by", actor.ID).Msg("ticket closed")
	return nil
}

func (s *TicketService) AddComment(ctx context.Context, actor m.Actor, id, text string) (*m.TicketComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("comment", "comment cannot be empty")
	}
	c := m.TicketComment{
		ID:        m.NewID(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Comment:   text,
		CreatedAt: s.now(),
	}
	if err := s.tickets.PushComment(ctx, id, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *TicketService) LinkReport(ctx context.Context, id, reportID string) error {
	if _, err := s.reports.Get(ctx, reportID); err != nil {
		return err
	}
	return s.tickets.UpdateFields(ctx, id, bson.M{"linked_report_id": reportID, "updated_at": s.now()})
}
