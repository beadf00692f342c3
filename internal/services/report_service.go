package services

import (
	"context"
	"strings"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/storage"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel/attribute"
)

type ReportInput struct {
	Title       string
	Description string
	CategoryID  *string
	SiteID      *string
	TicketID    *string
}

// ReportEdit carries an owner's changes. A nil pointer leaves the field
// alone; an empty SiteID or TicketID clears it.
type ReportEdit struct {
	Title       *string
	Description *string
	SiteID      *string
	TicketID    *string
}

type ReportService struct {
	reports    ReportStore
	users      UserStore
	sites      SiteStore
	categories CategoryStore
	tickets    TicketStore
	files      AttachmentStore
	notifier   Notifier
	log        zerolog.Logger
	now        Clock
}

func NewReportService(reports ReportStore, users UserStore, sites SiteStore, categories CategoryStore,
	tickets TicketStore, files AttachmentStore, notifier Notifier, log zerolog.Logger) *ReportService {
	return &ReportService{
		reports:    reports,
		users:      users,
		sites:      sites,
		categories: categories,
		tickets:    tickets,
		files:      files,
		notifier:   notifier,
		log:        log,
		now:        systemClock,
	}
}

// approverFor finds the approver holding role. VP is global; SPV and
// Manager come from the given (already routed) division.
func (s *ReportService) approverFor(ctx context.Context, role m.Role, division *m.Division) (*m.User, error) {
	if role == m.RoleVP {
		return s.users.FindApprover(ctx, m.RoleVP, nil)
	}
	if division == nil {
		return nil, nil
	}
	return s.users.FindApprover(ctx, role, division)
}

func (s *ReportService) siteName(ctx context.Context, id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	site, err := s.sites.Get(ctx, *id)
	if err != nil {
		return nil, err
	}
	return &site.Name, nil
}

func (s *ReportService) storeFile(ctx context.Context, siteName *string, file *Attachment) (string, error) {
	name := storedName("report_", s.now(), file.Name)
	url, err := s.files.Put(ctx, storage.ReportFolder(siteName), name, file.Body, file.Size, file.ContentType)
	if err != nil {
		return "", apperr.Wrap(err, "store report file")
	}
	return url, nil
}

// Create stores the attachment and opens a report at the creator's entry
// stage.
func (s *ReportService) Create(ctx context.Context, actor m.Actor, in ReportInput, file *Attachment) (_ *m.Report, err error) {
	ctx, span := startSpan(ctx, "report.create", attribute.String("actor", actor.ID))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if file == nil {
		return nil, apperr.Validation("file", "file is required")
	}
	siteName, err := s.siteName(ctx, in.SiteID)
	if err != nil {
		return nil, err
	}
	var categoryName *string
	if in.CategoryID != nil && *in.CategoryID != "" {
		cat, err := s.categories.Get(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		categoryName = &cat.Name
	}
	if in.TicketID != nil && *in.TicketID != "" {
		if _, err := s.tickets.Get(ctx, *in.TicketID); err != nil {
			return nil, err
		}
	}

	url, err := s.storeFile(ctx, siteName, file)
	if err != nil {
		return nil, err
	}

	status, role := InitialRoute(actor.Role)
	approver, err := s.approverFor(ctx, role, routed(actor.Division))
	if err != nil {
		return nil, err
	}
	now := s.now()
	r := &m.Report{
		ID:              m.NewID(),
		CategoryID:      nonEmpty(in.CategoryID),
		CategoryName:    categoryName,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		FileName:        file.Name,
		FileURL:         url,
		Status:          status,
		SubmittedBy:     actor.ID,
		SubmittedByName: actor.Name,
		Version:         1,
		TicketID:        nonEmpty(in.TicketID),
		SiteID:          nonEmpty(in.SiteID),
		SiteName:        siteName,
		Comments:        []m.Comment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if approver != nil {
		r.CurrentApprover = &approver.ID
	}
	if err := s.reports.Insert(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info().Str("report_id", r.ID).Str("status", string(r.Status)).Msg("report submitted")

	if approver != nil {
		s.notifier.Notify(ctx, approver.ID, NotiReportSubmitted, m.NotiParams{
			ActorName: actor.Name,
			Subject:   r.Title,
		}, r.ID)
	} else {
		s.log.Warn().Str("report_id", r.ID).Str("role", string(role)).Msg("report: no approver available")
	}
	return r, nil
}

func (s *ReportService) List(ctx context.Context, siteID string) ([]m.Report, error) {
	return s.reports.Find(ctx, repo.ReportFilter{SiteID: siteID})
}

func (s *ReportService) Get(ctx context.Context, id string) (*m.Report, error) {
	return s.reports.Get(ctx, id)
}

// submitterDivision returns the division of the report's submitter, nil if
// the user is gone.
func (s *ReportService) submitterDivision(ctx context.Context, r *m.Report) (*m.Division, error) {
	u, err := s.users.Get(ctx, r.SubmittedBy)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u.Division, nil
}

// Approve runs one approval step. The write is conditional on the status
// and approver the decision was made against.
func (s *ReportService) Approve(ctx context.Context, actor m.Actor, id string, action ReportAction, comment string) (_ *m.Report, err error) {
	ctx, span := startSpan(ctx, "report.approve",
		attribute.String("report_id", id), attribute.String("action", string(action)))
	defer func() { endSpan(span, err) }()

	r, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	div, err := s.submitterDivision(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := CanApproveReport(actor, r, div).Err(); err != nil {
		return nil, err
	}
	tr, err := Advance(r.Status, actor.Role, action, comment)
	if err != nil {
		return nil, err
	}

	now := s.now()
	set := bson.M{"status": tr.Next, "updated_at": now}
	approver := r.CurrentApprover
	switch tr.Approver {
	case ApproverUnchanged:
	case ApproverNone:
		approver = nil
	case ApproverVP, ApproverDivisionManager:
		role := m.RoleVP
		if tr.Approver == ApproverDivisionManager {
			role = m.RoleManager
		}
		u, err := s.approverFor(ctx, role, routed(div))
		if err != nil {
			return nil, err
		}
		approver = nil
		if u != nil {
			approver = &u.ID
		}
	}
	if tr.Approver != ApproverUnchanged {
		set["current_approver"] = approver
	}
	if tr.Next == m.ReportRevisi {
		c := strings.TrimSpace(comment)
		set["rejection_comment"] = c
		r.RejectionComment = &c
	}

	if err := s.reports.TransitionIf(ctx, r.ID, r.Status, r.CurrentApprover, set); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("report was updated by someone else")
		}
		return nil, err
	}
	s.log.Info().Str("report_id", r.ID).Str("from", string(r.Status)).Str("to", string(tr.Next)).
		Str("by", actor.ID).Msg("report transition")

	r.Status = tr.Next
	r.CurrentApprover = approver
	r.UpdatedAt = now

	switch {
	case tr.NotifySubmitter && tr.Next == m.ReportRevisi:
		s.notifier.Notify(ctx, r.SubmittedBy, NotiReportRevisi, m.NotiParams{Subject: r.Title, Comment: *r.RejectionComment}, r.ID)
	case tr.NotifySubmitter:
		s.notifier.Notify(ctx, r.SubmittedBy, NotiReportApproved, m.NotiParams{Subject: r.Title}, r.ID)
	case approver != nil:
		s.notifier.Notify(ctx, *approver, NotiReportAwaitingApproval, m.NotiParams{Subject: r.Title}, r.ID)
	}
	return r, nil
}

// resubmissionApprover walks SPV, Manager, VP in the submitter's routed
// division and returns the first one found.
func (s *ReportService) resubmissionApprover(ctx context.Context, division *m.Division) (*m.User, m.Role, error) {
	for _, role := range entryChain {
		u, err := s.approverFor(ctx, role, routed(division))
		if err != nil {
			return nil, "", err
		}
		if u != nil {
			return u, role, nil
		}
	}
	return nil, "", nil
}

// Edit applies an owner's changes. Editing a report in Revisi resubmits it.
func (s *ReportService) Edit(ctx context.Context, actor m.Actor, id string, in ReportEdit, file *Attachment) (_ *m.Report, err error) {
	ctx, span := startSpan(ctx, "report.edit", attribute.String("report_id", id))
	defer func() { endSpan(span, err) }()

	r, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanEditReport(actor, r).Err(); err != nil {
		return nil, err
	}

	set := bson.M{}
	title := r.Title
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.Validation("title", "title cannot be empty")
		}
		set["title"] = title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	siteName := r.SiteName
	if in.SiteID != nil {
		siteName, err = s.siteName(ctx, in.SiteID)
		if err != nil {
			return nil, err
		}
		set["site_id"] = nonEmpty(in.SiteID)
		set["site_name"] = siteName
	}
	if in.TicketID != nil {
		if *in.TicketID != "" {
			if _, err := s.tickets.Get(ctx, *in.TicketID); err != nil {
				return nil, err
			}
		}
		set["ticket_id"] = nonEmpty(in.TicketID)
	}
	if file != nil {
		url, err := s.storeFile(ctx, siteName, file)
		if err != nil {
			return nil, err
		}
		set["file_name"] = file.Name
		set["file_url"] = url
	}

	var next *m.User
	if r.Status == m.ReportRevisi {
		div, err := s.submitterDivision(ctx, r)
		if err != nil {
			return nil, err
		}
		u, role, err := s.resubmissionApprover(ctx, div)
		if err != nil {
			return nil, err
		}
		if u != nil {
			status, _ := m.PendingStatusFor(role)
			set["status"] = status
			set["current_approver"] = u.ID
			set["rejection_comment"] = nil
			next = u
		} else {
			s.log.Warn().Str("report_id", r.ID).Msg("report: resubmitted with no approver available")
		}
	}
	set["updated_at"] = s.now()

	if err := s.reports.UpdateIfVersion(ctx, r.ID, r.Version, set); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("report was updated by someone else")
		}
		return nil, err
	}
	if next != nil {
		s.notifier.Notify(ctx, next.ID, NotiReportResubmitted, m.NotiParams{Subject: title}, r.ID)
	}
	return s.reports.Get(ctx, r.ID)
}

func (s *ReportService) Delete(ctx context.Context, actor m.Actor, id string) error {
	r, err := s.reports.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := CanDeleteReport(actor, r).Err(); err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("report_id", id).Str("by", actor.ID).Msg("report deleted")
	return nil
}

func (s *ReportService) AddComment(ctx context.Context, actor m.Actor, id, text string) (*m.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text", "comment cannot be empty")
	}
	r, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := m.Comment{
		ID:        m.NewID(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.reports.PushComment(ctx, r.ID, c); err != nil {
		return nil, err
	}
	if r.SubmittedBy != actor.ID {
		s.notifier.Notify(ctx, r.SubmittedBy, NotiReportComment, m.NotiParams{ActorName: actor.Name, Subject: r.Title}, r.ID)
	}
	return &c, nil
}

// Statistics counts reports per submitter for one calendar month (UTC).
// categoryID "" or "all" means every category.
func (s *ReportService) Statistics(ctx context.Context, month, year int, categoryID string) ([]m.SubmitterCount, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Validation("month", "month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return nil, apperr.Validation("year", "invalid year")
	}
	if categoryID == "all" {
		categoryID = ""
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return s.reports.CountBySubmitter(ctx, from, from.AddDate(0, 1, 0), categoryID)
}

func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
