package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ScheduleInput struct {
	UserID      string
	Title       string
	Description string
	StartDate   time.Time
	// EndDate defaults to the end of the start day.
	EndDate    *time.Time
	CategoryID *string
	SiteID     *string
	TicketID   *string
}

// ScheduleUpdate carries partial changes; nil fields are left alone and an
// empty SiteID clears the site.
type ScheduleUpdate struct {
	UserID      *string
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	SiteID      *string
}

type BulkResult struct {
	Created int      `json:"created_count"`
	Errors  []string `json:"errors"`
}

type ScheduleService struct {
	schedules  ScheduleStore
	users      UserStore
	sites      SiteStore
	categories CategoryStore
	tickets    TicketStore
	notifier   Notifier
	log        zerolog.Logger
	now        Clock
}

func NewScheduleService(schedules ScheduleStore, users UserStore, sites SiteStore, categories CategoryStore,
	tickets TicketStore, notifier Notifier, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		schedules:  schedules,
		users:      users,
		sites:      sites,
		categories: categories,
		tickets:    tickets,
		notifier:   notifier,
		log:        log,
		now:        systemClock,
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 and the ISO-like local forms clients send.
// Times without a zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func (s *ScheduleService) insert(ctx context.Context, actor m.Actor, owner *m.User, sch *m.Schedule) error {
	sch.ID = m.NewID()
	sch.UserID = owner.ID
	sch.UserName = owner.Username
	sch.Division = owner.Division
	sch.CreatedBy = actor.ID
	sch.CreatedAt = s.now()
	if err := s.schedules.Insert(ctx, sch); err != nil {
		return err
	}
	s.notifier.Notify(ctx, owner.ID, NotiScheduleAssigned, m.NotiParams{Subject: sch.Title}, sch.ID)
	return nil
}

// Create schedules in.UserID. The schedule's division is the owner's.
func (s *ScheduleService) Create(ctx context.Context, actor m.Actor, in ScheduleInput) (*m.Schedule, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if in.UserID == "" {
		return nil, apperr.Validation("user_id", "user_id is required")
	}
	if in.StartDate.IsZero() {
		return nil, apperr.Validation("start_date", "start_date is required")
	}
	owner, err := s.users.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := CanManageSchedule(actor, ScheduleTarget{Division: owner.Division}, OpCreate).Err(); err != nil {
		return nil, err
	}
	start := in.StartDate.UTC()
	end := m.EndOfDay(start)
	if in.EndDate != nil {
		end = in.EndDate.UTC()
	}
	if end.Before(start) {
		return nil, apperr.Validation("end_date", "end date must not be before start date")
	}

	sch := &m.Schedule{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartDate:   start,
		EndDate:     end,
	}
	if id := nonEmpty(in.CategoryID); id != nil {
		cat, err := s.categories.Get(ctx, *id)
		if err != nil {
			return nil, err
		}
		sch.CategoryID, sch.CategoryName = id, &cat.Name
	}
	if id := nonEmpty(in.SiteID); id != nil {
		site, err := s.sites.Get(ctx, *id)
		if err != nil {
			return nil, err
		}
		sch.SiteID, sch.SiteName = id, &site.Name
	}
	if id := nonEmpty(in.TicketID); id != nil {
		if _, err := s.tickets.Get(ctx, *id); err != nil {
			return nil, err
		}
		sch.TicketID = id
	}
	if err := s.insert(ctx, actor, owner, sch); err != nil {
		return nil, err
	}
	s.log.Info().Str("schedule_id", sch.ID).Str("user_id", owner.ID).Str("by", actor.ID).Msg("schedule created")
	return sch, nil
}

// BulkUpload creates schedules from a .csv or .xlsx sheet with columns
// user_email, title, description, start_date, end_date. Bad rows are
// reported and skipped; row numbers count the header as row 1.
func (s *ScheduleService) BulkUpload(ctx context.Context, actor m.Actor, fileName string, body io.Reader) (*BulkResult, error) {
	if err := CanManageSchedule(actor, ScheduleTarget{Division: actor.Division}, OpCreate).Err(); err != nil {
		return nil, err
	}
	records, err := readSheet(fileName, body)
	if err != nil {
		return nil, err
	}

	res := &BulkResult{Errors: []string{}}
	for _, row := range records {
		if err := s.createFromRow(ctx, actor, row.Fields); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %s", row.Num, err))
			continue
		}
		res.Created++
	}
	s.log.Info().Int("created", res.Created).Int("errors", len(res.Errors)).Str("by", actor.ID).Msg("schedule bulk upload")
	return res, nil
}

type rowError string

func (e rowError) Error() string { return string(e) }

func (s *ScheduleService) createFromRow(ctx context.Context, actor m.Actor, row map[string]string) error {
	email := strings.ToLower(strings.TrimSpace(row["user_email"]))
	owner, err := s.users.GetByEmail(ctx, email)
	if apperr.Is(err, apperr.KindNotFound) {
		return rowError("User not found - " + row["user_email"])
	}
	if err != nil {
		return err
	}
	if !CanManageSchedule(actor, ScheduleTarget{Division: owner.Division}, OpCreate).Allowed {
		return rowError("Cannot assign schedule to user from different division")
	}
	title := strings.TrimSpace(row["title"])
	if title == "" {
		return rowError("title is required")
	}
	start, err := ParseTime(row["start_date"])
	if err != nil {
		return err
	}
	end := m.EndOfDay(start)
	if v := strings.TrimSpace(row["end_date"]); v != "" {
		if end, err = ParseTime(v); err != nil {
			return err
		}
	}
	if end.Before(start) {
		return rowError("end date must not be before start date")
	}
	return s.insert(ctx, actor, owner, &m.Schedule{
		Title:       title,
		Description: row["description"],
		StartDate:   start,
		EndDate:     end,
	})
}

func (s *ScheduleService) List(ctx context.Context) ([]m.Schedule, error) {
	return s.schedules.Find(ctx, repo.ScheduleFilter{})
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*m.Schedule, error) {
	return s.schedules.Get(ctx, id)
}

func (s *ScheduleService) Update(ctx context.Context, actor m.Actor, id string, in ScheduleUpdate) (*m.Schedule, error) {
	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	target := ScheduleTarget{Division: sch.Division, CreatedBy: sch.CreatedBy}
	if err := CanManageSchedule(actor, target, OpEdit).Err(); err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.UserID != nil && *in.UserID != "" && *in.UserID != sch.UserID {
		owner, err := s.users.Get(ctx, *in.UserID)
		if err != nil {
			return nil, err
		}
		if err := CanManageSchedule(actor, ScheduleTarget{Division: owner.Division}, OpCreate).Err(); err != nil {
			return nil, err
		}
		set["user_id"] = owner.ID
		set["user_name"] = owner.Username
		set["division"] = owner.Division
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation("title", "title cannot be empty")
		}
		set["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	start, end := sch.StartDate, sch.EndDate
	if in.StartDate != nil {
		start = in.StartDate.UTC()
		set["start_date"] = start
	}
	if in.EndDate != nil {
		end = in.EndDate.UTC()
		set["end_date"] = end
	}
	if end.Before(start) {
		return nil, apperr.Validation("end_date", "end date must not be before start date")
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
	if len(set) == 0 {
		return sch, nil
	}
	if err := s.schedules.UpdateFields(ctx, sch.ID, set); err != nil {
		return nil, err
	}
	return s.schedules.Get(ctx, sch.ID)
}

func (s *ScheduleService) Delete(ctx context.Context, actor m.Actor, id string) error {
	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return err
	}
	target := ScheduleTarget{Division: sch.Division, CreatedBy: sch.CreatedBy}
	if err := CanManageSchedule(actor, target, OpDelete).Err(); err != nil {
		return err
	}
	if err := s.schedules.Delete(ctx, sch.ID); err != nil {
		return err
	}
	s.log.Info().Str("schedule_id", sch.ID).Str("by", actor.ID).Msg("schedule deleted")
	return nil
}
