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
)

type ActivityInput struct {
	ScheduleID string
	Action     m.ActivityAction
	Notes      string
	Reason     string
	Latitude   *float64
	Longitude  *float64
}

type ProgressInput struct {
	ActivityID string
	Text       string
	Latitude   *float64
	Longitude  *float64
}

// TodaySchedule is a schedule with its activity view folded in.
type TodaySchedule struct {
	m.Schedule
	ScheduleActivity
}

type ActivityService struct {
	activities ActivityStore
	schedules  ScheduleStore
	users      UserStore
	files      AttachmentStore
	notifier   Notifier
	log        zerolog.Logger
	now        Clock
}

func NewActivityService(activities ActivityStore, schedules ScheduleStore, users UserStore,
	files AttachmentStore, notifier Notifier, log zerolog.Logger) *ActivityService {
	return &ActivityService{
		activities: activities,
		schedules:  schedules,
		users:      users,
		files:      files,
		notifier:   notifier,
		log:        log,
		now:        systemClock,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Record appends an action to the log of the actor's own schedule.
func (s *ActivityService) Record(ctx context.Context, actor m.Actor, in ActivityInput) (*m.Activity, error) {
	status, ok := in.Action.Status()
	if !ok {
		return nil, apperr.Validation("action_type", "action_type must be one of start, finish, cancel, hold, restore")
	}
	if in.Action == m.ActionCancel && strings.TrimSpace(in.Reason) == "" {
		return nil, apperr.Validation("reason", "reason is required when cancelling an activity")
	}
	sch, err := s.schedules.Get(ctx, in.ScheduleID)
	if err != nil {
		return nil, err
	}
	if err := CanRecordActivity(actor, sch.UserID).Err(); err != nil {
		return nil, err
	}
	now := s.now()
	a := &m.Activity{
		ID:              m.NewID(),
		ScheduleID:      sch.ID,
		UserID:          actor.ID,
		UserName:        actor.Name,
		Division:        sch.Division,
		ActionType:      in.Action,
		Status:          status,
		Notes:           optional(in.Notes),
		Reason:          optional(in.Reason),
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		ProgressUpdates: []m.ProgressUpdate{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.activities.Insert(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info().Str("schedule_id", sch.ID).Str("status", string(status)).Msg("activity recorded")

	if in.Action == m.ActionHold && sch.Division != nil {
		mgr, err := s.users.FindApprover(ctx, m.RoleManager, routed(sch.Division))
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("activity_id", a.ID).Msg("activity: manager lookup failed")
		case mgr != nil:
			s.notifier.Notify(ctx, mgr.ID, NotiTaskOnHold, m.NotiParams{ActorName: actor.Name, Subject: sch.Title}, a.ID)
		}
	}
	return a, nil
}

// List returns activity history: Staff see their own, Manager and SPV
// their division scope, everyone else all of it.
func (s *ActivityService) List(ctx context.Context, actor m.Actor) ([]m.Activity, error) {
	switch actor.Role {
	case m.RoleStaff:
		return s.activities.Find(ctx, repo.ActivityFilter{UserID: actor.ID})
	case m.RoleManager, m.RoleSPV:
		if actor.Division == nil {
			return []m.Activity{}, nil
		}
		return s.activities.Find(ctx, repo.ActivityFilter{Divisions: ScopeDivisions(*actor.Division)})
	}
	return s.activities.Find(ctx, repo.ActivityFilter{})
}

// AddProgress appends a timestamped update, with an optional photo, to
// one of the actor's activities.
func (s *ActivityService) AddProgress(ctx context.Context, actor m.Actor, in ProgressInput, file *Attachment) (*m.ProgressUpdate, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperr.Validation("update_text", "update_text is required")
	}
	a, err := s.activities.Get(ctx, in.ActivityID)
	if err != nil {
		return nil, err
	}
	if err := CanRecordActivity(actor, a.UserID).Err(); err != nil {
		return nil, err
	}
	now := s.now()
	u := m.ProgressUpdate{
		Timestamp:  now,
		UpdateText: text,
		UserName:   actor.Name,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
	}
	if file != nil {
		url, err := s.files.Put(ctx, storage.ActivityFolder(a.ID), storedName("", now, file.Name), file.Body, file.Size, file.ContentType)
		if err != nil {
			return nil, apperr.Wrap(err, "store progress photo")
		}
		u.ImageURL = &url
	}
	if err := s.activities.PushProgress(ctx, a.ID, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ActivityService) ScheduleView(ctx context.Context, scheduleID string) (ScheduleActivity, error) {
	records, err := s.activities.FindBySchedule(ctx, scheduleID)
	if err != nil {
		return ScheduleActivity{}, err
	}
	return BuildScheduleActivity(records), nil
}

// Today lists the actor's schedules starting today (UTC) with their
// current activity view.
func (s *ActivityService) Today(ctx context.Context, actor m.Actor) ([]TodaySchedule, error) {
	from, to := dayBounds(s.now())
	schedules, err := s.schedules.Find(ctx, repo.ScheduleFilter{UserID: actor.ID, StartFrom: &from, StartTo: &to})
	if err != nil {
		return nil, err
	}
	out := make([]TodaySchedule, 0, len(schedules))
	for _, sch := range schedules {
		view, err := s.ScheduleView(ctx, sch.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, TodaySchedule{Schedule: sch, ScheduleActivity: view})
	}
	return out, nil
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	y, mo, d := t.UTC().Date()
	start := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
