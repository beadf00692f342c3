package services

import (
	"context"
	"strings"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel/attribute"
)

type ShiftChangeInput struct {
	ScheduleID   string
	Reason       string
	NewStartDate time.Time
	NewEndDate   time.Time
}

type ShiftChangeService struct {
	requests  ShiftChangeStore
	schedules ScheduleStore
	users     UserStore
	notifier  Notifier
	policy    ShiftScope
	log       zerolog.Logger
	now       Clock
}

func NewShiftChangeService(requests ShiftChangeStore, schedules ScheduleStore, users UserStore,
	notifier Notifier, policy ShiftScope, log zerolog.Logger) *ShiftChangeService {
	return &ShiftChangeService{
		requests:  requests,
		schedules: schedules,
		users:     users,
		notifier:  notifier,
		policy:    policy,
		log:       log,
		now:       systemClock,
	}
}

// reviewerDivision is the Manager division that reviews a schedule's
// shift changes under the configured policy.
func (s *ShiftChangeService) reviewerDivision(d *m.Division) *m.Division {
	if s.policy == ShiftScopeRouted {
		return routed(d)
	}
	return d
}

// scopeDivisions lists the schedule divisions a Manager in d reviews.
func (s *ShiftChangeService) scopeDivisions(d m.Division) []m.Division {
	if s.policy == ShiftScopeRouted {
		return ScopeDivisions(d)
	}
	return []m.Division{d}
}

// Create files a shift change for the actor's own schedule.
func (s *ShiftChangeService) Create(ctx context.Context, actor m.Actor, in ShiftChangeInput) (*m.ShiftChangeRequest, error) {
	if in.ScheduleID == "" {
		return nil, apperr.Validation("schedule_id", "schedule_id is required")
	}
	if in.NewEndDate.Before(in.NewStartDate) {
		return nil, apperr.Validation("new_end_date", "new end date must not be before new start date")
	}
	sch, err := s.schedules.Get(ctx, in.ScheduleID)
	if err != nil {
		return nil, err
	}
	if err := CanRequestShiftChange(actor, sch).Err(); err != nil {
		return nil, err
	}
	now := s.now()
	req := &m.ShiftChangeRequest{
		ID:              m.NewID(),
		ScheduleID:      sch.ID,
		RequestedBy:     actor.ID,
		RequestedByName: actor.Name,
		Reason:          strings.TrimSpace(in.Reason),
		NewStartDate:    in.NewStartDate.UTC(),
		NewEndDate:      in.NewEndDate.UTC(),
		Status:          m.ShiftChangePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, err
	}

	if div := s.reviewerDivision(sch.Division); div != nil {
		mgr, err := s.users.FindApprover(ctx, m.RoleManager, div)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("request_id", req.ID).Msg("shift change: manager lookup failed")
		case mgr != nil:
			s.notifier.Notify(ctx, mgr.ID, NotiShiftChangeRequested, m.NotiParams{ActorName: actor.Name}, req.ID)
		}
	}
	return req, nil
}

// List returns what the actor should see: pending requests in scope for
// Managers, every pending request for VP, own requests otherwise.
func (s *ShiftChangeService) List(ctx context.Context, actor m.Actor) ([]m.ShiftChangeRequest, error) {
	switch actor.Role {
	case m.RoleVP:
		return s.requests.Find(ctx, repo.ShiftChangeFilter{Status: m.ShiftChangePending})
	case m.RoleManager:
		if actor.Division == nil {
			return []m.ShiftChangeRequest{}, nil
		}
		ids, err := s.schedules.IDsInDivisions(ctx, s.scopeDivisions(*actor.Division))
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []string{}
		}
		return s.requests.Find(ctx, repo.ShiftChangeFilter{Status: m.ShiftChangePending, ScheduleIDs: ids})
	}
	return s.requests.Find(ctx, repo.ShiftChangeFilter{RequestedBy: actor.ID})
}

// Review approves or rejects a pending request. Approval moves the
// schedule to the proposed dates.
func (s *ShiftChangeService) Review(ctx context.Context, actor m.Actor, id string, action m.ReviewAction, comment string) (_ *m.ShiftChangeRequest, err error) {
	ctx, span := startSpan(ctx, "shift_change.review",
		attribute.String("request_id", id), attribute.String("action", string(action)))
	defer func() { endSpan(span, err) }()

	if !action.Valid() {
		return nil, apperr.Validation("action", "action must be approve or reject")
	}
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sch, err := s.schedules.Get(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if err := CanReviewShiftChange(actor, sch, s.policy).Err(); err != nil {
		return nil, err
	}
	if req.Status != m.ShiftChangePending {
		return nil, apperr.Conflict("shift change request is already " + string(req.Status))
	}

	status := m.ShiftChangeRejected
	if action == m.ReviewApprove {
		status = m.ShiftChangeApproved
	}
	now := s.now()
	set := bson.M{
		"status":      status,
		"reviewed_by": actor.ID,
		"reviewed_at": now,
		"updated_at":  now,
	}
	if c := strings.TrimSpace(comment); c != "" {
		set["review_comment"] = c
		req.ReviewComment = &c
	}
	if err := s.requests.ReviewIfPending(ctx, req.ID, set); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("shift change request was already reviewed")
		}
		return nil, err
	}
	req.Status = status
	req.ReviewedBy = &actor.ID
	req.ReviewedAt = &now
	req.UpdatedAt = now

	if status == m.ShiftChangeApproved {
		if err := s.moveSchedule(ctx, req, sch.ID, actor.ID); err != nil {
			return nil, err
		}
	}
	s.log.Info().Str("request_id", req.ID).Str("status", string(status)).Str("by", actor.ID).Msg("shift change reviewed")

	s.notifier.Notify(ctx, req.RequestedBy, NotiShiftChangeReviewed, m.NotiParams{Status: string(status)}, req.ID)
	return req, nil
}

// moveSchedule copies the approved dates onto the schedule. The approval
// claim is released when the move fails so the request can be reviewed again.
func (s *ShiftChangeService) moveSchedule(ctx context.Context, req *m.ShiftChangeRequest, scheduleID, reviewer string) error {
	err := s.schedules.UpdateFields(ctx, scheduleID, bson.M{
		"start_date": req.NewStartDate,
		"end_date":   req.NewEndDate,
	})
	if err == nil {
		return nil
	}
	if rerr := s.requests.ReopenIfApprovedBy(context.WithoutCancel(ctx), req.ID, reviewer, s.now()); rerr != nil {
		s.log.Error().Err(rerr).Str("request_id", req.ID).Msg("reopen shift change request after failed schedule move")
	}
	return err
}
