package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"github.com/rs/zerolog"
)

type NotiKind string

const (
	NotiStaffRegistered        NotiKind = "STAFF_REGISTERED"
	NotiManagerRegistered      NotiKind = "MANAGER_REGISTERED"
	NotiAccountReviewed        NotiKind = "ACCOUNT_REVIEWED"
	NotiScheduleAssigned       NotiKind = "SCHEDULE_ASSIGNED"
	NotiShiftChangeRequested   NotiKind = "SHIFT_CHANGE_REQUESTED"
	NotiShiftChangeReviewed    NotiKind = "SHIFT_CHANGE_REVIEWED"
	NotiTaskOnHold             NotiKind = "TASK_ON_HOLD"
	NotiReportSubmitted        NotiKind = "REPORT_SUBMITTED"
	NotiReportAwaitingApproval NotiKind = "REPORT_AWAITING_APPROVAL"
	NotiReportApproved         NotiKind = "REPORT_APPROVED"
	NotiReportRevisi           NotiKind = "REPORT_REVISI"
	NotiReportResubmitted      NotiKind = "REPORT_RESUBMITTED"
	NotiReportComment          NotiKind = "REPORT_COMMENT"
	NotiTicketAssigned         NotiKind = "TICKET_ASSIGNED"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BuildTitleBody renders the title and message for a notification kind.
func BuildTitleBody(k NotiKind, p m.NotiParams) (title, body string, typ m.NotiType, err error) {
	switch k {
	case NotiStaffRegistered:
		return "New Account Approval Required",
			fmt.Sprintf("%s (Staff - %s) has registered and needs approval", p.ActorName, p.Division),
			m.NotiTypeAccountApproval, nil
	case NotiManagerRegistered:
		return "New Manager Approval Required",
			fmt.Sprintf("%s (Manager) has registered and needs approval", p.ActorName),
			m.NotiTypeAccountApproval, nil
	case NotiAccountReviewed:
		if p.Status == "" {
			return "", "", "", errors.New("missing Status")
		}
		return fmt.Sprintf("Account %s", capitalize(p.Status)),
			fmt.Sprintf("Your account has been %s by %s", p.Status, p.ActorName),
			m.NotiTypeAccountStatus, nil
	case NotiScheduleAssigned:
		return "New Schedule Assigned",
			fmt.Sprintf("You have been assigned: %s", p.Subject),
			m.NotiTypeSchedule, nil
	case NotiShiftChangeRequested:
		return "Shift Change Request",
			fmt.Sprintf("%s requested a shift change", p.ActorName),
			m.NotiTypeShiftChange, nil
	case NotiShiftChangeReviewed:
		if p.Status == "" {
			return "", "", "", errors.New("missing Status")
		}
		return fmt.Sprintf("Shift Change Request %s", capitalize(p.Status)),
			fmt.Sprintf("Your shift change request has been %s", p.Status),
			m.NotiTypeShiftChange, nil
	case NotiTaskOnHold:
		return "Task On Hold",
			fmt.Sprintf("%s has put task '%s' on hold", p.ActorName, p.Subject),
			m.NotiTypeActivity, nil
	case NotiReportSubmitted:
		return "New Report for Approval",
			fmt.Sprintf("%s submitted: %s", p.ActorName, p.Subject),
			m.NotiTypeReport, nil
	case NotiReportAwaitingApproval:
		return "Report Needs Approval",
			fmt.Sprintf("Report '%s' is awaiting your approval", p.Subject),
			m.NotiTypeReport, nil
	case NotiReportApproved:
		return "Report Approved",
			fmt.Sprintf("Your report '%s' has been fully approved!", p.Subject),
			m.NotiTypeReport, nil
	case NotiReportRevisi:
		return "Report Needs Revision",
			fmt.Sprintf("Your report '%s' needs revision: %s", p.Subject, p.Comment),
			m.NotiTypeReport, nil
	case NotiReportResubmitted:
		return "Resubmitted Report Needs Approval",
			fmt.Sprintf("Resubmitted report '%s' is awaiting your approval", p.Subject),
			m.NotiTypeReport, nil
	case NotiReportComment:
		return "New Comment on Report",
			fmt.Sprintf("%s commented on '%s'", p.ActorName, p.Subject),
			m.NotiTypeReport, nil
	case NotiTicketAssigned:
		return "New Ticket Assigned",
			fmt.Sprintf("New %s priority ticket: %s", p.Priority, p.Subject),
			m.NotiTypeTicket, nil
	}
	return "", "", "", fmt.Errorf("unknown noti kind: %s", k)
}

// Notifier is the side-effect sink the state machines report to. Notify
// never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, userID string, kind NotiKind, p m.NotiParams, relatedID string)
}

// UnreadCache fronts the unread counter. Misses fall through to the store.
// Get also returns the user's current generation; Set only sticks while that
// generation is current, so a count read before an Invalidate is never served.
type UnreadCache interface {
	Get(ctx context.Context, userID string) (n int64, gen string, ok bool)
	Set(ctx context.Context, userID, gen string, n int64)
	Invalidate(ctx context.Context, userID string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (int64, string, bool) { return 0, "", false }
func (noopCache) Set(context.Context, string, string, int64)        {}
func (noopCache) Invalidate(context.Context, string)                {}

const notificationListLimit = 100

type NotificationService struct {
	store NotificationStore
	cache UnreadCache
	log   zerolog.Logger
	now   Clock
}

func NewNotificationService(store NotificationStore, cache UnreadCache, log zerolog.Logger) *NotificationService {
	if cache == nil {
		cache = noopCache{}
	}
	return &NotificationService{store: store, cache: cache, log: log, now: systemClock}
}

// Notify creates a notification for one user. Failures are logged and dropped.
func (s *NotificationService) Notify(ctx context.Context, userID string, kind NotiKind, p m.NotiParams, relatedID string) {
	if userID == "" {
		return
	}
	title, body, typ, err := BuildTitleBody(kind, p)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", string(kind)).Msg("notification: cannot render")
		return
	}
	n := &m.Notification{
		ID:        m.NewID(),
		UserID:    userID,
		Title:     title,
		Message:   body,
		Type:      typ,
		Read:      false,
		CreatedAt: s.now(),
	}
	if relatedID != "" {
		n.RelatedID = &relatedID
	}

	// Detached so a cancelled request does not drop the write.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.store.Insert(wctx, n); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", userID).
			Str("kind", string(kind)).
			Msg("notification: insert failed (non-fatal)")
		return
	}
	s.cache.Invalidate(wctx, userID)
	s.log.Debug().Str("user_id", userID).Str("kind", string(kind)).Msg("notification: created")
}

func (s *NotificationService) List(ctx context.Context, actor m.Actor) ([]m.Notification, error) {
	return s.store.FindByUser(ctx, actor.ID, notificationListLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor m.Actor, id string) (*m.Notification, error) {
	n, err := s.store.MarkRead(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, actor.ID)
	return n, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor m.Actor) (int64, error) {
	n, gen, ok := s.cache.Get(ctx, actor.ID)
	if ok {
		return n, nil
	}
	n, err := s.store.CountUnread(ctx, actor.ID)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, actor.ID, gen, n)
	return n, nil
}
