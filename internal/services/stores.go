package services

import (
	"context"
	"time"

	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// The services depend on these narrow views of the repositories so tests
// can swap in in-memory stores.

type UserStore interface {
	Get(ctx context.Context, id string) (*m.User, error)
	GetByEmail(ctx context.Context, email string) (*m.User, error)
	FindApprover(ctx context.Context, role m.Role, division *m.Division) (*m.User, error)
	Find(ctx context.Context, f repo.UserFilter) ([]m.User, error)
	Insert(ctx context.Context, u *m.User) error
	UpdateFields(ctx context.Context, id string, set bson.M) error
	SetStatusIfPending(ctx context.Context, id string, status m.AccountStatus, reviewerID string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ScheduleStore interface {
	Get(ctx context.Context, id string) (*m.Schedule, error)
	Find(ctx context.Context, f repo.ScheduleFilter) ([]m.Schedule, error)
	Insert(ctx context.Context, s *m.Schedule) error
	UpdateFields(ctx context.Context, id string, set bson.M) error
	Delete(ctx context.Context, id string) error
	IDsInDivisions(ctx context.Context, divisions []m.Division) ([]string, error)
}

type ShiftChangeStore interface {
	Get(ctx context.Context, id string) (*m.ShiftChangeRequest, error)
	Find(ctx context.Context, f repo.ShiftChangeFilter) ([]m.ShiftChangeRequest, error)
	Insert(ctx context.Context, req *m.ShiftChangeRequest) error
	ReviewIfPending(ctx context.Context, id string, set bson.M) error
	ReopenIfApprovedBy(ctx context.Context, id, reviewer string, at time.Time) error
}

type ActivityStore interface {
	Get(ctx context.Context, id string) (*m.Activity, error)
	Insert(ctx context.Context, a *m.Activity) error
	FindBySchedule(ctx context.Context, scheduleID string) ([]m.Activity, error)
	Find(ctx context.Context, f repo.ActivityFilter) ([]m.Activity, error)
	PushProgress(ctx context.Context, id string, u m.ProgressUpdate) error
}

type ReportStore interface {
	Get(ctx context.Context, id string) (*m.Report, error)
	Find(ctx context.Context, f repo.ReportFilter) ([]m.Report, error)
	Insert(ctx context.Context, r *m.Report) error
	TransitionIf(ctx context.Context, id string, status m.ReportStatus, approver *string, set bson.M) error
	UpdateIfVersion(ctx context.Context, id string, version int, set bson.M) error
	PushComment(ctx context.Context, id string, c m.Comment) error
	Delete(ctx context.Context, id string) error
	CountBySubmitter(ctx context.Context, from, to time.Time, categoryID string) ([]m.SubmitterCount, error)
}

type TicketStore interface {
	Get(ctx context.Context, id string) (*m.Ticket, error)
	Find(ctx context.Context, f repo.TicketFilter) ([]m.Ticket, error)
	Insert(ctx context.Context, t *m.Ticket) error
	UpdateFields(ctx context.Context, id string, set bson.M) error
	CloseIf(ctx context.Context, id string, linkedReportID *string) error
	PushComment(ctx context.Context, id string, c m.TicketComment) error
}

type SiteStore interface {
	Get(ctx context.Context, id string) (*m.Site, error)
	Find(ctx context.Context, activeOnly bool) ([]m.Site, error)
	Insert(ctx context.Context, s *m.Site) error
	UpdateFields(ctx context.Context, id string, set bson.M) error
}

type CategoryStore interface {
	Get(ctx context.Context, id string) (*m.ActivityCategory, error)
	FindAll(ctx context.Context) ([]m.ActivityCategory, error)
	Insert(ctx context.Context, c *m.ActivityCategory) error
	Delete(ctx context.Context, id string) error
}

type NotificationStore interface {
	Insert(ctx context.Context, n *m.Notification) error
	FindByUser(ctx context.Context, userID string, limit int64) ([]m.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*m.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

// Clock is overridden in tests.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
