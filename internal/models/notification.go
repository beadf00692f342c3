package models

import "time"

// NotiType is the type tag stored on a notification; clients filter on it.
type NotiType string

const (
	NotiTypeAccountApproval NotiType = "account_approval"
	NotiTypeAccountStatus   NotiType = "account_status"
	NotiTypeSchedule        NotiType = "schedule"
	NotiTypeShiftChange     NotiType = "shift_change"
	NotiTypeActivity        NotiType = "activity"
	NotiTypeReport          NotiType = "report"
	NotiTypeTicket          NotiType = "ticket"
)

type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Type      NotiType  `bson:"type" json:"type"`
	RelatedID *string   `bson:"related_id,omitempty" json:"related_id,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NotiParams feeds the title/message builder. Only the fields a given
// kind needs are set.
type NotiParams struct {
	ActorName string
	Subject   string // report, schedule or ticket title
	Division  string
	Status    string
	Comment   string
	Priority  string
}
