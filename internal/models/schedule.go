package models

import "time"

type Schedule struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	UserName     string    `bson:"user_name" json:"user_name"`
	Division     *Division `bson:"division,omitempty" json:"division"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	StartDate    time.Time `bson:"start_date" json:"start_date"`
	EndDate      time.Time `bson:"end_date" json:"end_date"`
	CreatedBy    string    `bson:"created_by" json:"created_by"`
	CategoryID   *string   `bson:"category_id,omitempty" json:"category_id,omitempty"`
	CategoryName *string   `bson:"category_name,omitempty" json:"category_name,omitempty"`
	SiteID       *string   `bson:"site_id,omitempty" json:"site_id,omitempty"`
	SiteName     *string   `bson:"site_name,omitempty" json:"site_name,omitempty"`
	TicketID     *string   `bson:"ticket_id,omitempty" json:"ticket_id,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// EndOfDay returns 23:59:59 on t's calendar date in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

type ShiftChangeRequest struct {
	ID              string            `bson:"id" json:"id"`
	ScheduleID      string            `bson:"schedule_id" json:"schedule_id"`
	RequestedBy     string            `bson:"requested_by" json:"requested_by"`
	RequestedByName string            `bson:"requested_by_name" json:"requested_by_name"`
	Reason          string            `bson:"reason" json:"reason"`
	NewStartDate    time.Time         `bson:"new_start_date" json:"new_start_date"`
	NewEndDate      time.Time         `bson:"new_end_date" json:"new_end_date"`
	Status          ShiftChangeStatus `bson:"status" json:"status"`
	ReviewedBy      *string           `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewComment   *string           `bson:"review_comment,omitempty" json:"review_comment,omitempty"`
	ReviewedAt      *time.Time        `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updated_at"`
}
