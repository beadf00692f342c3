package models

import "time"

type Comment struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	UserName  string    `bson:"user_name" json:"user_name"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Report struct {
	ID               string       `bson:"id" json:"id"`
	CategoryID       *string      `bson:"category_id,omitempty" json:"category_id,omitempty"`
	CategoryName     *string      `bson:"category_name,omitempty" json:"category_name,omitempty"`
	Title            string       `bson:"title" json:"title"`
	Description      string       `bson:"description" json:"description"`
	FileName         string       `bson:"file_name" json:"file_name"`
	FileURL          string       `bson:"file_url" json:"file_url"`
	Status           ReportStatus `bson:"status" json:"status"`
	SubmittedBy      string       `bson:"submitted_by" json:"submitted_by"`
	SubmittedByName  string       `bson:"submitted_by_name" json:"submitted_by_name"`
	CurrentApprover  *string      `bson:"current_approver" json:"current_approver"`
	Version          int          `bson:"version" json:"version"`
	RejectionComment *string      `bson:"rejection_comment" json:"rejection_comment"`
	TicketID         *string      `bson:"ticket_id,omitempty" json:"ticket_id,omitempty"`
	SiteID           *string      `bson:"site_id,omitempty" json:"site_id,omitempty"`
	SiteName         *string      `bson:"site_name,omitempty" json:"site_name,omitempty"`
	Comments         []Comment    `bson:"comments" json:"comments"`
	CreatedAt        time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `bson:"updated_at" json:"updated_at"`
}

// IsApprover reports whether userID is the report's current approver.
func (r *Report) IsApprover(userID string) bool {
	return r.CurrentApprover != nil && *r.CurrentApprover == userID
}

type SubmitterCount struct {
	Name  string `bson:"name" json:"name"`
	Value int    `bson:"value" json:"value"`
}
