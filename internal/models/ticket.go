package models

import "time"

type TicketComment struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	UserName  string    `bson:"user_name" json:"user_name"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Ticket struct {
	ID                 string          `bson:"id" json:"id"`
	Title              string          `bson:"title" json:"title"`
	Description        string          `bson:"description" json:"description"`
	Priority           string          `bson:"priority" json:"priority"`
	Status             TicketStatus    `bson:"status" json:"status"`
	AssignedToDivision Division        `bson:"assigned_to_division" json:"assigned_to_division"`
	AssignedTo         *string         `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedBy          string          `bson:"created_by" json:"created_by"`
	CreatedByName      string          `bson:"created_by_name" json:"created_by_name"`
	LinkedReportID     *string         `bson:"linked_report_id,omitempty" json:"linked_report_id,omitempty"`
	SiteID             *string         `bson:"site_id,omitempty" json:"site_id,omitempty"`
	SiteName           *string         `bson:"site_name,omitempty" json:"site_name,omitempty"`
	Comments           []TicketComment `bson:"comments" json:"comments"`
	CreatedAt          time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `bson:"updated_at" json:"updated_at"`
}

type Site struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Location    *string    `bson:"location,omitempty" json:"location,omitempty"`
	Description *string    `bson:"description,omitempty" json:"description,omitempty"`
	Status      SiteStatus `bson:"status" json:"status"`
	CreatedBy   string     `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}

type ActivityCategory struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
