package dto

import "time"

type ReportApproveRequest struct {
	ReportID string `json:"report_id"`
	Action   string `json:"action" enums:"approve,revisi"`
	Comment  string `json:"comment,omitempty"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type TicketRequest struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Priority           string  `json:"priority"`
	AssignedToDivision string  `json:"assigned_to_division"`
	SiteID             *string `json:"site_id,omitempty"`
}

type TicketPatchRequest struct {
	Status     *string `json:"status,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

type TicketEditRequest struct {
	Title              string  `json:"title,omitempty"`
	Description        string  `json:"description,omitempty"`
	Priority           string  `json:"priority,omitempty"`
	AssignedToDivision string  `json:"assigned_to_division,omitempty"`
	SiteID             *string `json:"site_id,omitempty"`
}

// TicketCommentRequest keeps the "comment" field name the clients send.
type TicketCommentRequest struct {
	Comment string `json:"comment"`
}

// TicketOption is the slim row used by ticket pickers.
type TicketOption struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
