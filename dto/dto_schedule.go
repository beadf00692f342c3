package dto

// Dates are accepted as RFC 3339 or "2006-01-02T15:04[:05]" (see
// services.ParseTime).
type ScheduleRequest struct {
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
	SiteID      *string `json:"site_id,omitempty"`
	TicketID    *string `json:"ticket_id,omitempty"`
}

type ScheduleUpdateRequest struct {
	UserID      *string `json:"user_id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	SiteID      *string `json:"site_id,omitempty"`
}

type ShiftChangeCreateRequest struct {
	ScheduleID   string `json:"schedule_id"`
	Reason       string `json:"reason"`
	NewStartDate string `json:"new_start_date"`
	NewEndDate   string `json:"new_end_date"`
}

type ShiftChangeReviewRequest struct {
	RequestID string `json:"request_id"`
	Action    string `json:"action" enums:"approve,reject"`
	Comment   string `json:"comment,omitempty"`
}
