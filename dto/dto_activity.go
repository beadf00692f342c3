package dto

type ActivityRequest struct {
	ScheduleID string   `json:"schedule_id"`
	Action     string   `json:"action" enums:"start,finish,cancel,hold,restore"`
	Notes      string   `json:"notes,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}
