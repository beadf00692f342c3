package models

import "time"

type ProgressUpdate struct {
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	UpdateText string    `bson:"update_text" json:"update_text"`
	UserName   string    `bson:"user_name" json:"user_name"`
	ImageURL   *string   `bson:"image_url,omitempty" json:"image_url"`
	Latitude   *float64  `bson:"latitude,omitempty" json:"latitude"`
	Longitude  *float64  `bson:"longitude,omitempty" json:"longitude"`
}

// Activity is one append-only entry in a schedule's activity log.
type Activity struct {
	ID              string           `bson:"id" json:"id"`
	ScheduleID      string           `bson:"schedule_id" json:"schedule_id"`
	UserID          string           `bson:"user_id" json:"user_id"`
	UserName        string           `bson:"user_name" json:"user_name"`
	Division        *Division        `bson:"division,omitempty" json:"division"`
	ActionType      ActivityAction   `bson:"action_type" json:"action_type"`
	Status          ActivityStatus   `bson:"status" json:"status"`
	Notes           *string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Reason          *string          `bson:"reason,omitempty" json:"reason,omitempty"`
	Latitude        *float64         `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude       *float64         `bson:"longitude,omitempty" json:"longitude,omitempty"`
	ProgressUpdates []ProgressUpdate `bson:"progress_updates" json:"progress_updates"`
	CreatedAt       time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `bson:"updated_at" json:"updated_at"`
}
