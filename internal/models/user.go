package models

import (
	"time"

	"github.com/google/uuid"
)

func NewID() string { return uuid.NewString() }

type User struct {
	ID            string        `bson:"id" json:"id"`
	Username      string        `bson:"username" json:"username"`
	Email         string        `bson:"email" json:"email"`
	PasswordHash  string        `bson:"password_hash" json:"-"`
	Role          Role          `bson:"role" json:"role"`
	Division      *Division     `bson:"division,omitempty" json:"division"`
	AccountStatus AccountStatus `bson:"account_status" json:"account_status"`
	ProfilePhoto  *string       `bson:"profile_photo,omitempty" json:"profile_photo,omitempty"`
	ReviewedBy    *string       `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
}

// DivisionOrEmpty is handy for messages and filters.
func (u *User) DivisionOrEmpty() Division {
	if u == nil || u.Division == nil {
		return ""
	}
	return *u.Division
}
