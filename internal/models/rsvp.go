package models

import "time"

type RSVP struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    *int64    `json:"user_id"`
	Attending bool      `json:"attending"`
	CreatedAt time.Time `json:"created_at"`
}
