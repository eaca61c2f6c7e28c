package domain

import (
	"errors"
	"time"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")
var ErrAnnouncementInvalid = errors.New("title and message are required")

// Announcement is an admin-published notice. Immutable once created, except
// for deletion.
type Announcement struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
