package database

import (
	"time"
)

type Notification struct {
	ID          int64     `json:"id"`
	FeedName    string    `json:"feed"`
	EntryID     string    `json:"entry_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	PublishedAt time.Time `json:"published_at"`
	ReportedAt  time.Time `json:"reported_at"`
}
