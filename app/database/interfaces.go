package database

import (
	"context"

	"github.com/lysyi3m/status-watch/app/feed"
)

// NotificationRepository keeps the history of reported records. It is a
// reporting sink, not the dedup ledger: nothing is read back at startup.
type NotificationRepository interface {
	Report(ctx context.Context, feedName string, record feed.Record) error
	GetRecent(ctx context.Context, feedName string, limit int) ([]Notification, error)
	GetCount(ctx context.Context, feedName string) (int, error)
}
