package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lysyi3m/status-watch/app/feed"
)

var _ NotificationRepository = (*notificationRepository)(nil)

type notificationRepository struct {
	db  *DB
	now func() time.Time
}

func NewNotificationRepository(db *DB) NotificationRepository {
	return &notificationRepository{db: db, now: time.Now}
}

func (r *notificationRepository) Report(ctx context.Context, feedName string, record feed.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (feed_name, entry_id, title, message, published_at, reported_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, feedName, record.ID, record.Title, record.Message,
		record.Time.UTC().Format(time.RFC3339Nano), r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	return nil
}

// GetRecent returns the newest notifications first.
func (r *notificationRepository) GetRecent(ctx context.Context, feedName string, limit int) ([]Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, feed_name, entry_id, title, message, published_at, reported_at
		FROM notifications
		WHERE feed_name = ?
		ORDER BY id DESC
		LIMIT ?
	`, feedName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var (
			n           Notification
			publishedAt string
			reportedAt  string
		)
		if err := rows.Scan(&n.ID, &n.FeedName, &n.EntryID, &n.Title, &n.Message, &publishedAt, &reportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		if n.PublishedAt, err = time.Parse(time.RFC3339Nano, publishedAt); err != nil {
			return nil, fmt.Errorf("invalid published_at for notification %d: %w", n.ID, err)
		}
		if n.ReportedAt, err = time.Parse(time.RFC3339Nano, reportedAt); err != nil {
			return nil, fmt.Errorf("invalid reported_at for notification %d: %w", n.ID, err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) GetCount(ctx context.Context, feedName string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE feed_name = ?`, feedName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// Record converts a stored notification back into the reported record.
func (n Notification) Record() feed.Record {
	return feed.Record{
		ID:      n.EntryID,
		Time:    n.PublishedAt,
		Title:   n.Title,
		Message: n.Message,
	}
}
