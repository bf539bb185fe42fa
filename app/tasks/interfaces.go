package tasks

import (
	"context"

	"github.com/lysyi3m/status-watch/app/feed"
	"github.com/lysyi3m/status-watch/app/ledger"
)

// TaskSchedulerInterface drives one task on a fixed interval until stopped.
//
//	scheduler := NewScheduler(pollTask, feedConfig.Interval())
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
}

// FeedFetcher is satisfied by *feed.Fetcher.
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	ETag() string
}

// FeedParser is satisfied by *feed.Parser.
type FeedParser interface {
	Run(data []byte) (*feed.Metadata, []feed.Entry, error)
}

// growableLedger is satisfied by *ledger.Bounded.
type growableLedger interface {
	Grow(n int) bool
	Cap() int
}

var (
	_ FeedFetcher    = (*feed.Fetcher)(nil)
	_ FeedParser     = (*feed.Parser)(nil)
	_ growableLedger = (*ledger.Bounded)(nil)
)
