package tasks

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/lysyi3m/status-watch/app/feed"
	"github.com/lysyi3m/status-watch/app/ledger"
	"github.com/lysyi3m/status-watch/app/metrics"
	"github.com/lysyi3m/status-watch/app/report"
)

// Stats is a point-in-time view of a poll task, safe to read from other goroutines.
type Stats struct {
	FeedName      string     `json:"feed"`
	URL           string     `json:"url"`
	Cycles        int        `json:"cycles"`
	Notifications int        `json:"notifications"`
	Filtered      int        `json:"filtered"`
	Failures      int        `json:"failures"`
	LedgerSize    int        `json:"ledger_size"`
	HasValidator  bool       `json:"has_validator"`
	LastOutcome   string     `json:"last_outcome,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	LastCycleAt   *time.Time `json:"last_cycle_at,omitempty"`
}

// PollFeedTask runs one fetch-parse-dedup-report cycle per Execute. The
// fetcher's ETag and the ledger are owned by this task and only touched from
// the goroutine calling Execute.
type PollFeedTask struct {
	Task
	FeedConfig *feed.Config
	fetcher    FeedFetcher
	parser     FeedParser
	filterer   *feed.Filterer
	ledger     ledger.Ledger
	reporter   report.Reporter
	metrics    *metrics.Metrics
	now        func() time.Time

	mu    sync.RWMutex
	stats Stats
}

func NewPollFeedTask(feedConfig *feed.Config, fetcher FeedFetcher, parser FeedParser, filterer *feed.Filterer,
	seen ledger.Ledger, reporter report.Reporter, m *metrics.Metrics) *PollFeedTask {
	return &PollFeedTask{
		Task:       NewTask(TaskTypePollFeed, feedConfig.Name),
		FeedConfig: feedConfig,
		fetcher:    fetcher,
		parser:     parser,
		filterer:   filterer,
		ledger:     seen,
		reporter:   reporter,
		metrics:    m,
		now:        time.Now,
		stats: Stats{
			FeedName: feedConfig.Name,
			URL:      feedConfig.URL,
		},
	}
}

// Execute returns nil when the feed is unchanged or was processed, and the
// fetch or parse error otherwise. Nothing is recorded from a failed cycle.
func (t *PollFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetcher.Fetch(ctx)
	if errors.Is(err, feed.ErrNotModified) {
		slog.Debug("Feed not modified", "feed", t.FeedName, "id", t.ID)
		t.finish(metrics.OutcomeUnchanged, 0, 0, nil)
		return nil
	}
	if err != nil {
		t.finish(classify(err), 0, 0, err)
		return err
	}

	metadata, entries, err := t.parser.Run(data)
	if err != nil {
		t.finish(classify(err), 0, 0, err)
		return err
	}

	t.fitLedger(len(entries))

	now := t.now()
	notified := 0
	filtered := 0

	// feeds list newest first; report oldest unseen first
	for _, entry := range slices.Backward(entries) {
		id := feed.Identity(entry)
		if t.ledger.Seen(id) {
			continue
		}

		if id == "" {
			slog.Warn("Entry has neither id nor link, later entries without identity will be skipped as duplicates",
				"feed", t.FeedName, "title", entry.Title)
		}

		// recorded before reporting: a failed report drops the notification rather than repeating it
		t.ledger.Record(id)

		record := t.filterer.Run(feed.Normalize(entry, now), t.FeedConfig)
		if record.IsFiltered {
			slog.Debug("Entry filtered", "feed", t.FeedName, "entry", id, "reason", record.FilterReason)
			filtered++
			continue
		}

		if err := t.reporter.Report(ctx, t.FeedName, record); err != nil {
			slog.Error("Failed to report notification", "feed", t.FeedName, "entry", id, "error", err)
			continue
		}
		notified++
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"feed", t.FeedName,
		"id", t.ID,
		"title", metadata.Title,
		"duration", t.GetDuration(),
		"total", len(entries),
		"new", notified,
		"filtered", filtered)

	t.finish(metrics.OutcomeProcessed, notified, filtered, nil)
	return nil
}

// fitLedger grows a bounded ledger so no identity of the current body can be
// evicted while the body is walked.
func (t *PollFeedTask) fitLedger(entries int) {
	bounded, ok := t.ledger.(growableLedger)
	if !ok {
		return
	}

	previous := bounded.Cap()
	if bounded.Grow(entries) {
		slog.Warn("Ledger capacity below feed size, growing",
			"feed", t.FeedName, "capacity", previous, "entries", entries)
	}
}

// Stats returns a copy of the task counters.
func (t *PollFeedTask) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats
}

// RecordPanic counts a cycle that panicked. Called by the scheduler after recovery.
func (t *PollFeedTask) RecordPanic(reason string) {
	t.finish(metrics.OutcomeFailed, 0, 0, errors.New(reason))
}

func (t *PollFeedTask) finish(outcome string, notified, filtered int, err error) {
	now := t.now()
	ledgerSize := t.ledger.Len()
	hasValidator := t.fetcher.ETag() != ""

	t.mu.Lock()
	t.stats.Cycles++
	t.stats.Notifications += notified
	t.stats.Filtered += filtered
	t.stats.LedgerSize = ledgerSize
	t.stats.HasValidator = hasValidator
	t.stats.LastOutcome = outcome
	t.stats.LastCycleAt = &now
	if err != nil {
		t.stats.Failures++
		t.stats.LastError = err.Error()
	} else {
		t.stats.LastError = ""
	}
	t.mu.Unlock()

	if t.metrics == nil {
		return
	}
	t.metrics.Cycles.WithLabelValues(t.FeedName, outcome).Inc()
	t.metrics.Notifications.WithLabelValues(t.FeedName).Add(float64(notified))
	t.metrics.Filtered.WithLabelValues(t.FeedName).Add(float64(filtered))
	t.metrics.LedgerSize.WithLabelValues(t.FeedName).Set(float64(ledgerSize))
	t.metrics.CycleDuration.WithLabelValues(t.FeedName).Observe(t.GetDuration().Seconds())
}

func classify(err error) string {
	var (
		statusErr    *feed.StatusError
		transportErr *feed.TransportError
		parseErr     *feed.ParseError
	)

	switch {
	case errors.As(err, &statusErr):
		return metrics.OutcomeStatusError
	case errors.As(err, &transportErr):
		return metrics.OutcomeTransportError
	case errors.As(err, &parseErr):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeFailed
	}
}
