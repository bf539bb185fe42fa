package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/lysyi3m/status-watch/app/feed"
)

// Reporter delivers one newly observed record.
type Reporter interface {
	Report(ctx context.Context, feedName string, record feed.Record) error
}

var (
	_ Reporter = (*Printer)(nil)
	_ Reporter = Multi(nil)
)

// Printer writes the human-readable notification block.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Report(_ context.Context, _ string, record feed.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := fmt.Fprintf(p.w, "[%s] Product: %s\nStatus: %s\n\n", record.Stamp(), record.Title, record.Message)
	if err != nil {
		return fmt.Errorf("failed to print notification: %w", err)
	}
	return nil
}

// Multi reports to every reporter in order. A failing reporter does not stop
// the rest; all failures are joined into the returned error for the caller to log.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, feedName string, record feed.Record) error {
	var errs []error
	for _, reporter := range m {
		if err := reporter.Report(ctx, feedName, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
