package api

import (
	"github.com/lysyi3m/status-watch/app/database"
	"github.com/lysyi3m/status-watch/app/feed"
	"github.com/lysyi3m/status-watch/app/tasks"
)

type GeneratorInterface interface {
	Run(channel feed.Channel, records []feed.Record) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

// StatsProvider is satisfied by *tasks.PollFeedTask.
type StatsProvider interface {
	Stats() tasks.Stats
}

var _ StatsProvider = (*tasks.PollFeedTask)(nil)

type Handler struct {
	feedConfig *feed.Config
	stats      StatsProvider
	repo       database.NotificationRepository // nil when history is disabled
	generator  GeneratorInterface
	baseURL    string
	version    string
	maxItems   int
}
