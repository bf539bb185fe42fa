package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/status-watch/app/database"
	"github.com/lysyi3m/status-watch/app/feed"
)

const (
	defaultMaxItems = 50
	maxLimit        = 500
)

func NewHandler(feedConfig *feed.Config, stats StatsProvider, repo database.NotificationRepository,
	baseURL, version string) *Handler {
	return &Handler{
		feedConfig: feedConfig,
		stats:      stats,
		repo:       repo,
		generator:  feed.NewGenerator(),
		baseURL:    baseURL,
		version:    version,
		maxItems:   defaultMaxItems,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	stats := h.stats.Stats()

	health := gin.H{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"feed":      h.feedConfig.Name,
		"version":   h.version,
		"history":   h.repo != nil,
	}
	if stats.LastCycleAt != nil {
		health["last_cycle_at"] = stats.LastCycleAt.Format(time.RFC3339)
		health["last_outcome"] = stats.LastOutcome
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := h.stats.Stats()

	response := gin.H{
		"monitor": stats,
		"settings": gin.H{
			"url":      h.feedConfig.URL,
			"interval": h.feedConfig.Interval().String(),
			"timeout":  h.feedConfig.Timeout().String(),
			"filters":  len(h.feedConfig.Filters),
		},
	}

	if h.repo != nil {
		if count, err := h.repo.GetCount(c.Request.Context(), h.feedConfig.Name); err == nil {
			response["stored_notifications"] = count
		} else {
			slog.Error("Database error", "operation", "get_count", "feed", h.feedConfig.Name, "error", err)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetFeed republishes reported notifications as RSS.
func (h *Handler) GetFeed(c *gin.Context) {
	if h.repo == nil {
		c.Status(http.StatusNotFound)
		return
	}

	notifications, err := h.repo.GetRecent(c.Request.Context(), h.feedConfig.Name, h.maxItems)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent", "feed", h.feedConfig.Name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	records := make([]feed.Record, 0, len(notifications))
	for _, n := range notifications {
		records = append(records, n.Record())
	}

	channel := feed.Channel{
		Title:     h.feedConfig.Name + " status notifications",
		Link:      h.feedConfig.URL,
		SelfLink:  h.selfLink("/feed"),
		Generator: "status-watch/" + h.version,
	}

	rss, err := h.generator.Run(channel, records)
	if err != nil {
		slog.Error("RSS generation error", "feed", h.feedConfig.Name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Feed-Items", strconv.Itoa(len(records)))
	c.Header("X-Feed-Name", h.feedConfig.Name)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(rss))
}

func (h *Handler) APIListNotifications(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification history is disabled"})
		return
	}

	limit := h.maxItems
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxLimit)})
			return
		}
		limit = parsed
	}

	notifications, err := h.repo.GetRecent(c.Request.Context(), h.feedConfig.Name, limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent", "feed", h.feedConfig.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if notifications == nil {
		notifications = []database.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"feed":          h.feedConfig.Name,
		"notifications": notifications,
		"total":         len(notifications),
	})
}

func (h *Handler) selfLink(path string) string {
	if h.baseURL == "" {
		return ""
	}
	return h.baseURL + path
}
