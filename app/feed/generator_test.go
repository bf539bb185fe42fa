package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestGenerateRSS(t *testing.T) {
	generator := NewGenerator()

	records := []Record{
		{
			ID:      "https://status.example.com/incidents/2",
			Time:    time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC),
			Title:   "API errors & timeouts",
			Message: "Investigating",
		},
		{
			ID:      "tag:status.example.com,2005:Incident/1",
			Time:    time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
			Title:   "Login issues",
			Message: "Resolved",
		},
	}

	channel := Channel{
		Title:     "Status notifications",
		Link:      "https://status.example.com/history.atom",
		SelfLink:  "http://localhost:8080/feed",
		Generator: "status-watch/dev",
	}

	rss, err := generator.Run(channel, records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var doc struct {
		Channel struct {
			Title string `xml:"title"`
			Items []struct {
				GUID        string `xml:"guid"`
				Title       string `xml:"title"`
				Link        string `xml:"link"`
				Description string `xml:"description"`
				PubDate     string `xml:"pubDate"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.Unmarshal([]byte(rss), &doc); err != nil {
		t.Fatalf("Generated RSS is not valid XML: %v", err)
	}

	if doc.Channel.Title != "Status notifications" {
		t.Errorf("Expected channel title 'Status notifications', got '%s'", doc.Channel.Title)
	}
	if len(doc.Channel.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(doc.Channel.Items))
	}

	first := doc.Channel.Items[0]
	if first.Title != "API errors & timeouts" {
		t.Errorf("Expected unescaped title, got '%s'", first.Title)
	}
	if first.Link != "https://status.example.com/incidents/2" {
		t.Errorf("Expected URL identity as link, got '%s'", first.Link)
	}
	if first.Description != "Investigating" {
		t.Errorf("Expected description 'Investigating', got '%s'", first.Description)
	}

	if doc.Channel.Items[1].Link != "" {
		t.Errorf("Expected no link for non-URL identity, got '%s'", doc.Channel.Items[1].Link)
	}

	if !strings.Contains(rss, `<guid isPermaLink="false">tag:status.example.com,2005:Incident/1</guid>`) {
		t.Error("Expected non-permalink guid for tag identity")
	}
	if !strings.Contains(rss, "<lastBuildDate>Tue, 04 Jun 2024 09:00:00 +0000</lastBuildDate>") {
		t.Error("Expected lastBuildDate from newest record")
	}
}

func TestGenerateRSSEmpty(t *testing.T) {
	rss, err := NewGenerator().Run(Channel{Title: "Empty", Link: "https://example.com/feed"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if strings.Contains(rss, "<item>") {
		t.Error("Expected no items")
	}
	if !strings.Contains(rss, "<description>Status notifications from https://example.com/feed</description>") {
		t.Error("Expected default description")
	}
}
