package feed

import (
	"testing"
)

func TestFilterer_NoFilters(t *testing.T) {
	filterer := NewFilterer()

	record := filterer.Run(Record{Title: "API outage", Message: "Investigating"}, &Config{})

	if record.IsFiltered {
		t.Error("Record should not be filtered when no filters are configured")
	}
	if record.FilterReason != "" {
		t.Errorf("Record should have empty filter reason, got: %s", record.FilterReason)
	}
}

func TestFilterer_TitleInclude(t *testing.T) {
	filterer := NewFilterer()

	feedConfig := &Config{
		Filters: []ConfigFilter{
			{Field: "title", Includes: []string{"api", "chatgpt"}},
		},
	}

	if filterer.Run(Record{Title: "Elevated API errors"}, feedConfig).IsFiltered {
		t.Error("Record containing 'API' should not be filtered")
	}

	record := filterer.Run(Record{Title: "Sora degraded"}, feedConfig)
	if !record.IsFiltered {
		t.Error("Record without included terms should be filtered")
	}
	if record.FilterReason == "" {
		t.Error("Filtered record should have a reason")
	}
}

func TestFilterer_MessageExclude(t *testing.T) {
	filterer := NewFilterer()

	feedConfig := &Config{
		Filters: []ConfigFilter{
			{Field: "message", Excludes: []string{"scheduled maintenance"}},
		},
	}

	record := filterer.Run(Record{Title: "Database", Message: "Scheduled Maintenance in progress"}, feedConfig)
	if !record.IsFiltered {
		t.Error("Record with excluded term should be filtered")
	}
	expected := "Excluded by message filter: contains 'scheduled maintenance'"
	if record.FilterReason != expected {
		t.Errorf("Expected reason '%s', got '%s'", expected, record.FilterReason)
	}

	if filterer.Run(Record{Message: "Resolved"}, feedConfig).IsFiltered {
		t.Error("Record without excluded term should not be filtered")
	}
}

func TestFilterer_UnknownFieldNeverMatches(t *testing.T) {
	filterer := NewFilterer()

	feedConfig := &Config{
		Filters: []ConfigFilter{
			{Field: "authors", Excludes: []string{"bot"}},
		},
	}

	if filterer.Run(Record{Title: "bot"}, feedConfig).IsFiltered {
		t.Error("Unknown field should not exclude anything")
	}
}

func TestFilterer_AnnotatesCopy(t *testing.T) {
	filterer := NewFilterer()

	feedConfig := &Config{
		Filters: []ConfigFilter{
			{Field: "message", Excludes: []string{"maintenance"}},
		},
	}

	original := Record{ID: "id-1", Title: "Scheduled work", Message: "Planned maintenance"}
	filtered := filterer.Run(original, feedConfig)

	if !filtered.IsFiltered {
		t.Error("Returned record should be filtered")
	}
	if original.IsFiltered || original.FilterReason != "" {
		t.Errorf("Expected original record untouched, got %+v", original)
	}
	if filtered.ID != original.ID || filtered.Message != original.Message {
		t.Errorf("Expected normalized fields unchanged, got %+v", filtered)
	}
}
