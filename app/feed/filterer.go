package feed

import (
	"fmt"
	"strings"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run marks the record as filtered when it fails any configured rule.
func (f *Filterer) Run(record Record, feedConfig *Config) Record {
	if feedConfig == nil || len(feedConfig.Filters) == 0 {
		return record
	}

	record.IsFiltered, record.FilterReason = f.applyFilters(record, feedConfig.Filters)
	return record
}

func (f *Filterer) applyFilters(record Record, filters []ConfigFilter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(record, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(record Record, field string) string {
	switch field {
	case "title":
		return record.Title
	case "message":
		return record.Message
	case "id":
		return record.ID
	default:
		return ""
	}
}
