package feed

import (
	"cmp"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	// StampLayout renders YYYY-MM-DD HH:MM:SS±ZZZZ.
	StampLayout = "2006-01-02 15:04:05-0700"

	PlaceholderMessage = "No additional details provided."

	affectedComponentsMarker = "Affected components"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	statusPattern = regexp.MustCompile(`^Status:\s*`)
)

// Identity returns the dedup key of an entry: id, then link, then "".
func Identity(entry Entry) string {
	return cmp.Or(entry.ID, entry.Link)
}

// Normalize builds the record reported for an entry. Entries without any
// timestamp are stamped with now.
func Normalize(entry Entry, now time.Time) Record {
	return Record{
		ID:      Identity(entry),
		Time:    entryTime(entry, now),
		Title:   entry.Title,
		Message: ExtractMessage(rawText(entry)),
	}
}

// Stamp formats the record time in UTC.
func (r Record) Stamp() string {
	return r.Time.UTC().Format(StampLayout)
}

// ExtractMessage turns marked-up status text into a one-line headline.
// Order matters: the marker search runs on detagged text and the Status:
// label is only stripped after truncation.
func ExtractMessage(raw string) string {
	message := strings.TrimSpace(tagPattern.ReplaceAllString(raw, ""))

	if before, _, found := strings.Cut(message, affectedComponentsMarker); found {
		message = strings.TrimSpace(before)
	}

	message = strings.TrimSpace(statusPattern.ReplaceAllString(message, ""))
	if message == "" {
		return PlaceholderMessage
	}

	return norm.NFC.String(message)
}

func entryTime(entry Entry, now time.Time) time.Time {
	switch {
	case entry.PublishedAt != nil:
		return entry.PublishedAt.UTC()
	case entry.UpdatedAt != nil:
		return entry.UpdatedAt.UTC()
	default:
		return now.UTC()
	}
}

func rawText(entry Entry) string {
	if entry.Summary != "" {
		return entry.Summary
	}
	if len(entry.Contents) > 0 {
		return entry.Contents[0]
	}
	return ""
}
