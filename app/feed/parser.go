package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// ParseError reports a feed body that could not be parsed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS or Atom document. Entries keep the publisher's order.
func (p *Parser) Run(data []byte) (*Metadata, []Entry, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, &ParseError{Err: err}
	}

	metadata := &Metadata{
		Title: parsed.Title,
		Link:  parsed.Link,
	}

	if parsed.UpdatedParsed != nil {
		metadata.UpdatedAt = parsed.UpdatedParsed
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.convertItem(item))
	}

	return metadata, entries, nil
}

func (p *Parser) convertItem(item *gofeed.Item) Entry {
	entry := Entry{
		ID:      item.GUID,
		Link:    item.Link,
		Title:   item.Title,
		Summary: item.Description,
	}

	if item.PublishedParsed != nil {
		entry.PublishedAt = item.PublishedParsed
	}

	if item.UpdatedParsed != nil {
		entry.UpdatedAt = item.UpdatedParsed
	}

	// gofeed flattens Atom <content> into a single value
	if item.Content != "" {
		entry.Contents = []string{item.Content}
	}

	return entry
}
