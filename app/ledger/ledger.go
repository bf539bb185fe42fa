// Package ledger records which feed entry identities have already been reported.
package ledger

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Ledger is membership-only. Record is idempotent.
type Ledger interface {
	Seen(id string) bool
	Record(id string)
	Len() int
}

var (
	_ Ledger = (*Set)(nil)
	_ Ledger = (*Bounded)(nil)
)

// Set grows for the lifetime of the process and is never pruned.
// Not safe for concurrent use.
type Set struct {
	ids map[string]struct{}
}

func NewSet() *Set {
	return &Set{ids: make(map[string]struct{})}
}

func (s *Set) Seen(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Record(id string) {
	s.ids[id] = struct{}{}
}

func (s *Set) Len() int {
	return len(s.ids)
}

// Bounded keeps at most capacity identities, evicting the least recently
// recorded or seen one first. The capacity must cover every entry of a feed
// body, otherwise an evicted entry still present in the feed is reported
// again. See Grow.
type Bounded struct {
	cache    *lru.Cache[string, struct{}]
	capacity int
}

func NewBounded(capacity int) (*Bounded, error) {
	cache, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &Bounded{cache: cache, capacity: capacity}, nil
}

// Grow raises the capacity to n if it is smaller. It reports whether the
// capacity changed. Capacity never shrinks.
func (b *Bounded) Grow(n int) bool {
	if n <= b.capacity {
		return false
	}
	b.cache.Resize(n)
	b.capacity = n
	return true
}

func (b *Bounded) Cap() int {
	return b.capacity
}

// Seen refreshes recency so identities still published by the feed are kept.
func (b *Bounded) Seen(id string) bool {
	_, ok := b.cache.Get(id)
	return ok
}

func (b *Bounded) Record(id string) {
	if b.cache.Contains(id) {
		return
	}
	b.cache.Add(id, struct{}{})
}

func (b *Bounded) Len() int {
	return b.cache.Len()
}

// New returns an unbounded Set for capacity <= 0, otherwise a Bounded ledger.
func New(capacity int) (Ledger, error) {
	if capacity <= 0 {
		return NewSet(), nil
	}
	return NewBounded(capacity)
}
