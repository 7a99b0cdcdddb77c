package stream

import (
	"sync"

	"onuze-cli/shared"
)

// FetchFunc fetches one page. url is the relative first-page path or a
// server-produced cursor, re-issued verbatim.
type FetchFunc[T shared.Item] func(url string) (*shared.Page[T], *shared.ApiError)

// Cache is a keyed set of streams over one record type. The cache
// exclusively owns page data; observers hold read references.
type Cache[T shared.Item] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	streams map[string]*Stream[T]
}

func NewCache[T shared.Item](fetch FetchFunc[T]) *Cache[T] {
	return &Cache[T]{
		fetch:   fetch,
		streams: map[string]*Stream[T]{},
	}
}

// Open returns the stream for key without fetching, creating it on first
// observation; created reports whether this call created it. Callers use it
// to subscribe before kicking off a fetch on their own schedule.
func (c *Cache[T]) Open(key Key) (s *Stream[T], created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.streams[key.String()]
	if !ok {
		s = newStream(key, c.fetch)
		c.streams[key.String()] = s
	}
	return s, !ok
}

// Query returns the stream for key, creating it on first observation and
// issuing the initial fetch. Subsequent observers share the stream.
func (c *Cache[T]) Query(key Key) *Stream[T] {
	s, created := c.Open(key)
	if created {
		s.fetchFirstPage()
	}
	return s
}

// Invalidate drops cached pages for key; the next Query refetches from the
// start.
func (c *Cache[T]) Invalidate(key Key) {
	c.mu.Lock()
	s, ok := c.streams[key.String()]
	if ok {
		delete(c.streams, key.String())
	}
	c.mu.Unlock()

	if ok {
		s.discard()
	}
}

// Refetch re-fetches the first page of key and truncates later pages.
// Subsequent pages are refetched lazily by observers.
func (c *Cache[T]) Refetch(key Key) {
	c.mu.Lock()
	s, ok := c.streams[key.String()]
	c.mu.Unlock()

	if !ok {
		c.Query(key)
		return
	}
	s.refetch()
}

// Peek returns the stream for key without triggering a fetch, or nil.
func (c *Cache[T]) Peek(key Key) *Stream[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.streams[key.String()]
}
