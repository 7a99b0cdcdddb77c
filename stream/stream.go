package stream

import (
	"sync"

	"onuze-cli/shared"
)

// Stream is the in-memory materialization of one server-paginated resource:
// an ordered list of immutable pages chained by next cursors.
//
// Invariants: the concatenation of pages preserves server ordering and only
// ever grows by appending; the next cursor is empty iff the last page's
// next was absent; at most one fetch is in flight per stream, and results
// from fetches issued before a refetch or invalidation are discarded.
type Stream[T shared.Item] struct {
	mu sync.Mutex

	key   Key
	fetch FetchFunc[T]

	pages      []shared.Page[T]
	nextCursor string
	count      int
	loaded     bool
	fetching   bool

	// generation guards against stale arrivals: bumped by refetch/discard
	gen int

	err *shared.ApiError

	subscribers map[int]func()
	nextSubId   int
}

func newStream[T shared.Item](key Key, fetch FetchFunc[T]) *Stream[T] {
	return &Stream[T]{
		key:         key,
		fetch:       fetch,
		subscribers: map[int]func(){},
	}
}

func (s *Stream[T]) Key() Key { return s.key }

// Items returns the ordered concatenation of all pages. The returned slice
// is a copy; callers cannot mutate cached pages through it.
func (s *Stream[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []T
	for _, page := range s.pages {
		items = append(items, page.Results...)
	}
	return items
}

// Count is the server-reported total for the listing.
func (s *Stream[T]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// HasMore reports whether another page can be fetched.
func (s *Stream[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loaded || s.nextCursor != ""
}

// Err is the error from the most recent failed fetch. It is cleared by the
// next successful fetch and never drops already-loaded pages.
func (s *Stream[T]) Err() *shared.ApiError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Subscribe registers fn to run after every stream change and returns an
// unsubscribe func.
func (s *Stream[T]) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSubId
	s.nextSubId++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Stream[T]) notify() {
	s.mu.Lock()
	var fns []func()
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Stream[T]) fetchFirstPage() {
	s.fetchPage(s.key.FirstPageUrl(), true)
}

// FetchNextPage loads the next page. It is a no-op when there is no cursor
// or a fetch is already in flight, so spurious repeated calls from a
// viewport sentinel are absorbed here.
func (s *Stream[T]) FetchNextPage() {
	s.mu.Lock()
	if s.fetching || (s.loaded && s.nextCursor == "") {
		s.mu.Unlock()
		return
	}
	url := s.key.FirstPageUrl()
	truncate := true
	if s.loaded {
		url = s.nextCursor
		truncate = false
	}
	s.mu.Unlock()

	s.fetchPage(url, truncate)
}

func (s *Stream[T]) fetchPage(url string, truncate bool) {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return
	}
	s.fetching = true
	gen := s.gen
	s.mu.Unlock()

	page, apiErr := s.fetch(url)

	s.mu.Lock()
	s.fetching = false

	if gen != s.gen {
		// refetched or discarded while in flight; drop the result
		s.mu.Unlock()
		return
	}

	if apiErr != nil {
		s.err = apiErr
		s.mu.Unlock()
		s.notify()
		return
	}

	if truncate {
		s.pages = nil
	}
	s.pages = append(s.pages, *page)
	s.nextCursor = page.Next
	s.count = page.Count
	s.loaded = true
	s.err = nil
	s.mu.Unlock()

	s.notify()
}

// refetch re-issues page one and truncates later pages.
func (s *Stream[T]) refetch() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	s.fetchPage(s.key.FirstPageUrl(), true)
}

func (s *Stream[T]) discard() {
	s.mu.Lock()
	s.gen++
	s.pages = nil
	s.nextCursor = ""
	s.loaded = false
	s.err = nil
	s.mu.Unlock()
}
