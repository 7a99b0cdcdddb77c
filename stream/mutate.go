package stream

// Owner-mediated mutations used by the optimistic action layer. Pages stay
// ordered; items are updated or removed in place across every page of every
// stream in the cache.

// UpdateItem applies fn to every cached copy of the item with the given id.
func (c *Cache[T]) UpdateItem(id string, fn func(*T)) {
	c.mu.Lock()
	streams := make([]*Stream[T], 0, len(c.streams))
	for _, s := range c.streams {
		streams = append(streams, s)
	}
	c.mu.Unlock()

	for _, s := range streams {
		s.UpdateItem(id, fn)
	}
}

// RemoveItem drops every cached copy of the item with the given id and
// returns a restore func that puts them back (for rollback).
func (c *Cache[T]) RemoveItem(id string) (restore func()) {
	c.mu.Lock()
	streams := make([]*Stream[T], 0, len(c.streams))
	for _, s := range c.streams {
		streams = append(streams, s)
	}
	c.mu.Unlock()

	var restores []func()
	for _, s := range streams {
		if r := s.RemoveItem(id); r != nil {
			restores = append(restores, r)
		}
	}

	return func() {
		for _, r := range restores {
			r()
		}
	}
}

// UpdateItem applies fn to the cached item with the given id, if present.
func (s *Stream[T]) UpdateItem(id string, fn func(*T)) {
	s.mu.Lock()
	found := false
	for pi := range s.pages {
		for ri := range s.pages[pi].Results {
			if s.pages[pi].Results[ri].ItemId() == id {
				fn(&s.pages[pi].Results[ri])
				found = true
			}
		}
	}
	s.mu.Unlock()

	if found {
		s.notify()
	}
}

// RemoveItem removes the item with the given id from the stream and
// returns a restore func re-inserting it at its original position, or nil
// if the item wasn't present.
func (s *Stream[T]) RemoveItem(id string) (restore func()) {
	s.mu.Lock()

	type removed struct {
		page, index int
		item        T
	}
	var removals []removed

	for pi := range s.pages {
		results := s.pages[pi].Results
		for ri := 0; ri < len(results); ri++ {
			if results[ri].ItemId() == id {
				removals = append(removals, removed{pi, ri, results[ri]})
				results = append(results[:ri], results[ri+1:]...)
				ri--
			}
		}
		s.pages[pi].Results = results
	}

	if len(removals) == 0 {
		s.mu.Unlock()
		return nil
	}

	if s.count > 0 {
		s.count--
	}
	s.mu.Unlock()
	s.notify()

	return func() {
		s.mu.Lock()
		restored := false
		for i := len(removals) - 1; i >= 0; i-- {
			r := removals[i]
			if r.page >= len(s.pages) {
				// the page was truncated in the meantime; nothing to put back
				continue
			}
			results := s.pages[r.page].Results
			if r.index > len(results) {
				r.index = len(results)
			}
			results = append(results[:r.index], append([]T{r.item}, results[r.index:]...)...)
			s.pages[r.page].Results = results
			restored = true
		}
		if restored {
			s.count++
		}
		s.mu.Unlock()
		s.notify()
	}
}
