package stream

import (
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onuze-cli/shared"
)

type record struct {
	Id    string
	Score int
}

func (r record) ItemId() string { return r.Id }

// pagedFetch serves n records in pages of pageSize, with opaque cursors.
func pagedFetch(n, pageSize int, calls *int32) FetchFunc[record] {
	all := make([]record, n)
	for i := range all {
		all[i] = record{Id: fmt.Sprintf("r%03d", i)}
	}

	return func(reqUrl string) (*shared.Page[record], *shared.ApiError) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}

		offset := 0
		if parsed, err := url.Parse(reqUrl); err == nil {
			if c := parsed.Query().Get("offset"); c != "" {
				fmt.Sscanf(c, "%d", &offset)
			}
		}

		end := offset + pageSize
		if end > n {
			end = n
		}

		next := ""
		if end < n {
			next = fmt.Sprintf("/records/?offset=%d", end)
		}

		return &shared.Page[record]{
			Results: append([]record{}, all[offset:end]...),
			Next:    next,
			Count:   n,
		}, nil
	}
}

func TestStreamPagination(t *testing.T) {
	cache := NewCache(pagedFetch(50, 20, nil))
	key := NewKey("/records/", nil)

	s := cache.Query(key)
	require.Nil(t, s.Err())
	assert.Len(t, s.Items(), 20)
	assert.Equal(t, 50, s.Count())
	assert.True(t, s.HasMore())

	s.FetchNextPage()
	assert.Len(t, s.Items(), 40)
	assert.True(t, s.HasMore())

	s.FetchNextPage()
	assert.Len(t, s.Items(), 50)
	assert.False(t, s.HasMore())

	// exhausted: further calls are no-ops
	s.FetchNextPage()
	assert.Len(t, s.Items(), 50)
}

// Loading more pages never reorders or replaces what's already loaded.
func TestStreamPrefixStability(t *testing.T) {
	cache := NewCache(pagedFetch(50, 20, nil))
	s := cache.Query(NewKey("/records/", nil))

	before := s.Items()
	s.FetchNextPage()
	after := s.Items()

	require.GreaterOrEqual(t, len(after), len(before))
	for i, item := range before {
		assert.Equal(t, item.Id, after[i].Id)
	}
}

func TestStreamSharedAcrossObservers(t *testing.T) {
	var calls int32
	cache := NewCache(pagedFetch(10, 20, &calls))
	key := NewKey("/records/", nil)

	s1 := cache.Query(key)
	s2 := cache.Query(key)

	assert.Same(t, s1, s2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second observer should not refetch")
}

func TestStreamSingleFlight(t *testing.T) {
	var calls int32
	blocked := make(chan struct{})
	release := make(chan struct{})

	cache := NewCache(func(url string) (*shared.Page[record], *shared.ApiError) {
		if atomic.AddInt32(&calls, 1) == 2 {
			close(blocked)
			<-release
		}
		return &shared.Page[record]{
			Results: []record{{Id: "a"}},
			Next:    "/records/?offset=1",
		}, nil
	})

	s := cache.Query(NewKey("/records/", nil))
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	inFlight := make(chan struct{})
	go func() {
		s.FetchNextPage()
		close(inFlight)
	}()
	<-blocked

	// everything issued while a fetch is in flight must be absorbed
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.FetchNextPage()
		}()
	}
	wg.Wait()
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))

	close(release)
	<-inFlight
}

// A page arriving after its stream was invalidated is discarded.
func TestStreamStaleArrivalDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	cache := NewCache(func(url string) (*shared.Page[record], *shared.ApiError) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		return &shared.Page[record]{Results: []record{{Id: "stale"}}}, nil
	})

	key := NewKey("/records/", nil)

	done := make(chan *Stream[record])
	go func() {
		done <- cache.Query(key)
	}()

	<-started
	cache.Invalidate(key)
	close(release)
	s := <-done

	assert.Empty(t, s.Items(), "result that raced invalidation must be dropped")
}

func TestStreamErrorClearedOnRetry(t *testing.T) {
	var calls int32
	cache := NewCache(func(url string) (*shared.Page[record], *shared.ApiError) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, &shared.ApiError{Type: shared.ApiErrorTypeServer, Status: 500, Msg: "boom"}
		}
		return &shared.Page[record]{Results: []record{{Id: "a"}}}, nil
	})

	s := cache.Query(NewKey("/records/", nil))
	require.NotNil(t, s.Err())
	assert.Empty(t, s.Items())

	s.FetchNextPage()
	assert.Nil(t, s.Err())
	assert.Len(t, s.Items(), 1)
}

func TestStreamRefetchTruncates(t *testing.T) {
	cache := NewCache(pagedFetch(50, 20, nil))
	key := NewKey("/records/", nil)

	s := cache.Query(key)
	s.FetchNextPage()
	require.Len(t, s.Items(), 40)

	cache.Refetch(key)
	assert.Len(t, s.Items(), 20, "refetch keeps page one only")
	assert.True(t, s.HasMore())
}

func TestUpdateItemAcrossStreams(t *testing.T) {
	cache := NewCache(pagedFetch(10, 20, nil))

	s1 := cache.Query(NewKey("/records/", nil))
	s2 := cache.Query(NewKey("/records/", url.Values{"sort": {"top"}}))

	cache.UpdateItem("r003", func(r *record) {
		r.Score = 42
	})

	for _, s := range []*Stream[record]{s1, s2} {
		for _, item := range s.Items() {
			if item.Id == "r003" {
				assert.Equal(t, 42, item.Score)
			}
		}
	}
}

func TestRemoveItemRestore(t *testing.T) {
	cache := NewCache(pagedFetch(10, 20, nil))
	s := cache.Query(NewKey("/records/", nil))

	before := s.Items()
	restore := cache.RemoveItem("r005")

	assert.Len(t, s.Items(), 9)
	for _, item := range s.Items() {
		assert.NotEqual(t, "r005", item.Id)
	}

	restore()

	after := s.Items()
	require.Len(t, after, 10)
	for i := range before {
		assert.Equal(t, before[i].Id, after[i].Id, "restore must preserve position")
	}
}

// Restoring a removal after the stream was invalidated has nothing to put
// back and must not inflate the count.
func TestRemoveItemRestoreAfterInvalidate(t *testing.T) {
	cache := NewCache(pagedFetch(10, 20, nil))
	key := NewKey("/records/", nil)
	s := cache.Query(key)

	restore := cache.RemoveItem("r005")
	require.Len(t, s.Items(), 9)
	countBefore := s.Count()

	cache.Invalidate(key)
	restore()

	assert.Empty(t, s.Items())
	assert.Equal(t, countBefore, s.Count(), "count must only grow by what was re-inserted")
}

// Open lets a caller subscribe before any data exists, without racing the
// initial fetch.
func TestCacheOpenWithoutFetch(t *testing.T) {
	var calls int32
	cache := NewCache(pagedFetch(10, 20, &calls))
	key := NewKey("/records/", nil)

	s, created := cache.Open(key)
	assert.True(t, created)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "opening must not fetch")

	var notified int32
	defer s.Subscribe(func() { atomic.AddInt32(&notified, 1) })()

	s.FetchNextPage()
	assert.Len(t, s.Items(), 10)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&notified), "subscriber sees the first page")

	_, created = cache.Open(key)
	assert.False(t, created)

	assert.Same(t, s, cache.Query(key))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "query after open must not refetch")
}

func TestStreamSubscribe(t *testing.T) {
	cache := NewCache(pagedFetch(50, 20, nil))
	s := cache.Query(NewKey("/records/", nil))

	var notified int
	unsubscribe := s.Subscribe(func() {
		notified++
	})

	s.FetchNextPage()
	assert.Equal(t, 1, notified)

	unsubscribe()
	s.FetchNextPage()
	assert.Equal(t, 1, notified)
}

func TestKeyNormalization(t *testing.T) {
	a := NewKey("/posts/", url.Values{"sort": {"hot"}, "t": {""}})
	b := NewKey("/posts/", url.Values{"sort": {"hot"}})

	assert.Equal(t, a.String(), b.String(), "empty params are dropped")
}
