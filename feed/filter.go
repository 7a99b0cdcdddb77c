package feed

import "sync"

// Filter is the shared feed-selection signal. Peripheral entry points
// (popular/new/all shortcuts) write it; the home feed reads it and maps it
// to a backend sort.
type Filter string

const (
	FilterHome    Filter = "home"
	FilterPopular Filter = "popular"
	FilterNew     Filter = "new"
	FilterAll     Filter = "all"
)

var mu sync.Mutex
var current = FilterHome
var subscribers = map[int]func(Filter){}
var nextSubId int

func Get() Filter {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Set writes the signal and notifies subscribers. The home feed refetches
// its post stream on every change.
func Set(f Filter) {
	mu.Lock()
	if current == f {
		mu.Unlock()
		return
	}
	current = f
	fns := make([]func(Filter), 0, len(subscribers))
	for _, fn := range subscribers {
		fns = append(fns, fn)
	}
	mu.Unlock()

	for _, fn := range fns {
		fn(f)
	}
}

// Subscribe registers fn for filter changes and returns an unsubscribe
// func.
func Subscribe(fn func(Filter)) func() {
	mu.Lock()
	id := nextSubId
	nextSubId++
	subscribers[id] = fn
	mu.Unlock()

	return func() {
		mu.Lock()
		delete(subscribers, id)
		mu.Unlock()
	}
}

// Next cycles to the following filter, for a single-key toggle in the
// browse UI.
func (f Filter) Next() Filter {
	switch f {
	case FilterHome:
		return FilterPopular
	case FilterPopular:
		return FilterNew
	case FilterNew:
		return FilterAll
	default:
		return FilterHome
	}
}

// BackendSort maps the signal to the sort param the posts endpoint
// understands.
func (f Filter) BackendSort() string {
	switch f {
	case FilterPopular:
		return "hot"
	case FilterNew:
		return "new"
	case FilterAll:
		return "top"
	default:
		return ""
	}
}

// ParseFilter maps a user-supplied name to a Filter, defaulting to home.
func ParseFilter(s string) Filter {
	switch s {
	case string(FilterPopular):
		return FilterPopular
	case string(FilterNew):
		return FilterNew
	case string(FilterAll):
		return FilterAll
	default:
		return FilterHome
	}
}
