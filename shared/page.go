package shared

// Item is the capability every paginated record type carries: a stable
// identifier usable as a cache key within one stream.
type Item interface {
	ItemId() string
}

// Page is one immutable server page of a paginated listing. Next is the
// fully-qualified URL of the following page, or empty at the end. The
// client treats Next as opaque and re-issues it verbatim.
type Page[T Item] struct {
	Results []T    `json:"results"`
	Next    string `json:"next"`
	Count   int    `json:"count"`
}
